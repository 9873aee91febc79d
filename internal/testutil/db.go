package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/world"
	"github.com/footprint-tools/cmdtree/internal/world/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err, "failed to open in-memory database")
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestWorld returns a migrated in-memory world store.
func NewTestWorld(t *testing.T) *world.Store {
	t.Helper()
	return world.NewWithDB(NewTestDB(t))
}

// SeedEntities inserts entities into the world and returns them with their
// assigned IDs.
func SeedEntities(t *testing.T, w domain.WorldStore, entities ...domain.WorldEntity) []domain.WorldEntity {
	t.Helper()

	out := make([]domain.WorldEntity, 0, len(entities))
	for _, e := range entities {
		added, err := w.AddEntity(e)
		require.NoError(t, err, "failed to seed entity: %+v", e)
		out = append(out, added)
	}
	return out
}

// DefaultEntities is the cast used across host tests: two players and a mob.
func DefaultEntities() []domain.WorldEntity {
	return []domain.WorldEntity{
		{Name: "Steve", Kind: domain.KindPlayer},
		{Name: "Alex", Kind: domain.KindPlayer},
		{Name: "Zombie", Kind: domain.KindMob},
	}
}
