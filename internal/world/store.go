package world

import (
	"database/sql"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/log"
	"github.com/footprint-tools/cmdtree/internal/usage"
	"github.com/footprint-tools/cmdtree/internal/world/migrations"
)

// MemoryPath opens a private in-memory world.
const MemoryPath = ":memory:"

// Store is the SQLite-backed world. It implements domain.WorldStore.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// Open opens the world database at path and runs pending migrations.
func Open(path string) (*Store, error) {
	log.Debug("world: opening database at %s", path)

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, usage.Store("open database", err)
	}

	if path == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, usage.Store("ping database", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		log.Error("world: migrations failed: %v", err)
		return nil, usage.Store("run migrations", err)
	}

	log.Debug("world: database ready")
	return &Store{db: db, path: path, now: time.Now}, nil
}

// NewWithDB wraps an already migrated connection.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == MemoryPath {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// AddEntity inserts an entity, or revives and renames an existing one with
// the same UUID.
func (s *Store) AddEntity(e domain.WorldEntity) (domain.WorldEntity, error) {
	if e.ID == uuid.Nil {
		e.ID = domain.EntityID(e.Name)
	}
	e.Alive = true

	_, err := s.db.Exec(
		`INSERT INTO entities (uuid, name, kind_id, alive)
		 VALUES (?, ?, ?, 1)
		 ON CONFLICT(uuid)
		 DO UPDATE SET name = excluded.name, kind_id = excluded.kind_id, alive = 1`,
		e.ID.String(), e.Name, int(e.Kind),
	)
	if err != nil {
		return domain.WorldEntity{}, usage.Store("add entity", err)
	}
	return e, nil
}

// Entities returns living entities, players first, then in insertion order.
func (s *Store) Entities() ([]domain.WorldEntity, error) {
	rows, err := s.db.Query(`
		SELECT uuid, name, kind_id, alive
		FROM entities
		WHERE alive = 1
		ORDER BY kind_id DESC, seq ASC
	`)
	if err != nil {
		return nil, usage.Store("list entities", err)
	}
	defer rows.Close()

	var out []domain.WorldEntity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, usage.Store("list entities", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, usage.Store("list entities", err)
	}
	return out, nil
}

// EntityByUUID returns an entity whether alive or dead.
func (s *Store) EntityByUUID(id uuid.UUID) (domain.WorldEntity, bool, error) {
	row := s.db.QueryRow(`SELECT uuid, name, kind_id, alive FROM entities WHERE uuid = ?`, id.String())
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return domain.WorldEntity{}, false, nil
	}
	if err != nil {
		return domain.WorldEntity{}, false, usage.Store("get entity", err)
	}
	return e, true, nil
}

// Kill marks an entity dead and strips its effects.
func (s *Store) Kill(id uuid.UUID) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, usage.Store("kill", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE entities SET alive = 0 WHERE uuid = ? AND alive = 1`, id.String())
	if err != nil {
		return false, usage.Store("kill", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, usage.Store("kill", err)
	}
	if n == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`DELETE FROM effects WHERE entity_uuid = ?`, id.String()); err != nil {
		return false, usage.Store("kill", err)
	}
	if err := tx.Commit(); err != nil {
		return false, usage.Store("kill", err)
	}

	log.Info("world: killed %s", id)
	return true, nil
}

// SetWeather replaces the current weather.
func (s *Store) SetWeather(w domain.Weather) error {
	if w.ChangedAt.IsZero() {
		w.ChangedAt = s.now()
	}
	_, err := s.db.Exec(
		`UPDATE weather SET state = ?, duration = ?, changed_at = ? WHERE id = 1`,
		w.State.String(), w.Duration, w.ChangedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return usage.Store("set weather", err)
	}
	return nil
}

// Weather returns the current weather.
func (s *Store) Weather() (domain.Weather, error) {
	var (
		state string
		ts    string
		w     domain.Weather
	)
	err := s.db.QueryRow(`SELECT state, duration, changed_at FROM weather WHERE id = 1`).Scan(&state, &w.Duration, &ts)
	if err != nil {
		return domain.Weather{}, usage.Store("get weather", err)
	}

	if w.State, err = domain.ParseWeather(state); err != nil {
		return domain.Weather{}, usage.Store("get weather", err)
	}
	if w.ChangedAt, err = time.Parse(time.RFC3339, ts); err != nil {
		return domain.Weather{}, usage.Store("get weather", err)
	}
	return w, nil
}

// AddEffect applies an effect, replacing an existing one with the same name.
func (s *Store) AddEffect(e domain.StatusEffect) error {
	_, err := s.db.Exec(
		`INSERT INTO effects (entity_uuid, effect, amplifier, duration, ambient, permanent)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(entity_uuid, effect)
		 DO UPDATE SET amplifier = excluded.amplifier, duration = excluded.duration,
		               ambient = excluded.ambient, permanent = excluded.permanent`,
		e.EntityID.String(), e.Effect, e.Amplifier, e.Duration, e.Ambient, e.Permanent,
	)
	if err != nil {
		return usage.Store("add effect", err)
	}
	return nil
}

// ClearEffects removes every effect from an entity.
func (s *Store) ClearEffects(id uuid.UUID) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM effects WHERE entity_uuid = ?`, id.String())
	if err != nil {
		return 0, usage.Store("clear effects", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, usage.Store("clear effects", err)
	}
	return n, nil
}

// Effects lists an entity's effects by name.
func (s *Store) Effects(id uuid.UUID) ([]domain.StatusEffect, error) {
	rows, err := s.db.Query(`
		SELECT effect, amplifier, duration, ambient, permanent
		FROM effects
		WHERE entity_uuid = ?
		ORDER BY effect
	`, id.String())
	if err != nil {
		return nil, usage.Store("list effects", err)
	}
	defer rows.Close()

	var out []domain.StatusEffect
	for rows.Next() {
		e := domain.StatusEffect{EntityID: id}
		if err := rows.Scan(&e.Effect, &e.Amplifier, &e.Duration, &e.Ambient, &e.Permanent); err != nil {
			return nil, usage.Store("list effects", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, usage.Store("list effects", err)
	}
	return out, nil
}

// Tell stores a private message.
func (s *Store) Tell(m domain.TellMessage) error {
	if m.SentAt.IsZero() {
		m.SentAt = s.now()
	}
	_, err := s.db.Exec(
		`INSERT INTO tells (sender, recipient_uuid, message, sent_at) VALUES (?, ?, ?, ?)`,
		m.From, m.To.String(), m.Message, m.SentAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return usage.Store("tell", err)
	}
	return nil
}

// Inbox returns the messages sent to an entity, oldest first.
func (s *Store) Inbox(id uuid.UUID) ([]domain.TellMessage, error) {
	rows, err := s.db.Query(`
		SELECT id, sender, message, sent_at
		FROM tells
		WHERE recipient_uuid = ?
		ORDER BY id ASC
	`, id.String())
	if err != nil {
		return nil, usage.Store("inbox", err)
	}
	defer rows.Close()

	var out []domain.TellMessage
	for rows.Next() {
		var (
			m  = domain.TellMessage{To: id}
			ts string
		)
		if err := rows.Scan(&m.ID, &m.From, &m.Message, &ts); err != nil {
			return nil, usage.Store("inbox", err)
		}
		if m.SentAt, err = time.Parse(time.RFC3339, ts); err != nil {
			return nil, usage.Store("inbox", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, usage.Store("inbox", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (domain.WorldEntity, error) {
	var (
		e     domain.WorldEntity
		id    string
		kind  int
		alive bool
	)
	if err := row.Scan(&id, &e.Name, &kind, &alive); err != nil {
		return domain.WorldEntity{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.WorldEntity{}, err
	}

	e.ID = parsed
	e.Kind = domain.EntityKind(kind)
	e.Alive = alive
	return e, nil
}

var _ domain.WorldStore = (*Store)(nil)
