package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntityKind separates players from every other entity.
type EntityKind int

const (
	KindMob EntityKind = iota
	KindPlayer
)

func (k EntityKind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "mob"
}

// ParseEntityKind accepts "player" or "mob".
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(s) {
	case "player":
		return KindPlayer, nil
	case "mob", "":
		return KindMob, nil
	}
	return KindMob, fmt.Errorf("unknown entity kind %q", s)
}

// WorldEntity is a row of the world's entity table.
type WorldEntity struct {
	ID    uuid.UUID
	Name  string
	Kind  EntityKind
	Alive bool
}

// EntityID derives a stable UUID from an entity name, so seeding the same
// world twice yields the same identities.
func EntityID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("cmdtree:entity:"+strings.ToLower(name)))
}

// IsPlayer reports whether the entity is a player.
func (e WorldEntity) IsPlayer() bool { return e.Kind == KindPlayer }

// WeatherState is the sky over the world.
type WeatherState int

const (
	WeatherClear WeatherState = iota
	WeatherRain
	WeatherThunder
)

func (w WeatherState) String() string {
	switch w {
	case WeatherRain:
		return "rain"
	case WeatherThunder:
		return "thunder"
	default:
		return "clear"
	}
}

// ParseWeather accepts "clear", "rain" or "thunder".
func ParseWeather(s string) (WeatherState, error) {
	switch s {
	case "clear":
		return WeatherClear, nil
	case "rain":
		return WeatherRain, nil
	case "thunder":
		return WeatherThunder, nil
	}
	return WeatherClear, fmt.Errorf("unknown weather %q", s)
}

// Weather is the current weather and how many ticks it lasts.
type Weather struct {
	State     WeatherState
	Duration  int
	ChangedAt time.Time
}

// StatusEffect is an effect applied to an entity.
type StatusEffect struct {
	EntityID  uuid.UUID
	Effect    string
	Amplifier int
	Duration  int
	Ambient   bool
	Permanent bool
}

// TellMessage is a private message delivered by tell2 or msg.
type TellMessage struct {
	ID      int64
	From    string
	To      uuid.UUID
	Message string
	SentAt  time.Time
}
