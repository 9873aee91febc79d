package commands

import (
	"fmt"
	"slices"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/format"
	"github.com/footprint-tools/cmdtree/internal/usage"
)

// DefaultEffectDuration is the duration, in ticks, of an effect given
// without "infinite".
const DefaultEffectDuration = 600

// MaxAmplifier is the largest accepted effect amplifier.
const MaxAmplifier = 255

// StatusEffects are the effect names effect give accepts.
var StatusEffects = []string{
	"absorption", "blindness", "fire_resistance", "glowing", "haste",
	"health_boost", "hunger", "instant_damage", "instant_health",
	"invisibility", "jump_boost", "levitation", "luck", "mining_fatigue",
	"nausea", "night_vision", "poison", "regeneration", "resistance",
	"saturation", "slow_falling", "slowness", "speed", "strength",
	"unluck", "water_breathing", "weakness", "wither",
}

// registerEffect registers effect give and effect clear in one builder
// chain.
//
//	effect give <target> <effect> [<amplifier> [<ambient>]]
//	effect give <target> <effect> infinite
//	effect clear <target>
func registerEffect(d *dispatchers.Dispatcher) error {
	give := dispatchers.Literal("give").Then(
		dispatchers.Argument("target", dispatchers.TypeEntitySelector).Then(
			dispatchers.Argument("effect", dispatchers.TypeWord).
				Executes(giveEffect(false)).
				Then(dispatchers.Literal("infinite").Executes(giveEffect(true))).
				Then(dispatchers.Argument("amplifier", dispatchers.TypeInteger).
					Executes(giveEffect(false)).
					Then(dispatchers.Argument("ambient", dispatchers.TypeBool).Executes(giveEffect(false))))))

	clear := dispatchers.Literal("clear").Then(
		dispatchers.Argument("target", dispatchers.TypeEntitySelector).Executes(clearEffects))

	_, err := d.Register(dispatchers.Literal("effect").Then(give).Then(clear))
	return err
}

// registerEffectList extends the already registered effect node with list.
func registerEffectList(d *dispatchers.Dispatcher) error {
	effect, ok := d.Find("effect")
	if !ok {
		return usage.InvalidTree("effect must be registered before effect list")
	}
	_, err := d.AddChild(effect, dispatchers.Literal("list").Executes(listEffects))
	return err
}

func giveEffect(permanent bool) dispatchers.Command {
	return func(ctx *dispatchers.CommandContext) (int, error) {
		src, err := sourceOf(ctx)
		if err != nil {
			return 0, err
		}

		target, err := dispatchers.GetEntity(ctx, "target")
		if err != nil {
			return 0, err
		}
		name, err := ctx.String("effect")
		if err != nil {
			return 0, err
		}
		amplifier, err := ctx.IntOr("amplifier", 0)
		if err != nil {
			return 0, err
		}
		var ambient bool
		if ctx.Has("ambient") {
			if ambient, err = ctx.Bool("ambient"); err != nil {
				return 0, err
			}
		}

		if !slices.Contains(StatusEffects, name) {
			src.SendError("Unknown effect '%s'", name)
			return -1, nil
		}
		if amplifier < 0 || amplifier > MaxAmplifier {
			return 0, usage.InvalidArgument("amplifier", fmt.Sprintf("must be between 0 and %d, got %d", MaxAmplifier, amplifier))
		}

		e := domain.StatusEffect{
			EntityID:  target.UUID(),
			Effect:    name,
			Amplifier: amplifier,
			Duration:  DefaultEffectDuration,
			Ambient:   ambient,
			Permanent: permanent,
		}
		if permanent {
			e.Duration = -1
		}
		if err := src.World.AddEffect(e); err != nil {
			return 0, err
		}

		src.Logger.Info("effect: %s gave %s x%d to %s", src.DisplayName(), name, amplifier, target.Name())
		src.Feedback("Applied effect %s to %s", name, target.Name())
		return 1, nil
	}
}

func clearEffects(ctx *dispatchers.CommandContext) (int, error) {
	src, err := sourceOf(ctx)
	if err != nil {
		return 0, err
	}

	target, err := dispatchers.GetEntity(ctx, "target")
	if err != nil {
		return 0, err
	}

	n, err := src.World.ClearEffects(target.UUID())
	if err != nil {
		return 0, err
	}
	if n == 0 {
		src.SendError("%s has no effects to remove", target.Name())
		return 0, nil
	}

	src.Feedback("Removed every effect from %s", target.Name())
	return int(n), nil
}

// listEffects prints the executor's effects. Ambient effects are shown in
// the info colour, permanent ones in the header style. It always returns 0.
func listEffects(ctx *dispatchers.CommandContext) (int, error) {
	src, err := sourceOf(ctx)
	if err != nil {
		return 0, err
	}

	player := src.Executor()
	if player == nil || !player.IsPlayer() {
		src.SendError("You are not a player, so you cannot have any status effects.")
		return 0, nil
	}

	effects, err := src.World.Effects(player.UUID())
	if err != nil {
		return 0, err
	}

	for _, e := range effects {
		name := e.Effect
		if e.Ambient {
			name = src.Style.Info(name)
		}
		duration := format.Ticks(e.Duration)
		if e.Permanent {
			name = src.Style.Header(name)
			duration = format.Ticks(-1)
		}
		src.Feedback("%s x%d %s", name, e.Amplifier, duration)
	}
	return 0, nil
}
