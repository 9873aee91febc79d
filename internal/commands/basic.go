package commands

import (
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
	"github.com/footprint-tools/cmdtree/internal/format"
)

// WeatherDuration is how long, in ticks, test_weather sets the weather for.
const WeatherDuration = 6000

// registerBasic builds test_kill and test_weather node by node and
// attaches them to the root.
func registerBasic(d *dispatchers.Dispatcher) error {
	kill, err := d.Build(dispatchers.Literal("test_kill").Executes(killSelf))
	if err != nil {
		return err
	}

	weather, err := d.Build(dispatchers.Literal("test_weather"))
	if err != nil {
		return err
	}

	var states []dispatchers.NodeID
	for _, state := range []domain.WeatherState{domain.WeatherClear, domain.WeatherRain, domain.WeatherThunder} {
		id, err := d.Build(dispatchers.Literal(state.String()).Executes(setWeather(state)))
		if err != nil {
			return err
		}
		states = append(states, id)
	}

	if err := d.Attach(d.Root(), kill); err != nil {
		return err
	}
	if err := d.Attach(d.Root(), weather); err != nil {
		return err
	}
	for _, id := range states {
		if err := d.Attach(weather, id); err != nil {
			return err
		}
	}
	return nil
}

func killSelf(ctx *dispatchers.CommandContext) (int, error) {
	src, err := sourceOf(ctx)
	if err != nil {
		return 0, err
	}

	target := src.Executor()
	if target == nil {
		src.Feedback("Could not kill the target")
		return -1, nil
	}

	if _, err := src.World.Kill(target.UUID()); err != nil {
		return 0, err
	}
	src.Feedback("Killed %s", target.Name())
	return 1, nil
}

var weatherFeedback = map[domain.WeatherState]string{
	domain.WeatherClear:   "Set the weather to clear",
	domain.WeatherRain:    "Set the weather to rain",
	domain.WeatherThunder: "Set the weather to rain & thunder",
}

func setWeather(state domain.WeatherState) dispatchers.Command {
	return func(ctx *dispatchers.CommandContext) (int, error) {
		src, err := sourceOf(ctx)
		if err != nil {
			return 0, err
		}

		w := domain.Weather{State: state, Duration: WeatherDuration, ChangedAt: src.now()}
		if err := src.World.SetWeather(w); err != nil {
			return 0, err
		}
		src.Logger.Info("weather: %s for %s by %s", state, format.TicksDuration(WeatherDuration), src.DisplayName())
		src.Feedback(weatherFeedback[state])
		return WeatherDuration, nil
	}
}
