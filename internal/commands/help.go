package commands

import (
	"strings"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
)

// registerHelp registers help and help <command>. The handlers close over
// d so they always read the tree as it is when they run.
func registerHelp(d *dispatchers.Dispatcher) error {
	_, err := d.Register(dispatchers.Literal("help").
		Executes(helpAll(d)).
		Then(dispatchers.Argument("command", dispatchers.TypeLiteralString).Executes(helpCommand(d))))
	return err
}

func helpAll(d *dispatchers.Dispatcher) dispatchers.Command {
	return func(ctx *dispatchers.CommandContext) (int, error) {
		src, err := sourceOf(ctx)
		if err != nil {
			return 0, err
		}

		lines := d.AllUsage(src)
		src.Out.Pager(renderUsage(src, "", lines))
		return len(lines), nil
	}
}

func helpCommand(d *dispatchers.Dispatcher) dispatchers.Command {
	return func(ctx *dispatchers.CommandContext) (int, error) {
		src, err := sourceOf(ctx)
		if err != nil {
			return 0, err
		}
		command, err := ctx.String("command")
		if err != nil {
			return 0, err
		}

		id, ok := d.FindVisible(command, src)
		if !ok {
			src.SendError("Unknown command '%s'", command)
			return -1, nil
		}

		lines := d.Usage(id, src)
		if len(lines) == 0 {
			lines = []string{""}
		}
		src.Out.Pager(renderUsage(src, command, lines))
		return len(lines), nil
	}
}

func renderUsage(src *Source, prefix string, lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString("/")
		b.WriteString(src.Style.Usage(strings.TrimSpace(prefix + " " + line)))
		b.WriteString("\n")
	}
	return b.String()
}
