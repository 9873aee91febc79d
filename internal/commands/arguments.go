package commands

import (
	"time"

	"github.com/footprint-tools/cmdtree/internal/dispatchers"
	"github.com/footprint-tools/cmdtree/internal/domain"
)

// registerKill2 registers kill2 with the builder, then adds its target
// argument to the registered node. The argument has no handler of its own:
// "kill2 <target>" runs kill2's handler with the target bound.
func registerKill2(d *dispatchers.Dispatcher) error {
	node, err := d.Register(dispatchers.Literal("kill2").Executes(kill2))
	if err != nil {
		return err
	}
	_, err = d.AddChild(node, dispatchers.Argument("target", dispatchers.TypeEntitySelector))
	return err
}

func kill2(ctx *dispatchers.CommandContext) (int, error) {
	src, err := sourceOf(ctx)
	if err != nil {
		return 0, err
	}

	var target dispatchers.Entity
	if ctx.Has("target") {
		if target, err = dispatchers.GetEntity(ctx, "target"); err != nil {
			return 0, err
		}
	} else if target = src.Executor(); target == nil {
		src.SendError("Could not kill the target")
		return -1, nil
	}

	killed, err := src.World.Kill(target.UUID())
	if err != nil {
		return 0, err
	}
	if !killed {
		return 0, nil
	}

	src.Logger.Info("kill2: %s killed %s", src.DisplayName(), target.Name())
	src.Feedback("Killed %s", target.Name())
	return 1, nil
}

// registerTell2 builds tell2, its player and message arguments as
// separate nodes and wires them together, then adds msg as a redirect.
func registerTell2(d *dispatchers.Dispatcher) error {
	tell2, err := d.Build(dispatchers.Literal("tell2"))
	if err != nil {
		return err
	}
	player, err := d.Build(dispatchers.Argument("player", dispatchers.TypePlayerSelector))
	if err != nil {
		return err
	}
	message, err := d.Build(dispatchers.Argument("message", dispatchers.TypeGreedyMessage).Executes(tell))
	if err != nil {
		return err
	}

	for _, edge := range [][2]dispatchers.NodeID{
		{d.Root(), tell2},
		{tell2, player},
		{player, message},
	} {
		if err := d.Attach(edge[0], edge[1]); err != nil {
			return err
		}
	}

	_, err = d.Register(dispatchers.Literal("msg").RedirectTo(tell2))
	return err
}

func tell(ctx *dispatchers.CommandContext) (int, error) {
	src, err := sourceOf(ctx)
	if err != nil {
		return 0, err
	}

	player, err := dispatchers.GetPlayer(ctx, "player")
	if err != nil {
		return 0, err
	}
	msg, err := ctx.Message("message")
	if err != nil {
		return 0, err
	}

	m := domain.TellMessage{
		From:    src.DisplayName(),
		To:      player.UUID(),
		Message: string(msg),
		SentAt:  src.now(),
	}
	if err := src.World.Tell(m); err != nil {
		return 0, err
	}

	src.Logger.Debug("tell: %s -> %s", m.From, player.Name())
	src.Feedback("%s [%s]: %s", src.Style.Muted("to "+player.Name()), m.From, m.Message)
	return 1, nil
}

// registerInbox registers inbox, visible only to players.
func registerInbox(d *dispatchers.Dispatcher) error {
	_, err := d.Register(dispatchers.Literal("inbox").Requires(RequiresPlayer).Executes(inbox))
	return err
}

func inbox(ctx *dispatchers.CommandContext) (int, error) {
	src, err := sourceOf(ctx)
	if err != nil {
		return 0, err
	}

	me := src.Executor()
	if me == nil {
		return 0, nil
	}

	msgs, err := src.World.Inbox(me.UUID())
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		src.Feedback(src.Style.Muted("No messages"))
		return 0, nil
	}

	for _, m := range msgs {
		src.Feedback("%s [%s]: %s", src.Style.Muted(src.layout.DateTimeShort(m.SentAt.In(time.Local))), m.From, m.Message)
	}
	return len(msgs), nil
}
