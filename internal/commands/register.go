package commands

import (
	"github.com/footprint-tools/cmdtree/internal/dispatchers"
)

// Register installs the command set on d. Registration order matters:
// effect list extends the effect node registered before it.
func Register(d *dispatchers.Dispatcher) error {
	for _, register := range []func(*dispatchers.Dispatcher) error{
		registerBasic,
		registerKill2,
		registerTell2,
		registerInbox,
		registerEffect,
		registerEffectList,
		registerHelp,
	} {
		if err := register(d); err != nil {
			return err
		}
	}
	return nil
}

// NewDispatcher returns a dispatcher with the command set registered.
func NewDispatcher() (*dispatchers.Dispatcher, error) {
	d := dispatchers.NewDispatcher(nil)
	if err := Register(d); err != nil {
		return nil, err
	}
	return d, nil
}
