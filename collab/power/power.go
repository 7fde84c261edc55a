// Package power is the simplest collab.Power reference implementation: it
// logs the shutdown request and invokes an injected latch function, for a
// board whose actual power-latch pin lives behind hwio at wiring time.
package power

import "log/slog"

// Controller implements collab.Power. Latch is called after logging; a nil
// Latch makes Shutdown a pure log line, useful for host-side testing.
type Controller struct {
	Log   *slog.Logger
	Latch func()
}

// New returns a Controller. A nil log defaults to slog.Default().
func New(log *slog.Logger, latch func()) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{Log: log, Latch: latch}
}

// Shutdown logs the request and calls Latch, if set, to release the power
// latch. It neither broadcasts OnShutdown nor waits for any other task.
func (c *Controller) Shutdown() {
	c.Log.Info("power: shutdown requested")
	if c.Latch != nil {
		c.Latch()
	}
}
