// Package devctx is the configuration-phase device context: the process-wide
// GPIO reservation set, the input-number booking set, the hardware builder
// registry, and the three-phase (configuring/running/shutdown) lifecycle
// that the rest of the firmware core is built against.
package devctx

import (
	"log/slog"
	"sync"

	"simwheel-go/errcode"
	"simwheel-go/types"
)

// Phase names the device lifecycle stage.
type Phase uint8

const (
	PhaseConfiguring Phase = iota
	PhaseRunning
	PhaseShutdown
)

// Context holds every piece of process-wide state that configuration-time
// registration mutates: reserved GPIOs, booked input numbers, and the
// current lifecycle phase. A zero Context is not usable; use New.
type Context struct {
	Log *slog.Logger

	mu    sync.Mutex
	phase Phase

	gpios  map[types.GPIOID]string // pin -> owner device id
	booked map[types.InputNumber]string

	startOnce    sync.Once
	shutdownOnce sync.Once
	onStart      []func()
	onShutdown   []func()
}

// New returns a Context in the configuring phase. A nil logger defaults to
// slog.Default().
func New(log *slog.Logger) *Context {
	if log == nil {
		log = slog.Default()
	}
	return &Context{
		Log:    log,
		gpios:  make(map[types.GPIOID]string),
		booked: make(map[types.InputNumber]string),
	}
}

// Phase reports the current lifecycle phase.
func (c *Context) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Context) requireConfiguring(op string) {
	if c.phase != PhaseConfiguring {
		panic(&errcode.E{C: errcode.ConfigConflict, Op: op, Msg: "registration after device start"})
	}
}

// ReserveGPIO claims pin exclusively for owner. Reservations are append-only
// until Start; a second reservation of the same pin panics with
// errcode.GpioAlreadyReserved, matching the configuration-phase-failures-are-
// fatal contract: callers are expected to call this only during
// configuration; Start does not recover the panic, so the caller has to.
func (c *Context) ReserveGPIO(pin types.GPIOID, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requireConfiguring("ReserveGPIO")
	if existing, taken := c.gpios[pin]; taken {
		panic(&errcode.E{
			C:   errcode.GpioAlreadyReserved,
			Op:  "ReserveGPIO",
			Msg: "pin " + owner + " vs " + existing,
		})
	}
	c.gpios[pin] = owner
}

// GPIOReserved reports whether pin is already claimed.
func (c *Context) GPIOReserved(pin types.GPIOID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.gpios[pin]
	return ok
}

// BookInput records that firmware input number n belongs to owner. Double
// booking panics with errcode.UnknownInputNumber's sibling ConfigConflict,
// since two drivers racing for the same bit is a wiring mistake, not a
// runtime condition.
func (c *Context) BookInput(n types.InputNumber, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requireConfiguring("BookInput")
	if !n.Valid() {
		panic(&errcode.E{C: errcode.InvalidInputNumber, Op: "BookInput", Msg: owner})
	}
	if existing, taken := c.booked[n]; taken {
		panic(&errcode.E{C: errcode.ConfigConflict, Op: "BookInput", Msg: owner + " vs " + existing})
	}
	c.booked[n] = owner
}

// InputBooked reports whether n has been booked by any driver.
func (c *Context) InputBooked(n types.InputNumber) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.booked[n]
	return ok
}

// BookedInputs returns every booked firmware input number, in ascending
// order. The composition root passes it to inputmap.Map.ResetOptimal.
func (c *Context) BookedInputs() []types.InputNumber {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.InputNumber, 0, len(c.booked))
	for n := range c.booked {
		out = append(out, n)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// OnStart registers a callback invoked exactly once when Start transitions
// the context out of the configuring phase.
func (c *Context) OnStart(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requireConfiguring("OnStart")
	c.onStart = append(c.onStart, fn)
}

// OnShutdown registers a callback invoked exactly once when Shutdown fires.
func (c *Context) OnShutdown(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onShutdown = append(c.onShutdown, fn)
}

// Start ends the configuration phase: reservations and bookings become
// immutable, and every OnStart callback fires once, in registration order.
// Any configuration-phase panic raised by a registration call (ReserveGPIO,
// BookInput, a driver builder) must be recovered by the caller and wrapped
// as a returned error; Start itself does not recover, since it runs after
// registration has already completed successfully.
func (c *Context) Start() {
	c.startOnce.Do(func() {
		c.mu.Lock()
		c.phase = PhaseRunning
		cbs := append([]func(){}, c.onStart...)
		c.mu.Unlock()
		for _, fn := range cbs {
			fn()
		}
		c.Log.Info("device started", slog.Int("gpios_reserved", len(c.gpios)), slog.Int("inputs_booked", len(c.booked)))
	})
}

// Shutdown broadcasts the one-shot shutdown notification; every daemon
// terminates cooperatively on receiving it.
func (c *Context) Shutdown() {
	c.shutdownOnce.Do(func() {
		c.mu.Lock()
		c.phase = PhaseShutdown
		cbs := append([]func(){}, c.onShutdown...)
		c.mu.Unlock()
		for _, fn := range cbs {
			fn()
		}
		c.Log.Info("device shutdown")
	})
}
