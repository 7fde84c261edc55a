package devctx

import (
	"sync"

	"simwheel-go/sampler"
	"simwheel-go/x/fmtx"
)

// Builder constructs a configured sampler.Driver from a driver-specific
// parameter value, reserving whatever GPIOs and input numbers it needs
// against ctx along the way.
type Builder interface {
	Build(ctx *Context, params any) (sampler.Driver, error)
}

// BuilderFunc adapts a plain function to the Builder interface.
type BuilderFunc func(ctx *Context, params any) (sampler.Driver, error)

func (f BuilderFunc) Build(ctx *Context, params any) (sampler.Driver, error) { return f(ctx, params) }

var (
	regMu    sync.RWMutex
	builders = map[string]Builder{}
)

// RegisterBuilder makes a driver kind available to Context.BuildDriver under
// the name typ. Intended to be called from each drivers/* package's init,
// the way the teacher's HAL registered device kinds. Registering the same
// name twice is a programming error and panics.
func RegisterBuilder(typ string, b Builder) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := builders[typ]; exists {
		panic(fmtx.Sprintf("devctx: duplicate driver builder %q", typ))
	}
	builders[typ] = b
}

func lookupBuilder(typ string) (Builder, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	b, ok := builders[typ]
	return b, ok
}

// BuildDriver looks up the builder registered under typ and invokes it.
// Callers outside drivers/* normally don't need this directly; each
// drivers/* package also exposes a typed constructor that wraps its own
// builder for compile-time-checked wiring.
func (c *Context) BuildDriver(typ string, params any) (sampler.Driver, error) {
	b, ok := lookupBuilder(typ)
	if !ok {
		return nil, fmtx.Errorf("devctx: unknown driver kind %q", typ)
	}
	return b.Build(c, params)
}
