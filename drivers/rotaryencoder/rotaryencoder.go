// Package rotaryencoder decodes a two-phase (CLK/DT) quadrature rotary
// encoder into detent events, grounded on the teacher's ISR -> debounce ->
// edge-detection -> bounded-queue pipeline (services/hal/gpio_worker.go),
// generalized from a single-pin button edge to a two-pin Gray-code state
// machine. Detents land in x/ringbuf, the generic adaptation of the
// teacher's x/shmring SPSC ring.
package rotaryencoder

import (
	"simwheel-go/devctx"
	"simwheel-go/hwio"
	"simwheel-go/types"
	"simwheel-go/x/ringbuf"
)

// Variant selects the Gray-code transition table.
type Variant uint8

const (
	// Standard is the common EC11-style two-phase encoder: one detent per
	// full 4-step Gray-code cycle.
	Standard Variant = iota
	// Alternate matches ALPS RKJX-family encoders; its step table is
	// Standard's with every step's sign reversed.
	Alternate
)

// detentQueueSize must be a power of two; 8 comfortably covers any burst of
// spins between two 30ms sampler ticks.
const detentQueueSize = 8

// standard and alternate are indexed by (prevState<<2 | curState), each a
// 2-bit (CLK,DT) reading; +1 = one CW step, -1 = one CCW step, 0 = no detent.
var standardTable = [16]int8{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

var alternateTable = [16]int8{
	0, 1, -1, 0,
	-1, 0, 0, 1,
	1, 0, 0, -1,
	0, -1, 1, 0,
}

// Params configures a Driver.
type Params struct {
	Clk, Dt hwio.GPIOPin
	CW, CCW types.InputNumber
	Variant Variant
	// PulseWidth is the number of sampler cycles a detent's bit stays set
	// before it is released, matching the configurable pulseMultiplier.
	PulseWidth types.PulseWidthMultiplier
}

// Driver implements sampler.Driver for one quadrature encoder. ISR-style
// edge handling happens in FeedEdge, called from whatever interrupt or
// polling glue watches Clk/Dt; Read only drains the queue and manages pulse
// stretching, so it never blocks.
type Driver struct {
	clk, dt hwio.GPIOPin
	table   *[16]int8
	cw, ccw types.InputNumber
	pulse   types.PulseWidthMultiplier
	mask    uint64

	state uint8
	accum int8
	q     *ringbuf.Ring[bool] // true=CW, false=CCW

	cwRemaining, ccwRemaining uint8
}

// New configures Clk/Dt as pulled-up inputs and books CW/CCW.
func New(ctx *devctx.Context, owner string, p Params) (*Driver, error) {
	if err := p.Clk.ConfigureInput(hwio.PullUp); err != nil {
		return nil, err
	}
	if err := p.Dt.ConfigureInput(hwio.PullUp); err != nil {
		return nil, err
	}
	table := &standardTable
	if p.Variant == Alternate {
		table = &alternateTable
	}
	pulse := p.PulseWidth
	if pulse == 0 {
		pulse = types.DefaultPulseWidthMultiplier
	}
	d := &Driver{
		clk: p.Clk, dt: p.Dt,
		table: table,
		cw:    p.CW, ccw: p.CCW,
		pulse: pulse,
		q:     ringbuf.New[bool](detentQueueSize, ringbuf.DropNewest),
	}
	ctx.BookInput(p.CW, owner)
	ctx.BookInput(p.CCW, owner)
	d.mask = p.CW.Bit() | p.CCW.Bit()
	d.state = d.sample()
	return d, nil
}

func (d *Driver) sample() uint8 {
	var s uint8
	if d.clk.Get() {
		s |= 0x2
	}
	if d.dt.Get() {
		s |= 0x1
	}
	return s
}

// FeedEdge is called on every CLK/DT transition (from a GPIO interrupt
// handler or a tight polling loop running faster than the sampler period).
// Four quarter-steps of consistent direction accumulate into one detent;
// a full detent queue silently discards the new event, per the driver
// contract's "overflow discards new events" rule.
func (d *Driver) FeedEdge() {
	cur := d.sample()
	idx := d.state<<2 | cur
	step := d.table[idx]
	d.state = cur
	if step == 0 {
		return
	}
	d.accum += step
	switch {
	case d.accum >= 4:
		d.q.TryPush(true)
		d.accum = 0
	case d.accum <= -4:
		d.q.TryPush(false)
		d.accum = 0
	}
}

func (d *Driver) Mask() uint64 { return d.mask }

// Read extracts at most one queued detent per call and returns a bitmap
// with the CW or CCW bit held for PulseWidth cycles, then released.
func (d *Driver) Read(previous uint64) uint64 {
	bitmap := previous &^ d.mask

	if cw, ok := d.q.TryPop(); ok {
		if cw {
			d.cwRemaining = uint8(d.pulse)
		} else {
			d.ccwRemaining = uint8(d.pulse)
		}
	}
	if d.cwRemaining > 0 {
		bitmap |= d.cw.Bit()
		d.cwRemaining--
	}
	if d.ccwRemaining > 0 {
		bitmap |= d.ccw.Bit()
		d.ccwRemaining--
	}
	return bitmap
}

// QueueDrops reports how many detents were discarded because the queue was
// full when FeedEdge tried to enqueue them.
func (d *Driver) QueueDrops() uint32 { return d.q.Drops() }
