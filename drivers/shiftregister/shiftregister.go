// Package shiftregister reads a chain of 74HC165-style parallel-load serial
// shift registers over three GPIO lines (load, clock, data), generalizing
// the teacher's single-pin GPIO read to a bit-banged serial scan.
package shiftregister

import (
	"simwheel-go/devctx"
	"simwheel-go/hwio"
	"simwheel-go/types"
)

// DebounceThreshold mirrors drivers/buttonmatrix's per-line debounce depth.
const DebounceThreshold = 3

// Params configures a Driver over a chain of shift registers totaling
// 8*len(Inputs-worth-of-bits) lines; Inputs maps serial bit position
// (0 = first bit shifted out after load) to a firmware input number.
// Unspecified entries are skipped.
type Params struct {
	Load, Clock, Data hwio.GPIOPin
	Inputs            []types.InputNumber // index = bit position
	// Invert is true when a pressed/active line reads low (the common
	// 74HC165 wiring with pull-ups on each parallel input).
	Invert bool
}

type lineState struct {
	stable bool
	count  uint8
}

// Driver implements sampler.Driver for a bit-banged parallel-load shift
// register chain.
type Driver struct {
	load, clock, data hwio.GPIOPin
	inputs            []types.InputNumber
	invert            bool
	lines             []lineState
	mask              uint64
}

// New configures the three control lines and books every non-unspecified
// input in p.Inputs.
func New(ctx *devctx.Context, owner string, p Params) (*Driver, error) {
	if err := p.Load.ConfigureOutput(true); err != nil {
		return nil, err
	}
	if err := p.Clock.ConfigureOutput(false); err != nil {
		return nil, err
	}
	if err := p.Data.ConfigureInput(hwio.PullNone); err != nil {
		return nil, err
	}
	d := &Driver{
		load:   p.Load,
		clock:  p.Clock,
		data:   p.Data,
		inputs: p.Inputs,
		invert: p.Invert,
		lines:  make([]lineState, len(p.Inputs)),
	}
	for _, n := range p.Inputs {
		if n == types.Unspecified {
			continue
		}
		ctx.BookInput(n, owner)
		d.mask |= n.Bit()
	}
	return d, nil
}

func (d *Driver) Mask() uint64 { return d.mask }

// Read pulses load low-then-high to latch the parallel inputs, then clocks
// out one bit per input line.
func (d *Driver) Read(previous uint64) uint64 {
	d.load.Set(false)
	d.load.Set(true)

	bitmap := previous &^ d.mask
	for i, n := range d.inputs {
		if n == types.Unspecified {
			d.clock.Set(true)
			d.clock.Set(false)
			continue
		}
		raw := d.data.Get()
		if d.invert {
			raw = !raw
		}
		st := &d.lines[i]
		if raw == st.stable {
			st.count = 0
		} else {
			st.count++
			if st.count >= DebounceThreshold {
				st.stable = raw
				st.count = 0
			}
		}
		if st.stable {
			bitmap |= n.Bit()
		}
		d.clock.Set(true)
		d.clock.Set(false)
	}
	return bitmap
}
