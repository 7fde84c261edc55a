// Package analogmux reads a 4051-style analog multiplexer through a
// 3-bit selector GPIO triple and one shared ADC-capable pin, applying a
// digital threshold to each channel to recover a button bit.
package analogmux

import (
	"simwheel-go/devctx"
	"simwheel-go/hwio"
	"simwheel-go/types"
)

// DebounceThreshold mirrors the other digital drivers' debounce depth.
const DebounceThreshold = 3

// Params configures a Driver over up to 8 multiplexed channels.
type Params struct {
	Select  [3]hwio.GPIOPin // A, B, C selector lines
	Signal  hwio.ADCPin
	Inputs  [8]types.InputNumber
	// Threshold is the ReadU8 value at or above which a channel reads "active".
	Threshold uint8
	Invert    bool
}

type channelState struct {
	stable bool
	count  uint8
}

// Driver implements sampler.Driver for one 8-channel analog mux.
type Driver struct {
	sel       [3]hwio.GPIOPin
	signal    hwio.ADCPin
	inputs    [8]types.InputNumber
	threshold uint8
	invert    bool
	channels  [8]channelState
	mask      uint64
}

// New configures the selector lines as outputs and books every
// non-unspecified channel input.
func New(ctx *devctx.Context, owner string, p Params) (*Driver, error) {
	for _, s := range p.Select {
		if err := s.ConfigureOutput(false); err != nil {
			return nil, err
		}
	}
	d := &Driver{
		sel:       p.Select,
		signal:    p.Signal,
		inputs:    p.Inputs,
		threshold: p.Threshold,
		invert:    p.Invert,
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

// Read selects each channel in turn, samples it, and applies the debounced
// threshold.
func (d *Driver) Read(previous uint64) uint64 {
	bitmap := previous &^ d.mask
	for ch := 0; ch < 8; ch++ {
		n := d.inputs[ch]
		if n == types.Unspecified {
			continue
		}
		d.sel[0].Set(ch&0x1 != 0)
		d.sel[1].Set(ch&0x2 != 0)
		d.sel[2].Set(ch&0x4 != 0)

		v := d.signal.ReadU8()
		raw := v >= d.threshold
		if d.invert {
			raw = !raw
		}
		st := &d.channels[ch]
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
	}
	return bitmap
}
