// Package analogaxis reads a clutch-paddle ADC axis, applying polarity
// reversal and optional smoothing before handing the sampler a u8 in
// [0,254]. Smoothing is supplemented feature 2: the original firmware
// low-pass-filters the raw ADC reading to cut quantization jitter, but the
// filter defaults to off since the bite-point math assumes raw values.
package analogaxis

import "simwheel-go/hwio"

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithSmoothing sets the exponential-moving-average weight for the raw
// reading, in [0,8]; 0 (the default) disables smoothing entirely.
func WithSmoothing(weight uint8) Option {
	return func(d *Driver) { d.smoothWeight = weight }
}

// WithReversed flips axis polarity: the reported value becomes
// CLUTCH_FULL_VALUE - raw instead of raw.
func WithReversed(reversed bool) Option {
	return func(d *Driver) { d.reversed = reversed }
}

const clutchFullValue = 254

// Driver reads one analog clutch-paddle axis.
type Driver struct {
	adc hwio.ADCPin

	reversed     bool
	smoothWeight uint8
	smoothed     uint16 // fixed-point, 8 fractional bits
	primed       bool

	rangePrimed      bool
	minSeen, maxSeen uint8
}

// New constructs a Driver reading adc, applying any Options in order.
func New(adc hwio.ADCPin, opts ...Option) *Driver {
	d := &Driver{adc: adc, minSeen: 255, maxSeen: 0}
	for _, o := range opts {
		o(d)
	}
	return d
}

// SetReversed flips polarity after construction, for the config report's
// "reverse left/right axis" simple commands.
func (d *Driver) SetReversed(r bool) { d.reversed = r }

// Recalibrate discards the learned [min,max] range so the next Read reprimes
// it from scratch, for the config report's "recalibrate axes" simple
// command and the recalibrate-combo.
func (d *Driver) Recalibrate() { d.rangePrimed = false }

// Read samples the axis once, applies smoothing and polarity, and reports
// whether this reading triggered an autocalibration event (the raw value
// went below the lowest or above the highest value seen since the range was
// last primed; the priming read itself reports none).
func (d *Driver) Read() (value uint8, autocalibrated bool) {
	raw := d.adc.ReadU8()

	switch {
	case !d.rangePrimed:
		d.minSeen, d.maxSeen = raw, raw
		d.rangePrimed = true
	case raw < d.minSeen:
		d.minSeen = raw
		autocalibrated = true
	case raw > d.maxSeen:
		d.maxSeen = raw
		autocalibrated = true
	}

	filtered := raw
	if d.smoothWeight > 0 {
		if !d.primed {
			d.smoothed = uint16(raw) << 8
			d.primed = true
		} else {
			alpha := uint32(d.smoothWeight)
			d.smoothed = uint16((uint32(d.smoothed)*(256-alpha) + uint32(raw)<<8*alpha) >> 8)
		}
		filtered = uint8(d.smoothed >> 8)
	}

	if d.reversed {
		filtered = clutchFullValue - filtered
	}
	return filtered, autocalibrated
}
