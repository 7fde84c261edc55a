// Package sampler implements component B: a fixed-period loop that polls
// every registered input-hardware driver, merges their bitmaps, reads the
// two analog axes, and emits a raw input event downstream whenever
// something changed. The run loop is grounded on the teacher's
// devctx/internal/core HAL loop (one task, one long wait, a timer re-armed
// each iteration) simplified to a plain ticker, since the sampler has a
// single fixed period rather than a per-capability poll heap.
package sampler

import (
	"context"
	"log/slog"
	"time"

	"simwheel-go/types"
	"simwheel-go/x/ringbuf"
)

// DefaultPeriod is the sampler's fixed poll period.
const DefaultPeriod = 30 * time.Millisecond

// decoupleQueueSize must be a power of two; a handful of pending events is
// enough slack for the hub to fall behind by a few ticks without dropping.
const decoupleQueueSize = 16

// AxisReader reads one analog axis, returning the current value and whether
// this read triggered an autocalibration event.
type AxisReader interface {
	Read() (value uint8, autocalibrated bool)
}

// Options configures a Sampler.
type Options struct {
	Drivers          []Driver
	LeftAxis         AxisReader // nil if no analog clutch paddle is configured
	RightAxis        AxisReader
	Period           time.Duration
	Log              *slog.Logger
	OnAxisCalibrated func(left bool) // called when an axis reports autocalibration
}

// Sampler drives the fixed-period input scan.
type Sampler struct {
	drivers   []Driver
	leftAxis  AxisReader
	rightAxis AxisReader
	period    time.Duration
	log       *slog.Logger
	onCal     func(left bool)

	out *ringbuf.Ring[types.RawInputEvent]

	bitmap            uint64
	leftValue         uint8
	rightValue        uint8
	forceUpdate       bool
}

// New constructs a Sampler. A nil Log defaults to slog.Default(); a zero
// Period defaults to DefaultPeriod.
func New(o Options) *Sampler {
	if o.Log == nil {
		o.Log = slog.Default()
	}
	if o.Period == 0 {
		o.Period = DefaultPeriod
	}
	return &Sampler{
		drivers:   o.Drivers,
		leftAxis:  o.LeftAxis,
		rightAxis: o.RightAxis,
		period:    o.Period,
		log:       o.Log,
		onCal:     o.OnAxisCalibrated,
		out:       ringbuf.New[types.RawInputEvent](decoupleQueueSize, ringbuf.DropOldest),
	}
}

// Events returns the decoupling queue the input hub drains from.
func (s *Sampler) Events() *ringbuf.Ring[types.RawInputEvent] { return s.out }

// ForceUpdate requests that the next tick emit an event even if nothing
// changed, e.g. after a feature-report write that needs an immediate
// reflected input report.
func (s *Sampler) ForceUpdate() { s.forceUpdate = true }

// Run blocks, polling at s.period, until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sampler stopped")
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sampler) tick() {
	prevBitmap := s.bitmap
	newBitmap := uint64(0)
	for _, d := range s.drivers {
		newBitmap |= d.Read(prevBitmap) & d.Mask()
	}

	prevLeft, prevRight := s.leftValue, s.rightValue
	if s.leftAxis != nil {
		v, autocal := s.leftAxis.Read()
		s.leftValue = v
		if autocal && s.onCal != nil {
			s.onCal(true)
		}
	}
	if s.rightAxis != nil {
		v, autocal := s.rightAxis.Read()
		s.rightValue = v
		if autocal && s.onCal != nil {
			s.onCal(false)
		}
	}

	changed := newBitmap != prevBitmap || s.leftValue != prevLeft || s.rightValue != prevRight
	force := s.forceUpdate
	s.forceUpdate = false
	if !changed && !force {
		s.bitmap = newBitmap
		return
	}

	ev := types.RawInputEvent{
		Bitmap:    newBitmap,
		Changes:   newBitmap ^ prevBitmap,
		LeftAxis:  s.leftValue,
		RightAxis: s.rightValue,
	}
	s.bitmap = newBitmap
	if !s.out.TryPush(ev) {
		s.log.Warn("sampler decoupling queue full, dropped oldest event")
	}
}
