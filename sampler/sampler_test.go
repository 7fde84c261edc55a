package sampler

import (
	"context"
	"testing"
	"time"

	"simwheel-go/types"
)

type fakeDriver struct {
	mask uint64
	bits uint64
}

func (d *fakeDriver) Mask() uint64            { return d.mask }
func (d *fakeDriver) Read(previous uint64) uint64 { return d.bits }

type fakeAxis struct {
	value      uint8
	autocal    bool
}

func (a *fakeAxis) Read() (uint8, bool) { return a.value, a.autocal }

func TestSampler_PopcountInvariant(t *testing.T) {
	d := &fakeDriver{mask: 0x0F, bits: 0x05}
	s := New(Options{Drivers: []Driver{d}})
	s.tick()

	ev, ok := s.Events().TryPop()
	if !ok {
		t.Fatal("expected an event after first tick")
	}
	if types.PopCount64(ev.Changes) != types.PopCount64(ev.Bitmap^0) {
		t.Fatalf("popcount(changes)=%d != popcount(bitmap^prev)=%d", types.PopCount64(ev.Changes), types.PopCount64(ev.Bitmap))
	}
}

func TestSampler_NoEventWhenNothingChanged(t *testing.T) {
	d := &fakeDriver{mask: 0x0F, bits: 0x05}
	s := New(Options{Drivers: []Driver{d}})
	s.tick()
	s.Events().TryPop()

	s.tick()
	if _, ok := s.Events().TryPop(); ok {
		t.Fatal("no event should be emitted when nothing changed")
	}
}

func TestSampler_ForceUpdateEmitsEvenWithoutChange(t *testing.T) {
	d := &fakeDriver{mask: 0x0F, bits: 0x05}
	s := New(Options{Drivers: []Driver{d}})
	s.tick()
	s.Events().TryPop()

	s.ForceUpdate()
	s.tick()
	if _, ok := s.Events().TryPop(); !ok {
		t.Fatal("expected an event after ForceUpdate")
	}
}

func TestSampler_DriverCannotSetBitsOutsideItsMask(t *testing.T) {
	d := &fakeDriver{mask: 0x01, bits: 0xFF} // misbehaving driver
	s := New(Options{Drivers: []Driver{d}})
	s.tick()

	ev, _ := s.Events().TryPop()
	if ev.Bitmap&^d.mask != 0 {
		t.Fatalf("sampler let a driver set bits outside its mask: %064b", ev.Bitmap)
	}
}

func TestSampler_AxisChangeTriggersEvent(t *testing.T) {
	axis := &fakeAxis{value: 10}
	s := New(Options{LeftAxis: axis})
	s.tick()
	s.Events().TryPop()

	axis.value = 20
	s.tick()
	ev, ok := s.Events().TryPop()
	if !ok || ev.LeftAxis != 20 {
		t.Fatalf("expected event with LeftAxis=20, got ok=%v ev=%+v", ok, ev)
	}
}

func TestSampler_AutocalibrationCallback(t *testing.T) {
	axis := &fakeAxis{value: 5, autocal: true}
	var calledLeft bool
	s := New(Options{LeftAxis: axis, OnAxisCalibrated: func(left bool) { calledLeft = left }})
	s.tick()
	if !calledLeft {
		t.Fatal("expected OnAxisCalibrated(true) to fire for left axis")
	}
}

func TestSampler_RunStopsOnContextCancel(t *testing.T) {
	s := New(Options{Period: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
