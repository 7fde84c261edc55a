package battery

import (
	"testing"
	"time"

	"simwheel-go/bus"
	"simwheel-go/settings"
)

type fakeI2C struct {
	raw uint16
	err error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	r[0] = byte(f.raw)
	r[1] = byte(f.raw >> 8)
	return nil
}

func newTestMonitor(t *testing.T, i2c *fakeI2C) (*Monitor, *settings.Bus) {
	t.Helper()
	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	set := settings.New(conn)
	return New(i2c, 0x36, set), set
}

func TestMonitor_LevelBeforeAnyPollReportsNotOk(t *testing.T) {
	m, _ := newTestMonitor(t, &fakeI2C{})
	if _, ok := m.Level(); ok {
		t.Fatalf("Level before any poll reports ok=true")
	}
}

func TestMonitor_PollUpdatesLevelOnSuccess(t *testing.T) {
	m, _ := newTestMonitor(t, &fakeI2C{raw: 7500}) // 75.00%
	m.poll()

	pct, ok := m.Level()
	if !ok || pct != 75 {
		t.Fatalf("Level after poll = %v, ok=%v, want 75, true", pct, ok)
	}
}

func TestMonitor_PollPreservesLastLevelOnTransientError(t *testing.T) {
	i2c := &fakeI2C{raw: 6000}
	m, _ := newTestMonitor(t, i2c)
	m.poll()

	i2c.err = errTransient
	m.poll()

	pct, ok := m.Level()
	if !ok || pct != 60 {
		t.Fatalf("Level after failed poll = %v, ok=%v, want 60, true (held last reading)", pct, ok)
	}
}

func TestMonitor_PollPublishesLowBatteryOnceOnCrossing(t *testing.T) {
	i2c := &fakeI2C{raw: 1500} // 15%, above threshold
	m, set := newTestMonitor(t, i2c)

	low := make(chan struct{}, 4)
	set.OnLowBattery(func() { low <- struct{}{} })

	m.poll() // 15%, not low yet

	i2c.raw = 500 // 5%, crosses below LowBatteryPercent
	m.poll()

	select {
	case <-low:
	case <-time.After(time.Second):
		t.Fatalf("no low-battery notification after crossing below threshold")
	}

	i2c.raw = 300 // still low: must not fire again
	m.poll()

	select {
	case <-low:
		t.Fatalf("low-battery notification fired again while still below threshold")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMonitor_RestartCalibrationDoesNotPanic(t *testing.T) {
	m, _ := newTestMonitor(t, &fakeI2C{})
	m.RestartCalibration()
}

type transientErr struct{}

func (transientErr) Error() string { return "transient i2c error" }

var errTransient = transientErr{}
