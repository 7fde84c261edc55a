package rotaryencoder

import (
	"testing"

	"simwheel-go/devctx"
	"simwheel-go/hwio"
	"simwheel-go/types"
)

type fakePin struct{ level bool }

func (p *fakePin) ConfigureInput(hwio.Pull) error { return nil }
func (p *fakePin) ConfigureOutput(bool) error      { return nil }
func (p *fakePin) Get() bool                       { return p.level }
func (p *fakePin) Set(v bool)                      { p.level = v }

func newEncoder(t *testing.T) (*Driver, *fakePin, *fakePin) {
	t.Helper()
	clk, dt := &fakePin{level: true}, &fakePin{level: true}
	ctx := devctx.New(nil)
	d, err := New(ctx, "test", Params{
		Clk: clk, Dt: dt, CW: 20, CCW: 21, Variant: Standard, PulseWidth: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d, clk, dt
}

// stepCW walks clk/dt through the standard full clockwise detent sequence:
// 11 -> 01 -> 00 -> 10 -> 11.
func stepCW(d *Driver, clk, dt *fakePin) {
	seq := []struct{ clk, dt bool }{
		{false, true}, {false, false}, {true, false}, {true, true},
	}
	for _, s := range seq {
		clk.level, dt.level = s.clk, s.dt
		d.FeedEdge()
	}
}

func TestRotaryEncoder_FullCWTurnEnqueuesOneDetent(t *testing.T) {
	d, clk, dt := newEncoder(t)
	stepCW(d, clk, dt)
	if d.q.Len() != 1 {
		t.Fatalf("queue len = %d, want 1 after one full CW turn", d.q.Len())
	}
}

func TestRotaryEncoder_ReadPulsesCWBitForConfiguredWidth(t *testing.T) {
	d, clk, dt := newEncoder(t)
	stepCW(d, clk, dt)

	b1 := d.Read(0)
	if b1&types.InputNumber(20).Bit() == 0 {
		t.Fatal("CW bit should be set on first read after a detent")
	}
	b2 := d.Read(b1)
	if b2&types.InputNumber(20).Bit() == 0 {
		t.Fatal("CW bit should still be set through the configured pulse width")
	}
	b3 := d.Read(b2)
	if b3&types.InputNumber(20).Bit() != 0 {
		t.Fatal("CW bit should release after the pulse width elapses")
	}
}

func TestRotaryEncoder_OverflowDropsNewDetents(t *testing.T) {
	d, clk, dt := newEncoder(t)
	for i := 0; i < detentQueueSize+4; i++ {
		stepCW(d, clk, dt)
	}
	if d.QueueDrops() == 0 {
		t.Fatal("expected queue drops once the detent queue saturates")
	}
}

func TestRotaryEncoder_MaskCoversOnlyCWAndCCW(t *testing.T) {
	d, _, _ := newEncoder(t)
	want := types.InputNumber(20).Bit() | types.InputNumber(21).Bit()
	if d.Mask() != want {
		t.Fatalf("Mask() = %064b, want %064b", d.Mask(), want)
	}
}
