package telemetryui

import (
	"context"
	"testing"
	"time"

	"simwheel-go/hidreport"
)

func TestHub_SnapshotNilBeforeAnyTelemetry(t *testing.T) {
	h := New()
	if got := h.snapshot(); got != nil {
		t.Fatalf("snapshot before any OnTelemetry = %+v, want nil", got)
	}
}

func TestHub_SnapshotReturnsLatestTelemetry(t *testing.T) {
	h := New()
	data := &hidreport.TelemetryData{FrameID: 7}
	h.OnTelemetry(data)

	got := h.snapshot()
	if got == nil || got.FrameID != 7 {
		t.Fatalf("snapshot = %+v, want FrameID=7", got)
	}
	if got == data {
		t.Fatalf("snapshot returned the same pointer OnTelemetry stored, want a defensive copy")
	}
}

func TestHub_SnapshotGoesStaleAfterTwoSeconds(t *testing.T) {
	h := New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	h.now = func() time.Time { return clock }

	h.OnTelemetry(&hidreport.TelemetryData{FrameID: 1})

	clock = base.Add(staleAfter)
	if got := h.snapshot(); got == nil {
		t.Fatalf("snapshot at exactly staleAfter = nil, want still fresh")
	}

	clock = base.Add(staleAfter + time.Millisecond)
	if got := h.snapshot(); got != nil {
		t.Fatalf("snapshot past staleAfter = %+v, want nil", got)
	}
}

type fakeUI struct {
	fps       uint8
	delivered chan *hidreport.TelemetryData
}

func (f *fakeUI) MaxFPS() uint8 { return f.fps }
func (f *fakeUI) Deliver(data *hidreport.TelemetryData) {
	select {
	case f.delivered <- data:
	default:
	}
}

func TestHub_RunDeliversToRegisteredUIUntilCancelled(t *testing.T) {
	h := New()
	ui := &fakeUI{fps: 50, delivered: make(chan *hidreport.TelemetryData, 4)}
	h.Register(ui)
	h.OnTelemetry(&hidreport.TelemetryData{FrameID: 42})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()

	select {
	case data := <-ui.delivered:
		if data == nil || data.FrameID != 42 {
			t.Fatalf("delivered = %+v, want FrameID=42", data)
		}
	case <-time.After(time.Second):
		t.Fatalf("no delivery within a second at 50 fps")
	}

	<-done
}
