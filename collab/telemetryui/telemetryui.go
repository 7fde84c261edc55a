// Package telemetryui fans out telemetry snapshots to registered UI
// instances at each one's own throttled frame rate, with the 2-second nil
// heartbeat spec.md's telemetry-consumer collaborator requires. Grounded on
// the teacher's per-task-owns-its-own-ticker shape (sampler.Sampler's fixed
// period loop, generalized from one period to one per registered UI).
package telemetryui

import (
	"context"
	"sync"
	"time"

	"simwheel-go/collab"
	"simwheel-go/hidreport"
	"simwheel-go/x/timex"
)

const staleAfter = 2 * time.Second

// Hub fans out OnTelemetry snapshots to every registered UI, implementing
// hidreport.TelemetryConsumer.
type Hub struct {
	mu       sync.Mutex
	uis      []collab.TelemetryUI
	latest   *hidreport.TelemetryData
	lastSeen time.Time
	now      func() time.Time
}

// New returns an empty fan-out hub.
func New() *Hub {
	return &Hub{now: time.Now}
}

// Register adds a UI mailbox. Each gets its own throttle goroutine, started
// by Run.
func (h *Hub) Register(ui collab.TelemetryUI) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.uis = append(h.uis, ui)
}

// OnTelemetry implements hidreport.TelemetryConsumer: it just records the
// latest snapshot; delivery timing is entirely up to each UI's own
// throttled goroutine started by Run.
func (h *Hub) OnTelemetry(data *hidreport.TelemetryData) {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := *data
	h.latest = &cp
	h.lastSeen = h.now()
}

// Run drives every registered UI's throttled delivery loop until ctx is
// cancelled. Each UI is served by its own ticker at 1/MaxFPS, so a slow UI
// never throttles a fast one.
func (h *Hub) Run(ctx context.Context) {
	h.mu.Lock()
	uis := append([]collab.TelemetryUI(nil), h.uis...)
	h.mu.Unlock()

	var wg sync.WaitGroup
	for _, ui := range uis {
		wg.Add(1)
		go func(ui collab.TelemetryUI) {
			defer wg.Done()
			h.serve(ctx, ui)
		}(ui)
	}
	wg.Wait()
}

func (h *Hub) serve(ctx context.Context, ui collab.TelemetryUI) {
	period := time.Duration(timex.PeriodFromHz(uint32(ui.MaxFPS())))
	tick := time.NewTicker(period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			ui.Deliver(h.snapshot())
		}
	}
}

// snapshot returns the latest telemetry data, or nil if none has arrived in
// the last two seconds.
func (h *Hub) snapshot() *hidreport.TelemetryData {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil || h.now().Sub(h.lastSeen) > staleAfter {
		return nil
	}
	cp := *h.latest
	return &cp
}
