// Package battery polls a single fuel-gauge register over I2C and publishes
// the level through settings.Bus, implementing collab.BatteryMonitor.
// Grounded on the teacher's ltc4015 word-transaction idiom
// (drivers/ltc4015/bus.go's readWord: a one-register-address write followed
// by a two-byte little-endian read), scaled down to one register instead of
// a full charger register map — chemistry modeling itself is an explicit
// Non-goal and is not reproduced here.
package battery

import (
	"context"
	"sync"
	"time"

	"simwheel-go/hwio"
	"simwheel-go/settings"
)

// LevelReg is the fuel gauge's state-of-charge register: one word, percent
// scaled 0-10000 (two decimal places), little-endian.
const LevelReg byte = 0x0D

// LowBatteryPercent is the threshold at or below which PublishLowBattery
// fires once per crossing.
const LowBatteryPercent = 10

// Monitor polls a single I2C fuel gauge register on a fixed period.
type Monitor struct {
	bus  hwio.I2CBus
	addr uint16
	set  *settings.Bus

	w, r [2]byte

	mu      sync.Mutex
	lastPct int16
	haveOne bool
	wasLow  bool
}

// New returns a Monitor polling addr over bus. set is the bus every reading
// is published through.
func New(bus hwio.I2CBus, addr uint16, set *settings.Bus) *Monitor {
	return &Monitor{bus: bus, addr: addr, set: set}
}

// Run polls every period until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, period time.Duration) {
	tick := time.NewTicker(period)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	pct, err := m.readPercent()
	if err != nil {
		return // transient I2C failure: hold last known reading, try again next tick
	}

	m.mu.Lock()
	m.lastPct, m.haveOne = pct, true
	wasLow := m.wasLow
	m.wasLow = pct <= LowBatteryPercent
	m.mu.Unlock()

	m.set.PublishBatteryLevel(pct)
	if pct <= LowBatteryPercent && !wasLow {
		m.set.PublishLowBattery()
	}
}

func (m *Monitor) readPercent() (int16, error) {
	m.w[0] = LevelReg
	if err := m.bus.Tx(m.addr, m.w[:1], m.r[:2]); err != nil {
		return 0, err
	}
	raw := uint16(m.r[0]) | uint16(m.r[1])<<8
	return int16(raw / 100), nil
}

// Level implements collab.BatteryMonitor: the last successfully polled
// reading, or ok=false if Run hasn't completed a cycle yet.
func (m *Monitor) Level() (pct int16, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPct, m.haveOne
}

// RestartCalibration implements hidreport.BatteryCalibrator. The reference
// fuel gauge here has no learned-calibration cycle to restart; a real chip
// driver would issue its own reset sequence over the same bus.
func (m *Monitor) RestartCalibration() {}
