package hub

import (
	"testing"

	"simwheel-go/bus"
	"simwheel-go/inputmap"
	"simwheel-go/settings"
	"simwheel-go/types"
)

func newTestHub(cfg Config) *Hub {
	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	if cfg.Map == nil {
		cfg.Map = inputmap.New()
	}
	return New(cfg, settings.New(conn))
}

func ev(bitmap, changes uint64, left, right uint8) types.RawInputEvent {
	return types.RawInputEvent{Bitmap: bitmap, Changes: changes, LeftAxis: left, RightAxis: right}
}

func TestHub_BitePointUpDownSequence(t *testing.T) {
	const biteUp, biteDown = types.InputNumber(10), types.InputNumber(11)
	h := newTestHub(Config{
		Clutch: ClutchBindings{HasAnalog: true, BiteUp: biteUp, BiteDown: biteDown},
	})

	// One paddle held past 3/4, the other released: up-press nudges +3.
	h.Process(ev(biteUp.Bit(), biteUp.Bit(), 200, 0))
	if h.bitePoint != types.DefaultBitePoint+bitePointStep {
		t.Fatalf("bitePoint = %d, want %d", h.bitePoint, types.DefaultBitePoint+bitePointStep)
	}

	// Release, then press down: -3 back to the default.
	h.Process(ev(0, biteUp.Bit(), 200, 0))
	h.Process(ev(biteDown.Bit(), biteDown.Bit(), 200, 0))
	if h.bitePoint != types.DefaultBitePoint {
		t.Fatalf("bitePoint = %d, want %d", h.bitePoint, types.DefaultBitePoint)
	}
}

func TestHub_BitePointUnchangedWhenBothPaddlesHeld(t *testing.T) {
	const biteUp = types.InputNumber(10)
	h := newTestHub(Config{
		Clutch: ClutchBindings{HasAnalog: true, BiteUp: biteUp},
	})
	before := h.bitePoint
	h.Process(ev(biteUp.Bit(), biteUp.Bit(), 200, 200)) // both paddles pressed
	if h.bitePoint != before {
		t.Fatalf("bitePoint changed to %d with both paddles held", h.bitePoint)
	}
}

func TestHub_CombinedClutchAxisMidBite(t *testing.T) {
	const left, right = types.InputNumber(0), types.InputNumber(1)
	h := newTestHub(Config{
		Clutch: ClutchBindings{HasDigital: true, LeftButton: left, RightButton: right},
	})
	h.clutchMode = types.ClutchModeClutch
	h.bitePoint = types.BitePoint(192) // roughly an F1-style deep bite point

	report := h.Process(ev(right.Bit(), right.Bit(), 0, 0))
	if report.ClutchAxis < 185 || report.ClutchAxis > 200 {
		t.Fatalf("ClutchAxis = %d, want close to 192", report.ClutchAxis)
	}
}

func TestHub_DPadNavigationValidAndInvalidCombos(t *testing.T) {
	const up, down, left, right = types.InputNumber(0), types.InputNumber(1), types.InputNumber(2), types.InputNumber(3)
	h := newTestHub(Config{
		DPad: DPadBindings{Up: up, Down: down, Left: left, Right: right},
	})
	h.dpadMode = types.DPadModeNavigation

	report := h.Process(ev(up.Bit()|right.Bit(), up.Bit()|right.Bit(), 0, 0))
	if report.POV != povUpRight {
		t.Fatalf("POV = %d, want povUpRight", report.POV)
	}

	report = h.Process(ev(up.Bit()|down.Bit(), up.Bit()|down.Bit(), 0, 0))
	if report.POV != povCenter {
		t.Fatalf("POV = %d, want povCenter for an opposite-pair contradiction", report.POV)
	}
}

func TestHub_SecurityLockComboToggles(t *testing.T) {
	const a, b = types.InputNumber(5), types.InputNumber(6)
	h := newTestHub(Config{
		Combos: ComboBindings{CycleSecurity: a.Bit() | b.Bit()},
	})
	if h.secLock {
		t.Fatal("security lock should start disengaged")
	}
	h.Process(ev(a.Bit()|b.Bit(), a.Bit()|b.Bit(), 0, 0))
	if !h.secLock {
		t.Fatal("expected security lock to engage after the combo fires")
	}
	h.Process(ev(a.Bit()|b.Bit(), a.Bit()|b.Bit(), 0, 0))
	if h.secLock {
		t.Fatal("expected security lock to toggle back off")
	}
}

func TestHub_CodedSwitchDecodesExactlyOnePosition(t *testing.T) {
	bits := []types.InputNumber{0, 1, 2}
	positions := make([]types.InputNumber, 8)
	for i := range positions {
		positions[i] = types.InputNumber(10 + i)
	}
	h := newTestHub(Config{
		Coded: CodedSwitches{{Bits: bits, Positions: positions}},
	})

	// Binary 101 = position 5.
	raw := bits[0].Bit() | bits[2].Bit()
	report := h.Process(ev(raw, raw, 0, 0))

	low := report.Low
	set := types.PopCount64(low)
	if set != 1 {
		t.Fatalf("expected exactly one position bit set, got popcount=%d (low=%064b)", set, low)
	}
}

func TestHub_NeutralGearAllOrNothing(t *testing.T) {
	const a, b, neutral = types.InputNumber(20), types.InputNumber(21), types.InputNumber(22)
	h := newTestHub(Config{
		Neutral: NeutralBindings{Input: neutral, Combo: a.Bit() | b.Bit()},
	})

	report := h.Process(ev(a.Bit()|b.Bit(), a.Bit()|b.Bit(), 0, 0))
	if report.Low&neutral.Bit() == 0 {
		t.Fatal("expected neutral bit set after engaging the combo")
	}
	if report.Low&(a.Bit()|b.Bit()) != 0 {
		t.Fatal("combo bits should be hidden while neutral is engaged")
	}

	// Releasing only one of the two combo bits must not disengage: the
	// neutral bit drops for this frame (the combo isn't fully pressed) but
	// stays engaged.
	report = h.Process(ev(a.Bit(), b.Bit(), 0, 0))
	if report.Low&neutral.Bit() != 0 {
		t.Fatal("expected neutral bit cleared on a frame where the combo isn't fully pressed")
	}
	if !h.neutralEngaged {
		t.Fatal("expected neutral to stay engaged while only part of the combo is released")
	}

	// Releasing the rest disengages.
	report = h.Process(ev(0, a.Bit(), 0, 0))
	if report.Low&neutral.Bit() != 0 {
		t.Fatal("expected neutral bit cleared after disengaging the combo")
	}
	if h.neutralEngaged {
		t.Fatal("expected neutral to disengage once all combo bits are released")
	}
}

func TestHub_DPadPassthroughWhileAltEngaged(t *testing.T) {
	const up, down, left, right, altBtn = types.InputNumber(0), types.InputNumber(1), types.InputNumber(2), types.InputNumber(3), types.InputNumber(4)
	h := newTestHub(Config{
		DPad:   DPadBindings{Up: up, Down: down, Left: left, Right: right},
		Clutch: ClutchBindings{AltAssigned: altBtn.Bit()},
	})
	h.dpadMode = types.DPadModeNavigation
	h.altMode = types.AltModeALT

	report := h.Process(ev(up.Bit()|right.Bit()|altBtn.Bit(), up.Bit()|right.Bit()|altBtn.Bit(), 0, 0))
	if report.POV != povCenter {
		t.Fatalf("POV = %d, want povCenter while ALT is engaged", report.POV)
	}
	// ALT engaged routes every untouched firmware bit through the map's Alt
	// entries (i+64), which land in the report's High half, not Low.
	if report.High&(up.Bit()|right.Bit()) != up.Bit()|right.Bit() {
		t.Fatal("expected DPAD bits to pass through as ordinary buttons while ALT is engaged")
	}
}

func TestHub_BitePointModeSelectsCalibratingPaddle(t *testing.T) {
	const biteUp = types.InputNumber(10)
	h := newTestHub(Config{
		Clutch: ClutchBindings{HasAnalog: true, BiteUp: biteUp},
	})
	h.clutchMode = types.ClutchModeLaunchControlMasterLeft
	before := h.bitePoint

	// MASTER_LEFT calibrates by pressing the right paddle with the left
	// released; left-pressed/right-released must not move the bite point.
	h.Process(ev(biteUp.Bit(), biteUp.Bit(), 200, 0))
	if h.bitePoint != before {
		t.Fatalf("bitePoint changed to %d in MASTER_LEFT with the wrong paddle pressed", h.bitePoint)
	}

	h.Process(ev(0, biteUp.Bit(), 200, 0))
	h.Process(ev(biteUp.Bit(), biteUp.Bit(), 0, 200))
	if h.bitePoint != before+bitePointStep {
		t.Fatalf("bitePoint = %d, want %d", h.bitePoint, before+bitePointStep)
	}
}

func TestHub_MapTranslateDiffersOnlyWhereEntriesDiffer(t *testing.T) {
	m := inputmap.New()
	m.Reset()
	m.Set(0, 50, 51) // noAlt != alt only for input 0

	low0, _ := m.Translate(false, 1)
	low1, _ := m.Translate(true, 1)
	if low0 == low1 {
		t.Fatal("expected map(false, b) and map(true, b) to differ for an input with distinct noAlt/alt entries")
	}

	// An input with noAlt == alt must map identically regardless of ALT state.
	m.Set(5, 5, 5)
	lowNoAlt, _ := m.Translate(false, 1<<5)
	lowAlt, _ := m.Translate(true, 1<<5)
	if lowNoAlt != lowAlt {
		t.Fatal("expected identical mapping for an input whose noAlt and alt entries match")
	}
}
