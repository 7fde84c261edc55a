// Package hub implements component D: a pure-ish transform from a raw input
// event and the current user settings into one HID input report, applying
// the clutch, ALT, DPAD, neutral-gear, bite-point, coded-switch, and
// command-combination semantics in a fixed pipeline order. Laid out one
// file per concern (codedswitch.go, combos.go, clutch.go, bitepoint.go,
// alt.go, dpad.go, neutral.go) composed by Process below, mirroring the
// teacher's one-file-per-device-kind layout under services/hal/devices/.
package hub

import (
	"simwheel-go/devctx"
	"simwheel-go/errcode"
	"simwheel-go/inputmap"
	"simwheel-go/settings"
	"simwheel-go/types"
)

// ComboBindings names the firmware input combinations that fire a command
// when pressed together exactly (no other bits set).
type ComboBindings struct {
	CycleClutchMode uint64
	CycleAltMode    uint64
	CycleDPadMode   uint64
	Recalibrate     uint64
	CycleSecurity   uint64
}

// ClutchBindings names the inputs the clutch/bite-point/ALT steps consume.
type ClutchBindings struct {
	HasAnalog     bool
	HasDigital    bool
	LeftButton    types.InputNumber // digital clutch bit, Unspecified if none
	RightButton   types.InputNumber
	BiteUp        types.InputNumber
	BiteDown      types.InputNumber
	AltAssigned   uint64 // bits that engage ALT while held, when AltMode is AltModeALT
}

// DPadBindings names the four directional inputs.
type DPadBindings struct {
	Up, Down, Left, Right types.InputNumber
}

// NeutralBindings names the neutral-gear virtual input and its engage combo.
type NeutralBindings struct {
	Input types.InputNumber // virtual; never attached to hardware
	Combo uint64            // >= 2 hardware bits
}

// CodedSwitches is the set of configured coded-switch descriptors.
type CodedSwitches []types.CodedSwitchDescriptor

// Config bundles every configuration-time binding the hub needs. It is
// validated once by Ready before the device is allowed to start.
type Config struct {
	Combos  ComboBindings
	Clutch  ClutchBindings
	DPad    DPadBindings
	Neutral NeutralBindings
	Coded   CodedSwitches
	Map     *inputmap.Map

	// OnRecalibrate is invoked when the recalibrate-axes combo fires; it is
	// the hub's only hook back into the sampler's analog axis drivers,
	// which the hub itself has no reference to.
	OnRecalibrate func()
}

// Report is the pure output of one Process call; hidreport packs it onto
// the wire as input report ID 1.
type Report struct {
	Low, High                       uint64
	POV                             uint8
	LeftAxis, RightAxis, ClutchAxis uint8
	ConfigChanged                   bool
}

// Hub is stateless except for the listed mutable settings (working modes,
// bite point, security lock, neutral-gear-engaged flag).
type Hub struct {
	cfg Config
	set *settings.Bus

	clutchMode types.ClutchWorkingMode
	altMode    types.AltButtonsWorkingMode
	dpadMode   types.DPadWorkingMode
	secLock    types.SecurityLock
	bitePoint  types.BitePoint
	pulseWidth types.PulseWidthMultiplier

	neutralEngaged bool
	calibrating    bool
	calibratingRight bool

	// Hysteresis latches for ClutchModeButton's analog->digital mapping.
	buttonLeftLatch, buttonRightLatch bool

	configChangedPending bool
}

// New constructs a Hub at default working-mode values.
func New(cfg Config, set *settings.Bus) *Hub {
	return &Hub{
		cfg:        cfg,
		set:        set,
		clutchMode: types.DefaultClutchWorkingMode,
		altMode:    types.DefaultAltButtonsWorkingMode,
		dpadMode:   types.DefaultDPadWorkingMode,
		bitePoint:  types.DefaultBitePoint,
		pulseWidth: types.DefaultPulseWidthMultiplier,
	}
}

// Ready validates that every input number referenced by a configured
// feature has been booked, and that clutch-only features aren't bound
// without clutch hardware. Called once at device start; violations are
// fatal configuration errors.
func (h *Hub) Ready(ctx *devctx.Context) error {
	checkBooked := func(n types.InputNumber, op string) error {
		if n == types.Unspecified {
			return nil
		}
		if !ctx.InputBooked(n) {
			return &errcode.E{C: errcode.UnknownInputNumber, Op: op, Msg: "input not booked"}
		}
		return nil
	}
	checkMask := func(mask uint64, op string) error {
		for i := 0; i < 64; i++ {
			if mask&(uint64(1)<<uint(i)) == 0 {
				continue
			}
			if !ctx.InputBooked(types.InputNumber(i)) {
				return &errcode.E{C: errcode.UnknownInputNumber, Op: op, Msg: "combo references unbooked input"}
			}
		}
		return nil
	}

	if !h.cfg.Clutch.HasAnalog && !h.cfg.Clutch.HasDigital {
		if h.cfg.Clutch.BiteUp != types.Unspecified || h.cfg.Clutch.BiteDown != types.Unspecified {
			return &errcode.E{C: errcode.ConfigConflict, Op: "Ready", Msg: "bite-point inputs configured without clutch hardware"}
		}
		if h.cfg.Combos.CycleClutchMode != 0 {
			return &errcode.E{C: errcode.ConfigConflict, Op: "Ready", Msg: "cycle-clutch combo configured without clutch hardware"}
		}
	}

	for _, check := range []struct {
		n  types.InputNumber
		op string
	}{
		{h.cfg.Clutch.BiteUp, "bitePoint.up"},
		{h.cfg.Clutch.BiteDown, "bitePoint.down"},
		{h.cfg.Clutch.LeftButton, "clutch.left"},
		{h.cfg.Clutch.RightButton, "clutch.right"},
		{h.cfg.DPad.Up, "dpad.up"}, {h.cfg.DPad.Down, "dpad.down"},
		{h.cfg.DPad.Left, "dpad.left"}, {h.cfg.DPad.Right, "dpad.right"},
		{h.cfg.Neutral.Input, "neutral.input"},
	} {
		if err := checkBooked(check.n, check.op); err != nil {
			return err
		}
	}

	for _, m := range []struct {
		mask uint64
		op   string
	}{
		{h.cfg.Combos.CycleClutchMode, "combo.cycleClutch"},
		{h.cfg.Combos.CycleAltMode, "combo.cycleAlt"},
		{h.cfg.Combos.CycleDPadMode, "combo.cycleDPad"},
		{h.cfg.Combos.Recalibrate, "combo.recalibrate"},
		{h.cfg.Combos.CycleSecurity, "combo.cycleSecurity"},
		{h.cfg.Clutch.AltAssigned, "clutch.altAssigned"},
		{h.cfg.Neutral.Combo, "neutral.combo"},
	} {
		if err := checkMask(m.mask, m.op); err != nil {
			return err
		}
	}

	if c := h.cfg.Neutral.Combo; c != 0 && types.PopCount64(c) < 2 {
		return &errcode.E{C: errcode.ConfigConflict, Op: "neutral.combo", Msg: "combo needs at least two inputs"}
	}

	for _, cs := range h.cfg.Coded {
		if !cs.Valid() {
			return &errcode.E{C: errcode.UnknownInputNumber, Op: "coded-switch", Msg: "invalid descriptor shape"}
		}
		for _, b := range cs.Bits {
			if err := checkBooked(b, "coded-switch.bit"); err != nil {
				return err
			}
		}
		for _, p := range cs.Positions {
			if err := checkBooked(p, "coded-switch.position"); err != nil {
				return err
			}
		}
	}
	return nil
}

// frame is the in-flight event, mutated by each pipeline step.
type frame struct {
	bitmap, changes        uint64
	leftAxis, rightAxis    uint8
	clutchAxis             uint8
	pov                    uint8
	altEngaged             bool
}

// Process runs the full ten-step pipeline and returns the resulting input
// report.
func (h *Hub) Process(ev types.RawInputEvent) Report {
	f := &frame{
		bitmap: ev.Bitmap, changes: ev.Changes,
		leftAxis: ev.LeftAxis, rightAxis: ev.RightAxis,
	}

	h.decodeCodedSwitches(f)

	if h.handleCombos(f) {
		return Report{} // all-idle report, per step 2's "reset HID state and send it"
	}

	h.mapClutchDigitalAnalog(f)
	h.updateBitePoint(f)
	h.resolveAlt(f)
	h.combineClutchAxis(f)
	h.resolveDPad(f)
	h.resolveNeutral(f)

	low, high := h.cfg.Map.Translate(f.altEngaged, f.bitmap)

	changed := h.configChangedPending
	h.configChangedPending = false

	return Report{
		Low: low, High: high,
		POV:        f.pov,
		LeftAxis:   f.leftAxis,
		RightAxis:  f.rightAxis,
		ClutchAxis: f.clutchAxis,
		ConfigChanged: changed,
	}
}

// raiseConfigChanged marks that the next report's POV high nibble should
// carry the "re-read feature config" flag.
func (h *Hub) raiseConfigChanged() { h.configChangedPending = true }
