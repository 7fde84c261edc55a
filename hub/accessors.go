package hub

import (
	"simwheel-go/inputmap"
	"simwheel-go/types"
)

// This file is the surface hidreport's config/buttons-map feature handlers
// use to read and write the working-mode state Process consumes. Each
// setter validates and persists the way combos.go's cycle handlers do;
// invalid values are silently ignored, matching the "out-of-range writes
// are dropped, not errored" feature-report contract.

func (h *Hub) ClutchMode() types.ClutchWorkingMode { return h.clutchMode }

func (h *Hub) SetClutchMode(m types.ClutchWorkingMode) {
	if !m.Valid() {
		return
	}
	h.clutchMode = m
	h.set.SaveSetting(types.SettingWorkingModes)
}

func (h *Hub) AltMode() types.AltButtonsWorkingMode { return h.altMode }

func (h *Hub) SetAltMode(m types.AltButtonsWorkingMode) {
	h.altMode = m
	h.set.SaveSetting(types.SettingWorkingModes)
}

func (h *Hub) DPadMode() types.DPadWorkingMode { return h.dpadMode }

func (h *Hub) SetDPadMode(m types.DPadWorkingMode) {
	h.dpadMode = m
	h.set.SaveSetting(types.SettingWorkingModes)
}

func (h *Hub) SecurityLock() types.SecurityLock { return h.secLock }

// SetSecurityLock is distinct from the cycle-combo path in combos.go: it
// sets the lock to a specific value rather than toggling it, as the storage
// collaborator does when loading the saved setting.
func (h *Hub) SetSecurityLock(locked bool) {
	h.secLock = types.SecurityLock(locked)
	h.set.SaveSetting(types.SettingSecurityLock)
}

func (h *Hub) BitePoint() types.BitePoint { return h.bitePoint }

func (h *Hub) SetBitePoint(v types.BitePoint) {
	if v > types.ClutchFullValue {
		return
	}
	h.bitePoint = v
	h.set.PublishBitePoint(uint8(v))
	h.set.SaveSetting(types.SettingBitePoint)
}

func (h *Hub) PulseWidth() types.PulseWidthMultiplier { return h.pulseWidth }

func (h *Hub) SetPulseWidth(p types.PulseWidthMultiplier) {
	if !p.Valid() {
		return
	}
	h.pulseWidth = p
	h.set.SaveSetting(types.SettingPulseWidthMultiplier)
}

// Recalibrate invokes the OnRecalibrate hook, shared by the recalibrate
// combo and the config report's "recalibrate axes" simple command.
func (h *Hub) Recalibrate() {
	if h.cfg.OnRecalibrate != nil {
		h.cfg.OnRecalibrate()
	}
}

// Map exposes the input map for the buttons-map feature report. Ready has
// already validated the config at this point; the map itself has no
// booking concept, so hidreport is free to read and write any in-range
// entry.
func (h *Hub) Map() *inputmap.Map { return h.cfg.Map }
