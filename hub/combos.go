package hub

import "simwheel-go/types"

// handleCombos implements pipeline step 2: if changes intersects a
// combination mask and the current bitmap equals exactly that mask (no
// other bits), fire the command and signal the caller to emit an all-idle
// report instead of running the rest of the pipeline.
func (h *Hub) handleCombos(f *frame) (fired bool) {
	fires := func(mask uint64) bool {
		return mask != 0 && f.changes&mask != 0 && f.bitmap == mask
	}

	switch {
	case fires(h.cfg.Combos.CycleClutchMode):
		h.clutchMode = h.clutchMode.Cycle()
		h.set.SaveSetting(types.SettingWorkingModes)
		return true
	case fires(h.cfg.Combos.CycleAltMode):
		h.altMode = h.altMode.Cycle()
		h.set.SaveSetting(types.SettingWorkingModes)
		return true
	case fires(h.cfg.Combos.CycleDPadMode):
		h.dpadMode = h.dpadMode.Cycle()
		h.set.SaveSetting(types.SettingWorkingModes)
		return true
	case fires(h.cfg.Combos.Recalibrate):
		h.Recalibrate()
		return true
	case fires(h.cfg.Combos.CycleSecurity):
		h.secLock = h.secLock.Cycle()
		h.set.SaveSetting(types.SettingSecurityLock)
		return true
	}
	return false
}
