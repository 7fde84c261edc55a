package hub

import "simwheel-go/types"

// mapClutchDigitalAnalog implements pipeline step 3. Exactly one of the two
// directions applies, decided by which clutch hardware is present; a rig
// with neither is left untouched, and Ready refuses to start one that binds
// clutch-only features without hardware for them.
func (h *Hub) mapClutchDigitalAnalog(f *frame) {
	switch {
	case h.cfg.Clutch.HasAnalog && h.clutchMode == types.ClutchModeButton:
		h.buttonLeftLatch = latch(h.buttonLeftLatch, f.leftAxis)
		h.buttonRightLatch = latch(h.buttonRightLatch, f.rightAxis)
		f.leftAxis, f.rightAxis = types.ClutchNoneValue, types.ClutchNoneValue
		setBit(&f.bitmap, &f.changes, h.cfg.Clutch.LeftButton, h.buttonLeftLatch)
		setBit(&f.bitmap, &f.changes, h.cfg.Clutch.RightButton, h.buttonRightLatch)

	case h.cfg.Clutch.HasDigital && !h.cfg.Clutch.HasAnalog && digitalClutchMode(h.clutchMode):
		var left, right bool
		var clearMask uint64
		if h.cfg.Clutch.LeftButton != types.Unspecified {
			left = f.bitmap&h.cfg.Clutch.LeftButton.Bit() != 0
			clearMask |= h.cfg.Clutch.LeftButton.Bit()
		}
		if h.cfg.Clutch.RightButton != types.Unspecified {
			right = f.bitmap&h.cfg.Clutch.RightButton.Bit() != 0
			clearMask |= h.cfg.Clutch.RightButton.Bit()
		}
		f.bitmap &^= clearMask
		f.changes &^= clearMask
		f.leftAxis = digitalAxis(left)
		f.rightAxis = digitalAxis(right)
	}
}

// combineClutchAxis implements pipeline step 6: collapse the left/right
// paddle positions (now definite analog values after step 3) into the
// single combined clutch axis each mode reports, per the bite point.
func (h *Hub) combineClutchAxis(f *frame) {
	bite := uint16(h.bitePoint)
	switch h.clutchMode {
	case types.ClutchModeClutch:
		f.clutchAxis = combine(f.leftAxis, f.rightAxis, bite)
		f.leftAxis, f.rightAxis = types.ClutchNoneValue, types.ClutchNoneValue
	case types.ClutchModeLaunchControlMasterLeft:
		f.clutchAxis = masterCombine(f.leftAxis, f.rightAxis, bite)
		f.leftAxis, f.rightAxis = types.ClutchNoneValue, types.ClutchNoneValue
	case types.ClutchModeLaunchControlMasterRight:
		f.clutchAxis = masterCombine(f.rightAxis, f.leftAxis, bite)
		f.leftAxis, f.rightAxis = types.ClutchNoneValue, types.ClutchNoneValue
	case types.ClutchModeAxis:
		f.clutchAxis = types.ClutchNoneValue
	default:
		f.clutchAxis, f.leftAxis, f.rightAxis = types.ClutchNoneValue, types.ClutchNoneValue, types.ClutchNoneValue
	}
}

// combine blends two paddle positions weighted by the bite point: the
// greater of the two counts for bite/255 of the result, the lesser for the
// remaining (255-bite)/255, so biting further in favours whichever paddle is
// pressed harder.
func combine(a, b uint8, bite uint16) uint8 {
	hi, lo := a, b
	if lo > hi {
		hi, lo = lo, hi
	}
	return uint8((uint16(hi)*bite + uint16(lo)*(255-bite)) / 255)
}

// masterCombine implements the launch-control "master paddle" rule: the
// master side always counts at its own position; the secondary side only
// contributes once depressed past 3/4, and then contributes the bite point
// rather than its own position (it is arming launch control, not blending).
func masterCombine(master, secondary uint8, bite uint16) uint8 {
	secondaryContribution := types.ClutchNoneValue
	if secondary > types.Clutch34Value {
		secondaryContribution = uint8(bite)
	}
	if master > secondaryContribution {
		return master
	}
	return secondaryContribution
}

// latch applies 3/4-1/4 hysteresis: past the high threshold the latch sets,
// below the low threshold it clears, and inside the dead band it holds.
func latch(current bool, position uint8) bool {
	switch {
	case position >= types.Clutch34Value:
		return true
	case position <= types.Clutch14Value:
		return false
	default:
		return current
	}
}

// digitalClutchMode reports whether m is one of the modes that expects a
// true analog clutch axis, so a digital-only rig's button must be expanded
// into one.
func digitalClutchMode(m types.ClutchWorkingMode) bool {
	switch m {
	case types.ClutchModeAxis, types.ClutchModeClutch,
		types.ClutchModeLaunchControlMasterLeft, types.ClutchModeLaunchControlMasterRight:
		return true
	default:
		return false
	}
}

func digitalAxis(pressed bool) uint8 {
	if pressed {
		return types.ClutchFullValue
	}
	return types.ClutchNoneValue
}

func setBit(bitmap, changes *uint64, n types.InputNumber, set bool) {
	if n == types.Unspecified {
		return
	}
	before := *bitmap&n.Bit() != 0
	if set == before {
		return
	}
	if set {
		*bitmap |= n.Bit()
	} else {
		*bitmap &^= n.Bit()
	}
	*changes |= n.Bit()
}
