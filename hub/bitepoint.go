package hub

import (
	"simwheel-go/types"
	"simwheel-go/x/mathx"
)

// bitePointStep is how far one bite-up/bite-down press nudges the bite
// point.
const bitePointStep = 3

// updateBitePoint implements pipeline step 4: bite-point calibration is a
// press-and-release affair on the bite-up/bite-down buttons, but only while
// the working mode's calibrating paddle is held fully down and the other is
// fully released (the driver is bracing the clutch they're not launching
// with at the point they want to record). AXIS, ALT and BUTTON modes have
// no such paddle and are excluded outright.
func (h *Hub) updateBitePoint(f *frame) {
	up := pressedEdge(f, h.cfg.Clutch.BiteUp)
	down := pressedEdge(f, h.cfg.Clutch.BiteDown)
	setBit(&f.bitmap, &f.changes, h.cfg.Clutch.BiteUp, false)
	setBit(&f.bitmap, &f.changes, h.cfg.Clutch.BiteDown, false)

	if !calibratingPaddleHeld(f, h.clutchMode) {
		return
	}
	if !up && !down {
		return
	}

	next := int(h.bitePoint)
	if up {
		next += bitePointStep
	}
	if down {
		next -= bitePointStep
	}
	next = mathx.Clamp(next, int(types.ClutchNoneValue), int(types.ClutchFullValue))
	if types.BitePoint(next) == h.bitePoint {
		return
	}
	h.bitePoint = types.BitePoint(next)
	h.set.PublishBitePoint(uint8(h.bitePoint))
	h.set.SaveSetting(types.SettingBitePoint)
}

// calibratingPaddleHeld looks at the clutch axis positions this pipeline
// step sees, which by this point are always definite (mapClutchDigitalAnalog
// has already run). "Pressed" and "released" are deliberately asymmetric
// thresholds, not a single deadband split: pressed means past 3/4 travel,
// released means fully off, leaving a dead band between the two where
// neither is true and calibration is suspended either way. Which side must
// be pressed and which released depends on which paddle the working mode
// treats as the one being braced against the other.
func calibratingPaddleHeld(f *frame, mode types.ClutchWorkingMode) bool {
	leftPressed := f.leftAxis > types.Clutch34Value
	rightPressed := f.rightAxis > types.Clutch34Value
	leftReleased := f.leftAxis == types.ClutchNoneValue
	rightReleased := f.rightAxis == types.ClutchNoneValue

	switch mode {
	case types.ClutchModeClutch:
		return (leftPressed && rightReleased) || (rightPressed && leftReleased)
	case types.ClutchModeLaunchControlMasterLeft:
		return leftReleased && rightPressed
	case types.ClutchModeLaunchControlMasterRight:
		return leftPressed && rightReleased
	default:
		return false
	}
}

func pressedEdge(f *frame, n types.InputNumber) bool {
	if n == types.Unspecified {
		return false
	}
	return f.changes&n.Bit() != 0 && f.bitmap&n.Bit() != 0
}
