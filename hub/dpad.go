package hub

import "simwheel-go/types"

// POV hat values, clockwise from up, matching the HID POV usage's 8-way
// encoding; 0 means centered/no direction.
const (
	povCenter = 0
	povUp     = 1
	povUpRight = 2
	povRight  = 3
	povDownRight = 4
	povDown   = 5
	povDownLeft = 6
	povLeft   = 7
	povUpLeft = 8
)

// resolveDPad implements pipeline step 7. In DPadModeRegular, or while ALT
// is engaged, the four directional inputs are left as ordinary buttons (POV
// stays centered). Only in DPadModeNavigation with ALT disengaged are they
// consumed and folded into a single POV value; opposite pairs held together
// are not a diagonal, they're a contradiction, and decode to centered.
func (h *Hub) resolveDPad(f *frame) {
	if h.dpadMode != types.DPadModeNavigation || f.altEngaged {
		return
	}

	up := bitSet(f.bitmap, h.cfg.DPad.Up)
	down := bitSet(f.bitmap, h.cfg.DPad.Down)
	left := bitSet(f.bitmap, h.cfg.DPad.Left)
	right := bitSet(f.bitmap, h.cfg.DPad.Right)

	for _, n := range [4]types.InputNumber{h.cfg.DPad.Up, h.cfg.DPad.Down, h.cfg.DPad.Left, h.cfg.DPad.Right} {
		setBit(&f.bitmap, &f.changes, n, false)
	}

	if up && down {
		up, down = false, false
	}
	if left && right {
		left, right = false, false
	}

	switch {
	case up && right:
		f.pov = povUpRight
	case down && right:
		f.pov = povDownRight
	case down && left:
		f.pov = povDownLeft
	case up && left:
		f.pov = povUpLeft
	case up:
		f.pov = povUp
	case right:
		f.pov = povRight
	case down:
		f.pov = povDown
	case left:
		f.pov = povLeft
	default:
		f.pov = povCenter
	}
}

func bitSet(bitmap uint64, n types.InputNumber) bool {
	if n == types.Unspecified {
		return false
	}
	return bitmap&n.Bit() != 0
}
