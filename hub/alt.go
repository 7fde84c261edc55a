package hub

import "simwheel-go/types"

// resolveAlt implements pipeline step 5. ALT can be engaged two independent
// ways: a dedicated set of buttons held down while AltMode is AltModeALT, or
// the clutch paddles themselves when ClutchMode is ClutchModeAlt (a rig
// without spare buttons can dedicate its clutch to ALT instead). Either
// source consumes the bits/axis it used so they never also show up as
// ordinary report contents.
func (h *Hub) resolveAlt(f *frame) {
	var engaged bool

	if h.altMode == types.AltModeALT && h.cfg.Clutch.AltAssigned != 0 {
		if f.bitmap&h.cfg.Clutch.AltAssigned != 0 {
			engaged = true
		}
		f.bitmap &^= h.cfg.Clutch.AltAssigned
		f.changes &^= h.cfg.Clutch.AltAssigned
	}

	if h.clutchMode == types.ClutchModeAlt {
		if h.cfg.Clutch.HasAnalog {
			if f.leftAxis >= types.ClutchDefaultValue || f.rightAxis >= types.ClutchDefaultValue {
				engaged = true
			}
		}
		if h.cfg.Clutch.HasDigital {
			var mask uint64
			if h.cfg.Clutch.LeftButton != types.Unspecified {
				mask |= h.cfg.Clutch.LeftButton.Bit()
			}
			if h.cfg.Clutch.RightButton != types.Unspecified {
				mask |= h.cfg.Clutch.RightButton.Bit()
			}
			if f.bitmap&mask != 0 {
				engaged = true
			}
			f.bitmap &^= mask
			f.changes &^= mask
		}
	}

	f.altEngaged = engaged
}
