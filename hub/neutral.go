package hub

import "simwheel-go/types"

// resolveNeutral implements pipeline step 8. Neutral gear is a virtual
// input never attached to hardware: engaging and disengaging are level
// conditions on the combo, tracked independently, not a toggle on a single
// edge. All combo bits held at once engages; all combo bits released at
// once disengages; anything in between leaves the engaged state alone.
// While engaged the combo's bits are hidden from the report, and the
// virtual neutral bit is reported in their place only on frames where the
// whole combo is currently pressed. A combo of fewer than two bits is
// rejected at Ready time, so it's never seen here.
func (h *Hub) resolveNeutral(f *frame) {
	combo := h.cfg.Neutral.Combo
	if combo == 0 || h.cfg.Neutral.Input == types.Unspecified {
		return
	}

	allPressed := f.bitmap&combo == combo
	allReleased := f.bitmap&combo == 0

	switch {
	case h.neutralEngaged && allReleased:
		h.neutralEngaged = false
	case !h.neutralEngaged && allPressed:
		h.neutralEngaged = true
	}

	if !h.neutralEngaged {
		return
	}

	f.bitmap &^= combo
	f.changes &^= combo
	setBit(&f.bitmap, &f.changes, h.cfg.Neutral.Input, allPressed)
}
