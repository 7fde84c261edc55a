package hub

import "simwheel-go/types"

// decodeCodedSwitches implements pipeline step 1: for each configured
// descriptor, compute the position index from its bit inputs, then clear
// every participating bit (bit inputs and every position input) from the
// bitmap and changes, and set only the bit for the decoded position.
// Unrelated bits are left untouched.
func (h *Hub) decodeCodedSwitches(f *frame) {
	for _, cs := range h.cfg.Coded {
		var positionIndex int
		for i, b := range cs.Bits {
			if f.bitmap&b.Bit() != 0 {
				positionIndex |= 1 << uint(i)
			}
		}

		var clearMask uint64
		for _, b := range cs.Bits {
			clearMask |= b.Bit()
		}
		for _, p := range cs.Positions {
			clearMask |= p.Bit()
		}

		f.bitmap &^= clearMask
		f.changes &^= clearMask

		decoded := cs.Positions[positionIndex]
		f.bitmap |= decoded.Bit()
		f.changes |= decoded.Bit()
	}
}
