package types

// CodedSwitchDescriptor describes a rotary selector whose position is
// encoded in binary across 3, 4, or 5 digital inputs. Bit width is inferred from len(Bits); Positions must have
// length 8, 16, or 32 to match 3/4/5 bits respectively.
type CodedSwitchDescriptor struct {
	Bits      []InputNumber
	Positions []InputNumber
}

// BitWidth returns len(Bits), the number of bit inputs; a valid descriptor
// has 3, 4, or 5.
func (d CodedSwitchDescriptor) BitWidth() int { return len(d.Bits) }

// ExpectedPositionCount returns 1<<len(Bits), the required len(Positions).
func (d CodedSwitchDescriptor) ExpectedPositionCount() int { return 1 << len(d.Bits) }

// Valid performs the shape checks that do not require the global booking
// set (distinctness of bit inputs, position-count/bit-width match).
// Cross-descriptor distinctness and booking checks are done by devctx at
// configuration time, since they require global state.
func (d CodedSwitchDescriptor) Valid() bool {
	switch d.BitWidth() {
	case 3, 4, 5:
	default:
		return false
	}
	if len(d.Positions) != d.ExpectedPositionCount() {
		return false
	}
	seen := make(map[InputNumber]bool, len(d.Bits))
	for _, b := range d.Bits {
		if !b.Valid() || seen[b] {
			return false
		}
		seen[b] = true
	}
	for _, p := range d.Positions {
		if !p.Valid() {
			return false
		}
	}
	return true
}
