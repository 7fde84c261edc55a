// Package inputmap implements component C of the firmware core: the pure
// translation from firmware input numbers to HID (user) button numbers,
// with an ALT-engaged alternative table.
package inputmap

import "simwheel-go/types"

// Map is a dense, fixed-size translation table: one entry per firmware
// input number. Kept as a plain array.
type Map struct {
	entries [64]types.MapEntry
}

// New returns a Map with every entry reset to its default
// (NoAlt=i, Alt=i+64).
func New() *Map {
	m := &Map{}
	m.Reset()
	return m
}

// Reset sets every entry to NoAlt=i, Alt=i+64.
func (m *Map) Reset() {
	for i := range m.entries {
		m.entries[i] = types.MapEntry{
			NoAlt: types.UserInputNumber(i),
			Alt:   types.UserInputNumber(i + 64),
		}
	}
}

// ApplyCustomDefaults overrides individual entries with a user-supplied
// defaults table, keyed by firmware input number.
// Out-of-range keys or values are silently ignored, matching Set's rules.
func (m *Map) ApplyCustomDefaults(defaults map[types.InputNumber]types.MapEntry) {
	for f, e := range defaults {
		m.Set(f, e.NoAlt, e.Alt)
	}
}

// ResetOptimal implements the "optimal" default mode: for every
// booked firmware input without a custom default, NoAlt=i and
// Alt=i+maxFirmware, where maxFirmware is one past the highest booked
// firmware number. Entries present in customDefaults are left untouched.
func (m *Map) ResetOptimal(booked []types.InputNumber, customDefaults map[types.InputNumber]types.MapEntry) {
	maxFirmware := 0
	for _, f := range booked {
		if int(f)+1 > maxFirmware {
			maxFirmware = int(f) + 1
		}
	}
	for _, f := range booked {
		if !f.Valid() {
			continue
		}
		if _, overridden := customDefaults[f]; overridden {
			continue
		}
		m.entries[f] = types.MapEntry{
			NoAlt: types.UserInputNumber(f),
			Alt:   types.UserInputNumber(int(f) + maxFirmware),
		}
	}
	m.ApplyCustomDefaults(customDefaults)
}

// Set writes a single entry. Out-of-range arguments are silently ignored.
func (m *Map) Set(f types.InputNumber, noAlt, alt types.UserInputNumber) {
	if !f.Valid() || !noAlt.Valid() || !alt.Valid() {
		return
	}
	m.entries[f] = types.MapEntry{NoAlt: noAlt, Alt: alt}
}

// Get returns the entry for f and whether f was a valid index.
func (m *Map) Get(f types.InputNumber) (types.MapEntry, bool) {
	if !f.Valid() {
		return types.MapEntry{}, false
	}
	return m.entries[f], true
}

// Translate walks rawBitmap bit by bit: for each set bit, it looks up
// map[i].alt if altEngaged else map[i].noAlt, and sets the corresponding
// bit of low or high.
func (m *Map) Translate(altEngaged bool, rawBitmap uint64) (low, high uint64) {
	for i := 0; i < 64; i++ {
		bit := uint64(1) << uint(i)
		if rawBitmap&bit == 0 {
			continue
		}
		e := m.entries[i]
		u := e.NoAlt
		if altEngaged {
			u = e.Alt
		}
		isHigh, pos := u.Split()
		if isHigh {
			high |= uint64(1) << pos
		} else {
			low |= uint64(1) << pos
		}
	}
	return low, high
}
