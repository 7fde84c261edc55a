// Package capset builds the device capability bit-set the capabilities
// feature report advertises. Every flag is set by an explicit call: one
// HasX method per hardware kind, and Force for flags with no corresponding
// hardware check (the TELEMETRY_* family). No flag is derived from what was
// registered during configuration.
package capset

import "simwheel-go/types"

// Builder accumulates capability flags with a fluent, functional-options-
// shaped API (the same chaining shape analogaxis.Option uses, generalized
// from one struct field at a time to a bit-set).
type Builder struct {
	flags types.CapabilityFlags
}

// NewBuilder starts from an empty flag set.
func NewBuilder() *Builder { return &Builder{} }

// HasClutchButton marks a digital clutch paddle pair as configured.
func (b *Builder) HasClutchButton() *Builder { return b.with(types.CapClutchButton) }

// HasClutchAnalog marks an analog clutch paddle pair as configured.
func (b *Builder) HasClutchAnalog() *Builder { return b.with(types.CapClutchAnalog) }

// HasALT marks at least one ALT-assigned input as bound.
func (b *Builder) HasALT() *Builder { return b.with(types.CapALT) }

// HasDPad marks all four DPAD directions as bound.
func (b *Builder) HasDPad() *Builder { return b.with(types.CapDPad) }

// HasBattery marks a battery monitor collaborator as wired in.
func (b *Builder) HasBattery() *Builder { return b.with(types.CapBattery) }

// HasBatteryCalibration marks the battery monitor as supporting
// recalibration.
func (b *Builder) HasBatteryCalibration() *Builder {
	return b.with(types.CapBatteryCalibrationAvailable)
}

// HasRotaryEncoders marks at least one rotary encoder driver as registered.
func (b *Builder) HasRotaryEncoders() *Builder { return b.with(types.CapRotaryEncoders) }

// Force sets flags with no corresponding hardware check, such as which
// telemetry kinds a particular firmware build consumes.
func (b *Builder) Force(flags types.CapabilityFlags) *Builder { return b.with(flags) }

func (b *Builder) with(f types.CapabilityFlags) *Builder {
	b.flags = b.flags.Set(f)
	return b
}

// Build returns the accumulated flag set.
func (b *Builder) Build() types.CapabilityFlags { return b.flags }
