package types

// ClutchWorkingMode selects how the analog/digital clutch paddles are
// combined into the HID report.
type ClutchWorkingMode uint8

const (
	ClutchModeClutch ClutchWorkingMode = iota
	ClutchModeAxis
	ClutchModeAlt
	ClutchModeButton
	ClutchModeLaunchControlMasterLeft
	ClutchModeLaunchControlMasterRight
	clutchModeMax // sentinel, not a valid mode
)

// DefaultClutchWorkingMode is the default.
const DefaultClutchWorkingMode = ClutchModeClutch

// Valid reports whether m is one of the defined clutch working modes.
func (m ClutchWorkingMode) Valid() bool { return m < clutchModeMax }

// Cycle advances m by one, wrapping modulo the number of defined modes.
func (m ClutchWorkingMode) Cycle() ClutchWorkingMode {
	return (m + 1) % clutchModeMax
}

// AltButtonsWorkingMode selects whether ALT-assigned bits act as a toggle
// for the input map's alternate entries, or behave as plain buttons.
type AltButtonsWorkingMode uint8

const (
	AltModeRegular AltButtonsWorkingMode = iota
	AltModeALT
	altModeMax
)

// DefaultAltButtonsWorkingMode is the default.
const DefaultAltButtonsWorkingMode = AltModeALT

func (m AltButtonsWorkingMode) Valid() bool { return m < altModeMax }

func (m AltButtonsWorkingMode) Cycle() AltButtonsWorkingMode {
	return (m + 1) % altModeMax
}

// DPadWorkingMode selects whether the DPAD inputs are decoded into a POV hat
// or left as plain buttons.
type DPadWorkingMode uint8

const (
	DPadModeRegular DPadWorkingMode = iota
	DPadModeNavigation
	dPadModeMax
)

// DefaultDPadWorkingMode is the default.
const DefaultDPadWorkingMode = DPadModeNavigation

func (m DPadWorkingMode) Valid() bool { return m < dPadModeMax }

func (m DPadWorkingMode) Cycle() DPadWorkingMode {
	return (m + 1) % dPadModeMax
}

// PulseWidthMultiplier stretches a rotary-encoder pulse across several
// sampling cycles. Valid range 1..6.
type PulseWidthMultiplier uint8

const (
	PulseWidthX1 PulseWidthMultiplier = 1
	PulseWidthX2 PulseWidthMultiplier = 2
	PulseWidthX3 PulseWidthMultiplier = 3
	PulseWidthX4 PulseWidthMultiplier = 4
	PulseWidthX5 PulseWidthMultiplier = 5
	PulseWidthX6 PulseWidthMultiplier = 6
)

// DefaultPulseWidthMultiplier is the default.
const DefaultPulseWidthMultiplier = PulseWidthX2

func (p PulseWidthMultiplier) Valid() bool { return p >= PulseWidthX1 && p <= PulseWidthX6 }

// BitePoint is the clutch engagement percentage, in [0,254], default 127.
type BitePoint uint8

// DefaultBitePoint is the default.
const DefaultBitePoint BitePoint = 127

// SecurityLock rejects host configuration writes (other than reads and its
// own toggle) while engaged.
type SecurityLock bool

// Cycle flips the lock state.
func (s SecurityLock) Cycle() SecurityLock { return !s }
