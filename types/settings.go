package types

// SettingKind names a persisted user setting, the unit the storage
// collaborator loads and saves.
type SettingKind string

const (
	SettingWorkingModes        SettingKind = "working_modes"
	SettingBitePoint           SettingKind = "bite_point"
	SettingSecurityLock        SettingKind = "security_lock"
	SettingInputMap            SettingKind = "input_map"
	SettingAxisCalibration     SettingKind = "axis_calibration"
	SettingBatteryCalibration  SettingKind = "battery_calibration"
	SettingCustomHardwareID    SettingKind = "custom_hardware_id"
	SettingPulseWidthMultiplier SettingKind = "pulse_width_multiplier"
)
