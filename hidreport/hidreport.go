// Package hidreport packs and unpacks the device's HID input, feature, and
// output reports and dispatches host writes to the right subsystem. Every
// wire struct is packed with encoding/binary over bytes.Buffer, the idiom
// the retrieval pack's USB descriptor code uses for fixed little-endian
// structs, rather than hand-rolled byte shifting.
package hidreport

// Report IDs. Feature reports (2-5) are read/write; output reports
// (20-23, 30) are host-to-device only; the input report (1) is
// device-to-host only.
const (
	ReportIDInput        = 1
	ReportIDCapabilities = 2
	ReportIDConfig       = 3
	ReportIDButtonsMap   = 4
	ReportIDHardwareID   = 5

	ReportIDTelemetryPowertrain   = 20
	ReportIDTelemetryECU          = 21
	ReportIDTelemetryRaceControl  = 22
	ReportIDTelemetryGauges       = 23

	ReportIDPixel = 30
)

// ridFeatureConfig is the report ID the host is told to re-read, carried in
// the input report's POV byte high nibble when hub.Report.ConfigChanged is
// set: the config feature report's ID.
const ridFeatureConfig = ReportIDConfig

// CapabilitiesMagic identifies the capabilities report as belonging to this
// device family, distinguishing it from an unrelated gamepad that happens
// to reuse report ID 2.
const CapabilitiesMagic = 0xBF51

// FactoryResetControlCode is the special control code that resets the
// custom hardware ID back to the factory VID/PID when written alongside
// vid=0, pid=0.
const FactoryResetControlCode = 0xAA96
