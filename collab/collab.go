// Package collab defines the external collaborator contracts the firmware
// core drives but never implements itself: the host transport, persistent
// settings storage, power control, and telemetry fan-out to UI instances.
// One reference implementation of each lives in its own subpackage so the
// module builds and runs end to end rather than stopping at interfaces.
package collab

import (
	"simwheel-go/hidreport"
	"simwheel-go/types"
)

// Transport is the HID/BLE link the report codec drives. Begin/Reset mirror
// a native gamepad SDK's bootstrap calls; the Report* methods push bytes to
// the host. A Transport also satisfies hidreport.HardwareIDTransport.
type Transport interface {
	Begin(name, manufacturer string, autoPowerOffSeconds uint32, vid, pid uint16)
	Reset()
	ReportInput(report []byte)
	ReportBatteryLevel(pct uint8)
	ReportChangeInConfig()
	IsConnected() bool
	SupportsCustomHardwareID() bool
}

// Storage loads and saves one named setting's serialized bytes, in response
// to settings.Bus's LoadSetting/SaveSetting notifications. The core never
// touches the storage medium directly; only the reference implementation in
// collab/storage decides the on-disk or on-flash layout, per spec's "the
// core never touches the storage medium" rule.
type Storage interface {
	LoadSetting(kind types.SettingKind) ([]byte, bool)
	SaveSetting(kind types.SettingKind, data []byte)
}

// Power cuts device power. A composition root wires it to settings.Bus's
// low-battery notification; a Transport implementation may also drive it
// directly on its own auto-power-off timeout.
type Power interface {
	Shutdown()
}

// BatteryMonitor reports the fuel gauge's last reading and restarts its
// learned calibration on request. It satisfies hidreport.BatteryCalibrator
// structurally, so a *battery.Monitor can be wired straight into
// hidreport.Options.Battery.
type BatteryMonitor interface {
	hidreport.BatteryCalibrator
	Level() (pct int16, ok bool)
}

// TelemetryUI is one registered UI mailbox. Deliver is called at most at
// MaxFPS, and with a nil snapshot when no frame has arrived in the last two
// seconds, per spec's "periodic null when no frame has arrived" rule.
type TelemetryUI interface {
	MaxFPS() uint8
	Deliver(data *hidreport.TelemetryData)
}
