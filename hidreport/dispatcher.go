package hidreport

import (
	"fmt"

	"simwheel-go/devctx"
	"simwheel-go/hub"
	"simwheel-go/settings"
)

// ReversibleAxis is the subset of analogaxis.Driver the config report's
// reverse-axis simple commands need. Kept minimal and local so this package
// does not import drivers/analogaxis just for one method.
type ReversibleAxis interface {
	SetReversed(bool)
}

// BatteryCalibrator restarts the battery gauge's learned calibration, for
// the config report's "restart battery autocal" simple command.
type BatteryCalibrator interface {
	RestartCalibration()
}

// PixelSink is the subset of the LED pixel collaborator the pixel output
// report and the "show/reset pixels" simple commands drive.
type PixelSink interface {
	Set(group, index, r, g, b uint8)
	ShowAll()
	ResetAll()
}

// HardwareIDTransport is the one Transport method the hardware-ID feature
// report needs. A collab.Transport satisfies this structurally.
type HardwareIDTransport interface {
	SupportsCustomHardwareID() bool
}

// Options bundles every collaborator Dispatcher needs. Everything except
// Hub, Context, and Settings is optional: a rig with no pixels or no
// reversible axes simply leaves those commands as no-ops.
type Options struct {
	Hub      *hub.Hub
	Context  *devctx.Context
	Settings *settings.Bus

	Caps Capabilities

	Transport   HardwareIDTransport
	FactoryVID  uint16
	FactoryPID  uint16

	LeftAxis, RightAxis ReversibleAxis
	Battery             BatteryCalibrator
	Pixels              PixelSink
	Telemetry           TelemetryConsumer
}

// Dispatcher routes packed feature/output report bytes to the hub,
// input map, and collaborators, and packs the device's replies.
type Dispatcher struct {
	hub *hub.Hub
	ctx *devctx.Context
	set *settings.Bus

	caps Capabilities

	transport  HardwareIDTransport
	factoryVID uint16
	factoryPID uint16
	customVID  uint16
	customPID  uint16

	leftAxis, rightAxis               ReversibleAxis
	leftReversed, rightReversed       bool
	battery                           BatteryCalibrator
	pixels                            PixelSink

	selectedInput uint8
	selectedValid bool

	telemetry telemetryState
}

// New builds a Dispatcher. Call SetCustomHardwareID once at startup if a
// previously saved custom VID/PID was loaded from storage.
func New(o Options) *Dispatcher {
	return &Dispatcher{
		hub: o.Hub, ctx: o.Context, set: o.Settings,
		caps:       o.Caps,
		transport:  o.Transport,
		factoryVID: o.FactoryVID, factoryPID: o.FactoryPID,
		leftAxis: o.LeftAxis, rightAxis: o.RightAxis,
		battery: o.Battery, pixels: o.Pixels,
		telemetry: telemetryState{consumer: o.Telemetry},
	}
}

// SetCustomHardwareID seeds the in-memory custom VID/PID, e.g. from a value
// the storage collaborator loaded at start.
func (d *Dispatcher) SetCustomHardwareID(vid, pid uint16) {
	d.customVID, d.customPID = vid, pid
}

// CustomHardwareID returns the in-memory custom VID/PID pair, for the
// storage collaborator to persist on SaveSetting(SettingCustomHardwareID).
func (d *Dispatcher) CustomHardwareID() (vid, pid uint16) {
	return d.customVID, d.customPID
}

// ReadFeature packs the current value of feature report id. Reads always
// succeed regardless of the security lock.
func (d *Dispatcher) ReadFeature(id uint8) ([]byte, error) {
	switch id {
	case ReportIDCapabilities:
		return d.readCapabilities(), nil
	case ReportIDConfig:
		return d.readConfig(), nil
	case ReportIDButtonsMap:
		return d.readButtonsMap(), nil
	case ReportIDHardwareID:
		return d.readHardwareID(), nil
	default:
		return nil, fmt.Errorf("hidreport: unknown feature report id %d", id)
	}
}

// WriteFeature applies a host write to feature report id. Every feature
// write except toggling the security lock itself is silently dropped while
// the lock is engaged, per the security lock semantics; WriteFeature
// reports this by returning (false, nil) rather than an error, since it is
// not a protocol violation.
func (d *Dispatcher) WriteFeature(id uint8, payload []byte) (applied bool, err error) {
	locked := d.hub.SecurityLock()
	switch id {
	case ReportIDConfig:
		if locked {
			return false, nil
		}
		return true, d.writeConfig(payload)
	case ReportIDButtonsMap:
		if locked {
			return false, nil
		}
		return true, d.writeButtonsMap(payload)
	case ReportIDHardwareID:
		if locked {
			return false, nil
		}
		return true, d.writeHardwareID(payload)
	case ReportIDCapabilities:
		return false, fmt.Errorf("hidreport: capabilities report is read-only")
	default:
		return false, fmt.Errorf("hidreport: unknown feature report id %d", id)
	}
}

// HandleOutput applies a host-to-device output report (telemetry or pixel
// data). Output reports are never subject to the security lock.
func (d *Dispatcher) HandleOutput(id uint8, payload []byte) error {
	switch id {
	case ReportIDTelemetryPowertrain:
		return d.decodePowertrain(payload)
	case ReportIDTelemetryECU:
		return d.decodeECU(payload)
	case ReportIDTelemetryRaceControl:
		return d.decodeRaceControl(payload)
	case ReportIDTelemetryGauges:
		return d.decodeGauges(payload)
	case ReportIDPixel:
		return d.handlePixel(payload)
	default:
		return fmt.Errorf("hidreport: unknown output report id %d", id)
	}
}

// PackInput builds the 20-byte input report for one hub.Report. When
// r.ConfigChanged is set, the POV byte's high nibble carries
// ridFeatureConfig; otherwise it is zero. Hub.Process sets ConfigChanged only
// after Hub.raiseConfigChanged, which nothing in this module calls, so
// reports built from Process carry a zero high nibble.
func PackInput(r hub.Report) []byte {
	pov := r.POV & 0x0F
	if r.ConfigChanged {
		pov |= ridFeatureConfig << 4
	}
	return packInput(r.Low, r.High, r.ClutchAxis, r.LeftAxis, r.RightAxis, pov)
}
