package hidreport

import "simwheel-go/types"

// Simple-command codes carried in the config report's SimpleCmd byte.
const (
	cmdRecalibrateAxes      = 1
	cmdRestartBatteryAutocal = 2
	cmdResetInputMap        = 3
	cmdSaveAllSettingsNow   = 4
	cmdReverseLeftAxis      = 5
	cmdReverseRightAxis     = 6
	cmdShowPixels           = 7
	cmdResetPixels          = 8
)

func (d *Dispatcher) readConfig() []byte {
	sec := uint8(0)
	if d.hub.SecurityLock() {
		sec = 1
	}
	return packConfig(configWire{
		ClutchMode:     uint8(d.hub.ClutchMode()),
		AltMode:        uint8(d.hub.AltMode()),
		BitePoint:      uint8(d.hub.BitePoint()),
		SimpleCmd:      0,
		DPadMode:       uint8(d.hub.DPadMode()),
		SecurityLock:   sec,
		PulseWidthMult: uint8(d.hub.PulseWidth()),
	})
}

// writeConfig applies each byte's rule independently; a malformed field
// leaves that one field unchanged rather than rejecting the whole report.
func (d *Dispatcher) writeConfig(payload []byte) error {
	w, err := unpackConfig(payload)
	if err != nil {
		return err
	}

	d.hub.SetClutchMode(types.ClutchWorkingMode(w.ClutchMode))

	if w.AltMode != 0xFF {
		mode := types.AltModeALT
		if w.AltMode == 0 {
			mode = types.AltModeRegular
		}
		d.hub.SetAltMode(mode)
	}

	if w.BitePoint < 255 {
		d.hub.SetBitePoint(types.BitePoint(w.BitePoint))
	}

	mode := types.DPadModeNavigation
	if w.DPadMode == 0 {
		mode = types.DPadModeRegular
	}
	d.hub.SetDPadMode(mode)

	d.hub.SetPulseWidth(types.PulseWidthMultiplier(w.PulseWidthMult))

	d.runSimpleCommand(w.SimpleCmd)
	return nil
}

func (d *Dispatcher) runSimpleCommand(cmd uint8) {
	switch cmd {
	case cmdRecalibrateAxes:
		d.hub.Recalibrate()
	case cmdRestartBatteryAutocal:
		if d.battery != nil {
			d.battery.RestartCalibration()
		}
	case cmdResetInputMap:
		d.hub.Map().Reset()
		d.set.SaveSetting(types.SettingInputMap)
	case cmdSaveAllSettingsNow:
		for _, k := range []types.SettingKind{
			types.SettingWorkingModes, types.SettingBitePoint, types.SettingSecurityLock,
			types.SettingInputMap, types.SettingAxisCalibration, types.SettingBatteryCalibration,
			types.SettingCustomHardwareID, types.SettingPulseWidthMultiplier,
		} {
			d.set.SaveSetting(k)
		}
	case cmdReverseLeftAxis:
		if d.leftAxis != nil {
			d.leftReversed = !d.leftReversed
			d.leftAxis.SetReversed(d.leftReversed)
			d.set.SaveSetting(types.SettingAxisCalibration)
		}
	case cmdReverseRightAxis:
		if d.rightAxis != nil {
			d.rightReversed = !d.rightReversed
			d.rightAxis.SetReversed(d.rightReversed)
			d.set.SaveSetting(types.SettingAxisCalibration)
		}
	case cmdShowPixels:
		if d.pixels != nil {
			d.pixels.ShowAll()
		}
	case cmdResetPixels:
		if d.pixels != nil {
			d.pixels.ResetAll()
		}
	}
}
