package hidreport

import "simwheel-go/types"

// readHardwareID reports the factory VID/PID unless a custom pair has been
// set, or zeroed VID/PID on a transport that doesn't support a custom
// hardware ID (USB) — per §9's resolution of that open question.
func (d *Dispatcher) readHardwareID() []byte {
	if d.transport == nil || !d.transport.SupportsCustomHardwareID() {
		return packHardwareID(hardwareIDWire{})
	}
	vid, pid := d.customVID, d.customPID
	if vid == 0 && pid == 0 {
		vid, pid = d.factoryVID, d.factoryPID
	}
	return packHardwareID(hardwareIDWire{VID: vid, PID: pid})
}

// writeHardwareID is silently ignored on a transport without custom
// hardware ID support. Otherwise it accepts iff controlCode matches the
// vid*pid checksum, with the vid=0,pid=0 pair requiring the fixed factory
// reset code instead.
func (d *Dispatcher) writeHardwareID(payload []byte) error {
	if d.transport == nil || !d.transport.SupportsCustomHardwareID() {
		return nil
	}
	w, err := unpackHardwareID(payload)
	if err != nil {
		return err
	}

	if w.VID == 0 && w.PID == 0 {
		if w.ControlCode != FactoryResetControlCode {
			return nil
		}
		d.customVID, d.customPID = 0, 0
		d.set.SaveSetting(types.SettingCustomHardwareID)
		return nil
	}

	want := uint16((uint32(w.VID) * uint32(w.PID)) % 65536)
	if w.ControlCode != want {
		return nil
	}
	d.customVID, d.customPID = w.VID, w.PID
	d.set.SaveSetting(types.SettingCustomHardwareID)
	return nil
}
