package hidreport

import "simwheel-go/types"

// readButtonsMap reports the currently selected firmware input and its
// live (noAlt, alt) map entry. 0xFF, 0xFF stands in for "no valid
// selection" when nothing has been selected yet or the last selected
// input isn't booked.
func (d *Dispatcher) readButtonsMap() []byte {
	w := buttonsMapWire{Selected: d.selectedInput, NoAlt: 0xFF, Alt: 0xFF}
	if d.selectedValid {
		if e, ok := d.hub.Map().Get(types.InputNumber(d.selectedInput)); ok {
			w.NoAlt, w.Alt = uint8(e.NoAlt), uint8(e.Alt)
		}
	}
	return packButtonsMap(w)
}

func (d *Dispatcher) writeButtonsMap(payload []byte) error {
	w, err := unpackButtonsMap(payload)
	if err != nil {
		return err
	}

	n := types.InputNumber(w.Selected)
	if n.Valid() && d.ctx.InputBooked(n) {
		d.selectedInput = w.Selected
		d.selectedValid = true
	}

	if d.selectedValid && w.NoAlt <= 63 && w.Alt <= 63 {
		d.hub.Map().Set(types.InputNumber(d.selectedInput), types.UserInputNumber(w.NoAlt), types.UserInputNumber(w.Alt))
		d.set.SaveSetting(types.SettingInputMap)
	}
	return nil
}
