package hidreport

// Special pixel-report group values, outside the real {0,1,2} group range.
const (
	pixelGroupShowAll = 0xFF
	pixelGroupReset   = 0xFE
)

// handlePixel applies one pixel output report. Per the current design,
// pixel writes bypass the security lock entirely (see DESIGN.md's Open
// Question decisions) — HandleOutput never checks it for any output
// report, so this is simply inherited rather than special-cased here.
func (d *Dispatcher) handlePixel(payload []byte) error {
	w, err := unpackPixel(payload)
	if err != nil {
		return err
	}
	if d.pixels == nil {
		return nil
	}
	switch w.Group {
	case pixelGroupShowAll:
		d.pixels.ShowAll()
	case pixelGroupReset:
		d.pixels.ResetAll()
	default:
		if w.Group <= 2 {
			d.pixels.Set(w.Group, w.Index, w.R, w.G, w.B)
		}
	}
	return nil
}
