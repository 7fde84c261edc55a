// Package buttonmatrix scans a row/column button matrix over GPIO pins,
// generalizing the teacher's single-pin gpio_button device to N rows by M
// columns, with a per-cell debounce counter (supplemented feature 1: the
// original firmware debounces with a consecutive-equal-reads counter per
// input line rather than trusting a single 30 ms poll).
package buttonmatrix

import (
	"simwheel-go/devctx"
	"simwheel-go/hwio"
	"simwheel-go/types"
)

// DebounceThreshold is the number of consecutive equal raw reads required
// before a cell's bit is allowed to change, matching the original firmware's
// fixed debounce depth.
const DebounceThreshold = 3

// Cell binds one matrix intersection to the firmware input number it
// reports.
type Cell struct {
	Row, Col int
	Input    types.InputNumber
}

// Params configures a Driver.
type Params struct {
	// Rows are driven low one at a time (negative logic: a pressed button
	// pulls its column low through the active row).
	Rows []hwio.GPIOPin
	// Cols are read back with a pull-up enabled.
	Cols  []hwio.GPIOPin
	Cells []Cell
}

type cellState struct {
	input  types.InputNumber
	stable bool
	count  uint8
}

// Driver implements sampler.Driver for a negative-logic row/column scan.
type Driver struct {
	rows  []hwio.GPIOPin
	cols  []hwio.GPIOPin
	cells map[[2]int]*cellState
	mask  uint64
}

// New claims no GPIOs itself (the caller already claimed Rows/Cols via
// devctx.Context.ReserveGPIO before constructing Params); it books each
// cell's input number and configures row pins as outputs, column pins as
// pulled-up inputs.
func New(ctx *devctx.Context, owner string, p Params) (*Driver, error) {
	d := &Driver{
		rows:  p.Rows,
		cols:  p.Cols,
		cells: make(map[[2]int]*cellState, len(p.Cells)),
	}
	for _, r := range p.Rows {
		if err := r.ConfigureOutput(true); err != nil {
			return nil, err
		}
	}
	for _, c := range p.Cols {
		if err := c.ConfigureInput(hwio.PullUp); err != nil {
			return nil, err
		}
	}
	for _, cell := range p.Cells {
		ctx.BookInput(cell.Input, owner)
		d.mask |= cell.Input.Bit()
		d.cells[[2]int{cell.Row, cell.Col}] = &cellState{input: cell.Input}
	}
	return d, nil
}

func (d *Driver) Mask() uint64 { return d.mask }

// Read scans every row, debounces each cell, and returns the merged bitmap.
// A column reading low while its row is driven low means the button is
// pressed (negative logic).
func (d *Driver) Read(previous uint64) uint64 {
	bitmap := previous &^ d.mask
	for ri, row := range d.rows {
		row.Set(false)
		for ci, col := range d.cols {
			st, ok := d.cells[[2]int{ri, ci}]
			if ok {
				pressed := !col.Get()
				d.debounce(st, pressed)
				if st.stable {
					bitmap |= st.input.Bit()
				}
			}
		}
		row.Set(true)
	}
	return bitmap
}

// debounce requires DebounceThreshold consecutive reads that disagree with
// the current stable value before flipping it.
func (d *Driver) debounce(st *cellState, raw bool) {
	if raw == st.stable {
		st.count = 0
		return
	}
	st.count++
	if st.count >= DebounceThreshold {
		st.stable = raw
		st.count = 0
	}
}
