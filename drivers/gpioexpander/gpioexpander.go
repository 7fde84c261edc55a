// Package gpioexpander reads an I2C GPIO expander's input bank (MCP23017
// style: one or two 8-bit ports behind a register read), grounded on the
// teacher's I2C word-transaction idiom (drivers/ltc4015/bus.go's
// readWord/writeWord shape) scaled down to a single port-read register.
package gpioexpander

import (
	"simwheel-go/devctx"
	"simwheel-go/hwio"
	"simwheel-go/types"
)

// GPAReg is the MCP23017 port-A input register under the default (BANK=0)
// address map; GPBReg is port B.
const (
	GPAReg byte = 0x12
	GPBReg byte = 0x13
)

// Params configures a Driver over up to two 8-bit ports.
type Params struct {
	Bus     hwio.I2CBus
	Addr    uint16
	PortAReg, PortBReg byte // register address per port; 0 means unused
	// Inputs[port][bit] gives the firmware input number for that line, or
	// types.Unspecified to leave it unbound.
	Inputs [2][8]types.InputNumber
	Invert bool // true if the expander's pull-ups make active == low
}

// Driver implements sampler.Driver for an I2C GPIO expander bank.
type Driver struct {
	bus    hwio.I2CBus
	addr   uint16
	regs   [2]byte
	inputs [2][8]types.InputNumber
	invert bool
	mask   uint64
}

// New books every non-unspecified input number in p.Inputs.
func New(ctx *devctx.Context, owner string, p Params) *Driver {
	d := &Driver{
		bus:    p.Bus,
		addr:   p.Addr,
		regs:   [2]byte{p.PortAReg, p.PortBReg},
		inputs: p.Inputs,
		invert: p.Invert,
	}
	for port := 0; port < 2; port++ {
		if d.regs[port] == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			n := p.Inputs[port][bit]
			if n == types.Unspecified {
				continue
			}
			ctx.BookInput(n, owner)
			d.mask |= n.Bit()
		}
	}
	return d
}

func (d *Driver) Mask() uint64 { return d.mask }

// Read issues one bank-read transaction per configured port. On I2C failure
// it returns the caller's previous bits for this driver's mask, per the
// "never block, hold last known state on transient failure" driver contract.
func (d *Driver) Read(previous uint64) uint64 {
	bitmap := previous &^ d.mask
	for port := 0; port < 2; port++ {
		if d.regs[port] == 0 {
			continue
		}
		var buf [1]byte
		if err := d.bus.Tx(d.addr, []byte{d.regs[port]}, buf[:]); err != nil {
			bitmap |= previous & portMask(d.inputs[port])
			continue
		}
		level := buf[0]
		if d.invert {
			level = ^level
		}
		for bit := 0; bit < 8; bit++ {
			n := d.inputs[port][bit]
			if n == types.Unspecified {
				continue
			}
			if level&(1<<uint(bit)) != 0 {
				bitmap |= n.Bit()
			}
		}
	}
	return bitmap
}

func portMask(inputs [8]types.InputNumber) uint64 {
	var m uint64
	for _, n := range inputs {
		if n != types.Unspecified {
			m |= n.Bit()
		}
	}
	return m
}
