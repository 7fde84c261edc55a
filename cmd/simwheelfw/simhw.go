package main

import "simwheel-go/hwio"

// simGPIO is a digital pin with no physical backing: Set stores the driven
// level, Get reports it. Used for both the button matrix's row outputs and
// its column inputs, so every cell in this demo always reads as released.
type simGPIO struct {
	level bool
}

func (p *simGPIO) ConfigureInput(hwio.Pull) error     { p.level = true; return nil }
func (p *simGPIO) ConfigureOutput(initial bool) error { p.level = initial; return nil }
func (p *simGPIO) Get() bool                          { return p.level }
func (p *simGPIO) Set(v bool)                         { p.level = v }

// simADC returns a fixed sample; level is exported indirectly through the
// struct literal at wiring time, not mutated at runtime.
type simADC struct {
	level uint8
}

func (a *simADC) ReadU8() uint8 { return a.level }

// simI2C answers every transaction with the same little-endian word
// regardless of the register address written, enough to exercise
// collab/battery's single-register read without a real fuel gauge.
type simI2C struct {
	level uint16
}

func (i *simI2C) Tx(addr uint16, w, r []byte) error {
	if len(r) >= 2 {
		r[0] = byte(i.level)
		r[1] = byte(i.level >> 8)
	}
	return nil
}
