// Package hwio defines the minimal hardware-access interfaces the input
// drivers are built against: a digital GPIO pin, an analog input pin, and a
// transactional I2C bus. Concrete implementations come from
// tinygo.org/x/drivers-shaped board support packages at wiring time; the
// drivers themselves only ever see these interfaces, the way the teacher's
// device builders only ever see core.GPIOHandle/core.I2CBus.
package hwio

import "tinygo.org/x/drivers"

// Pull selects a GPIO input's bias resistor.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// GPIOPin is a single digital pin, already claimed for the caller's
// exclusive use by devctx.Context.ReserveGPIO.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Get() bool
	Set(bool)
}

// ADCPin is a single analog input pin, returning a sample scaled to u8.
type ADCPin interface {
	ReadU8() uint8
}

// I2CBus is a transactional I2C bus: a combined write-then-read, mirroring
// the teacher's core.I2CBus/ltc4015 word-transaction idiom. A zero-length w
// or r is a pure read or pure write respectively. Defined as an alias of
// drivers.I2C (the same interface the teacher's drvshim.I2C adapted to), so
// any tinygo.org/x/drivers peripheral driver plugs straight into a Driver or
// Monitor here without an adapter type.
type I2CBus = drivers.I2C
