package hidreport

import "simwheel-go/types"

// Capabilities is the read-only snapshot reported on feature ID 2. It is
// computed once during configuration (see capset) and never changes while
// running.
type Capabilities struct {
	MajorVersion, MinorVersion uint16
	Flags                      types.CapabilityFlags
	Serial                     [8]byte
	MaxFPS                     uint8
	PixelCount                 [3]uint8
}

// readCapabilities packs the device's fixed capability snapshot. Reads
// always succeed regardless of the security lock.
func (d *Dispatcher) readCapabilities() []byte {
	return packCapabilities(d.caps)
}
