package hidreport

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// inputWire is report ID 1, 20 bytes: low:8, high:8, clutchAxis:1,
// leftAxis:1, rightAxis:1, pov:1.
type inputWire struct {
	Low, High                       uint64
	ClutchAxis, LeftAxis, RightAxis uint8
	POV                             uint8
}

func packInput(low, high uint64, clutchAxis, leftAxis, rightAxis, pov uint8) []byte {
	return packStruct(inputWire{Low: low, High: high, ClutchAxis: clutchAxis, LeftAxis: leftAxis, RightAxis: rightAxis, POV: pov})
}

// capabilitiesWire is report ID 2, 20 bytes: magic:2, majorVer:2,
// minorVer:2, flags:2, serial:8, maxFps:1, pixelCount:3.
type capabilitiesWire struct {
	Magic            uint16
	MajorVer         uint16
	MinorVer         uint16
	Flags            uint16
	Serial           [8]byte
	MaxFPS           uint8
	PixelCount       [3]uint8
}

func packCapabilities(c Capabilities) []byte {
	return packStruct(capabilitiesWire{
		Magic:      CapabilitiesMagic,
		MajorVer:   c.MajorVersion,
		MinorVer:   c.MinorVersion,
		Flags:      uint16(c.Flags),
		Serial:     c.Serial,
		MaxFPS:     c.MaxFPS,
		PixelCount: c.PixelCount,
	})
}

// configWire is report ID 3, 7 bytes.
type configWire struct {
	ClutchMode     uint8
	AltMode        uint8
	BitePoint      uint8
	SimpleCmd      uint8
	DPadMode       uint8
	SecurityLock   uint8
	PulseWidthMult uint8
}

func unpackConfig(b []byte) (configWire, error) {
	var w configWire
	if err := unpackStruct(b, &w); err != nil {
		return configWire{}, err
	}
	return w, nil
}

func packConfig(w configWire) []byte { return packStruct(w) }

// buttonsMapWire is report ID 4, 3 bytes: selected, noAlt, alt.
type buttonsMapWire struct {
	Selected, NoAlt, Alt uint8
}

func unpackButtonsMap(b []byte) (buttonsMapWire, error) {
	var w buttonsMapWire
	if err := unpackStruct(b, &w); err != nil {
		return buttonsMapWire{}, err
	}
	return w, nil
}

func packButtonsMap(w buttonsMapWire) []byte { return packStruct(w) }

// hardwareIDWire is report ID 5, 6 bytes: vid, pid, controlCode.
type hardwareIDWire struct {
	VID, PID, ControlCode uint16
}

func unpackHardwareID(b []byte) (hardwareIDWire, error) {
	var w hardwareIDWire
	if err := unpackStruct(b, &w); err != nil {
		return hardwareIDWire{}, err
	}
	return w, nil
}

func packHardwareID(w hardwareIDWire) []byte { return packStruct(w) }

// pixelWire is report ID 30, 6 bytes: group, index, b, g, r, reserved.
type pixelWire struct {
	Group, Index, B, G, R, Reserved uint8
}

func unpackPixel(b []byte) (pixelWire, error) {
	var w pixelWire
	if err := unpackStruct(b, &w); err != nil {
		return pixelWire{}, err
	}
	return w, nil
}

// packStruct writes v field-by-field, little-endian, into a fresh byte
// slice. v must be a fixed-size value (no pointers, slices, or strings).
func packStruct(v any) []byte {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(fmt.Sprintf("hidreport: packStruct: %v", err))
	}
	return buf.Bytes()
}

// unpackStruct reads b into v, little-endian. Returns an error rather than
// panicking since b comes from the host and may be short or malformed.
func unpackStruct(b []byte, v any) error {
	return binary.Read(bytes.NewReader(b), binary.LittleEndian, v)
}
