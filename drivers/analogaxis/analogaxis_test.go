package analogaxis

import "testing"

type fakeADC struct{ seq []uint8 }

func (a *fakeADC) ReadU8() uint8 {
	v := a.seq[0]
	if len(a.seq) > 1 {
		a.seq = a.seq[1:]
	}
	return v
}

func TestAnalogAxis_FirstReadPrimesWithoutEvent(t *testing.T) {
	adc := &fakeADC{seq: []uint8{100}}
	d := New(adc)
	_, autocal := d.Read()
	if autocal {
		t.Fatal("first read should prime the range without an autocalibration event")
	}
}

func TestAnalogAxis_NewExtremeTriggersAutocalibration(t *testing.T) {
	adc := &fakeADC{seq: []uint8{100}}
	d := New(adc)
	d.Read()
	adc.seq = []uint8{40}
	_, autocal := d.Read()
	if !autocal {
		t.Fatal("new minimum should trigger an autocalibration event")
	}
}

func TestAnalogAxis_NoSmoothingByDefault(t *testing.T) {
	adc := &fakeADC{seq: []uint8{10}}
	d := New(adc)
	v, _ := d.Read()
	if v != 10 {
		t.Fatalf("Read() = %d, want 10 (no smoothing by default)", v)
	}
}

func TestAnalogAxis_ReversedSubtractsFromFull(t *testing.T) {
	adc := &fakeADC{seq: []uint8{50}}
	d := New(adc, WithReversed(true))
	v, _ := d.Read()
	if v != clutchFullValue-50 {
		t.Fatalf("Read() = %d, want %d", v, clutchFullValue-50)
	}
}
