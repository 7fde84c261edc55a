package strconvx

import "testing"

func TestFormatIntUintBases(t *testing.T) {
	type C struct {
		u    uint64
		base int
		want string
	}
	for _, c := range []C{
		{0, 2, "0"},
		{5, 2, "101"},
		{255, 16, "ff"},
		{255, 10, "255"},
		{35, 36, "z"},
	} {
		if got := FormatUint(c.u, c.base); got != c.want {
			t.Fatalf("FormatUint(%d,%d) = %q, want %q", c.u, c.base, got, c.want)
		}
	}
	if got := FormatInt(-15, 10); got != "-15" {
		t.Fatalf("FormatInt(-15,10) = %q, want -15", got)
	}
}

func TestFormatFloatBasic(t *testing.T) {
	type C struct {
		in   float64
		prec int
		want string
	}
	for _, c := range []C{
		{0, 0, "0"},
		{12.3, 1, "12.3"},
		{12.345, 2, "12.35"}, // rounding
		{-1.25, 2, "-1.25"},
	} {
		got := FormatFloat(c.in, 'f', c.prec, 64)
		if got != c.want {
			t.Fatalf("FormatFloat(%v,'f',%d) = %q, want %q", c.in, c.prec, got, c.want)
		}
	}
}
