package fmtx

import (
	"errors"
	"testing"
)

func TestSprintfVerbs(t *testing.T) {
	type C struct {
		fmt  string
		args []any
		want string
	}
	for _, c := range []C{
		{"hello %s", []any{"world"}, "hello world"},
		{"num %d hex %x HEX %X", []any{255, 255, 255}, "num 255 hex ff HEX FF"},
		{"bool %t %t", []any{true, false}, "bool true false"},
		{"literal %%", nil, "literal %"},
		{"q=%q", []any{"a\"b\\c"}, `q="a\"b\\c"`},
		{"v=%v", []any{123}, "v=123"},
		{"trim: %.3s", []any{"abcdef"}, "trim: abc"},
	} {
		got := Sprintf(c.fmt, c.args...)
		if got != c.want {
			t.Fatalf("Sprintf(%q, ...) = %q, want %q", c.fmt, got, c.want)
		}
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf("bad %s: %d", "thing", 3)
	if err == nil {
		t.Fatalf("Errorf returned nil")
	}
	if err.Error() != "bad thing: 3" {
		t.Fatalf("Errorf string = %q, want %q", err.Error(), "bad thing: 3")
	}
	// Ensure it satisfies error semantics
	if !errors.Is(err, err) {
		t.Fatalf("errors.Is should be true on itself")
	}
}
