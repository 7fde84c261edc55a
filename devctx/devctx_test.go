package devctx

import (
	"testing"

	"simwheel-go/types"
)

func TestContext_ReserveGPIODuplicatePanics(t *testing.T) {
	c := New(nil)
	c.ReserveGPIO(5, "driverA")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate GPIO reservation")
		}
	}()
	c.ReserveGPIO(5, "driverB")
}

func TestContext_BookInputDuplicatePanics(t *testing.T) {
	c := New(nil)
	c.BookInput(3, "driverA")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate input booking")
		}
	}()
	c.BookInput(3, "driverB")
}

func TestContext_BookInputInvalidPanics(t *testing.T) {
	c := New(nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on invalid input number")
		}
	}()
	c.BookInput(64, "driverA")
}

func TestContext_BookedInputsSorted(t *testing.T) {
	c := New(nil)
	c.BookInput(10, "a")
	c.BookInput(2, "b")
	c.BookInput(7, "c")
	got := c.BookedInputs()
	want := []types.InputNumber{2, 7, 10}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BookedInputs() = %v, want %v", got, want)
		}
	}
}

func TestContext_StartFreezesRegistration(t *testing.T) {
	c := New(nil)
	var started bool
	c.OnStart(func() { started = true })
	c.Start()
	if !started {
		t.Fatal("OnStart callback did not fire")
	}
	if c.Phase() != PhaseRunning {
		t.Fatalf("Phase() = %v, want PhaseRunning", c.Phase())
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic booking an input after Start")
		}
	}()
	c.BookInput(1, "late")
}

func TestContext_StartIsOneShot(t *testing.T) {
	c := New(nil)
	calls := 0
	c.OnStart(func() { calls++ })
	c.Start()
	c.Start()
	if calls != 1 {
		t.Fatalf("OnStart fired %d times, want 1", calls)
	}
}

func TestContext_Shutdown(t *testing.T) {
	c := New(nil)
	calls := 0
	c.OnShutdown(func() { calls++ })
	c.Shutdown()
	c.Shutdown()
	if calls != 1 {
		t.Fatalf("OnShutdown fired %d times, want 1", calls)
	}
	if c.Phase() != PhaseShutdown {
		t.Fatalf("Phase() = %v, want PhaseShutdown", c.Phase())
	}
}

func TestContext_GPIOReserved(t *testing.T) {
	c := New(nil)
	if c.GPIOReserved(1) {
		t.Fatal("pin 1 should not be reserved yet")
	}
	c.ReserveGPIO(1, "x")
	if !c.GPIOReserved(1) {
		t.Fatal("pin 1 should be reserved")
	}
}
