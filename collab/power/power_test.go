package power

import "testing"

func TestController_ShutdownCallsLatch(t *testing.T) {
	calls := 0
	c := New(nil, func() { calls++ })
	c.Shutdown()
	if calls != 1 {
		t.Fatalf("latch called %d times, want 1", calls)
	}
}

func TestController_ShutdownWithNilLatchDoesNotPanic(t *testing.T) {
	c := New(nil, nil)
	c.Shutdown()
}
