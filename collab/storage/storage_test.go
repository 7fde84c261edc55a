package storage

import (
	"testing"

	"simwheel-go/bus"
	"simwheel-go/hub"
	"simwheel-go/inputmap"
	"simwheel-go/settings"
	"simwheel-go/types"
)

// newTestService builds a Service without calling Start: load/save are
// exercised directly rather than through settings.Bus's async subscriber
// goroutines, so these tests stay deterministic.
func newTestService(t *testing.T) (*Service, *hub.Hub) {
	t.Helper()
	b := bus.NewBus(16)
	conn := b.NewConnection("test")
	set := settings.New(conn)
	h := hub.New(hub.Config{Map: inputmap.New()}, set)
	return New(NewMemoryBackend(), set, h, nil), h
}

func TestService_BitePointSaveThenLoadRoundTrips(t *testing.T) {
	svc, h := newTestService(t)

	h.SetBitePoint(types.BitePoint(200))
	svc.save(types.SettingBitePoint)

	h.SetBitePoint(types.DefaultBitePoint) // perturb in-memory value
	svc.load(types.SettingBitePoint)

	if h.BitePoint() != types.BitePoint(200) {
		t.Fatalf("bitePoint after load = %v, want 200", h.BitePoint())
	}
}

func TestService_WorkingModesSaveThenLoadRoundTrips(t *testing.T) {
	svc, h := newTestService(t)

	h.SetClutchMode(types.ClutchModeAxis)
	h.SetAltMode(types.AltModeRegular)
	h.SetDPadMode(types.DPadModeNavigation)
	svc.save(types.SettingWorkingModes)

	h.SetClutchMode(types.DefaultClutchWorkingMode)
	h.SetAltMode(types.DefaultAltButtonsWorkingMode)
	h.SetDPadMode(types.DefaultDPadWorkingMode)
	svc.load(types.SettingWorkingModes)

	if h.ClutchMode() != types.ClutchModeAxis || h.AltMode() != types.AltModeRegular || h.DPadMode() != types.DPadModeNavigation {
		t.Fatalf("working modes after load = %v/%v/%v, want Axis/Regular/Navigation", h.ClutchMode(), h.AltMode(), h.DPadMode())
	}
}

func TestService_InputMapSaveThenLoadRoundTrips(t *testing.T) {
	svc, h := newTestService(t)

	h.Map().Set(5, 10, 20)
	svc.save(types.SettingInputMap)

	h.Map().Reset()
	svc.load(types.SettingInputMap)

	e, ok := h.Map().Get(5)
	if !ok || e.NoAlt != 10 || e.Alt != 20 {
		t.Fatalf("map entry 5 after load = %+v, want noAlt=10 alt=20", e)
	}
}

func TestService_SecurityLockSaveThenLoadRoundTrips(t *testing.T) {
	svc, h := newTestService(t)

	h.SetSecurityLock(true)
	svc.save(types.SettingSecurityLock)

	h.SetSecurityLock(false)
	svc.load(types.SettingSecurityLock)

	if !bool(h.SecurityLock()) {
		t.Fatalf("securityLock after load = false, want true")
	}
}

func TestService_LoadMissingKeyIsANoOp(t *testing.T) {
	svc, h := newTestService(t)
	before := h.BitePoint()

	svc.load(types.SettingBitePoint) // never saved: backend has nothing for this kind

	if h.BitePoint() != before {
		t.Fatalf("bitePoint changed on load of an absent key: got %v, want %v", h.BitePoint(), before)
	}
}

func TestService_UnknownSettingKindIsANoOp(t *testing.T) {
	svc, _ := newTestService(t)
	svc.load(types.SettingKind("not_a_real_kind"))
	svc.save(types.SettingKind("not_a_real_kind"))
}

func TestMemoryBackend_LoadSaveRoundTrip(t *testing.T) {
	b := NewMemoryBackend()
	if _, ok := b.LoadSetting(types.SettingBitePoint); ok {
		t.Fatalf("empty backend reported a value present")
	}
	b.SaveSetting(types.SettingBitePoint, []byte("abc"))
	got, ok := b.LoadSetting(types.SettingBitePoint)
	if !ok || string(got) != "abc" {
		t.Fatalf("got %q, ok=%v, want \"abc\", true", got, ok)
	}
}
