package capset

import (
	"testing"

	"simwheel-go/types"
)

func TestBuilder_EmptyHasNoFlags(t *testing.T) {
	got := NewBuilder().Build()
	if got != 0 {
		t.Fatalf("empty builder = %v, want 0", got)
	}
}

func TestBuilder_AccumulatesOnlyRequestedFlags(t *testing.T) {
	got := NewBuilder().
		HasClutchAnalog().
		HasDPad().
		HasRotaryEncoders().
		Build()

	want := types.CapClutchAnalog.Set(types.CapDPad).Set(types.CapRotaryEncoders)
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got.Has(types.CapClutchButton) {
		t.Fatalf("unexpected CapClutchButton in %v", got)
	}
	if got.Has(types.CapBattery) {
		t.Fatalf("unexpected CapBattery in %v", got)
	}
}

func TestBuilder_ForceAddsFlagsWithoutHardwareCheck(t *testing.T) {
	got := NewBuilder().
		HasBattery().
		Force(types.CapTelemetryPowertrain.Set(types.CapTelemetryGauges)).
		Build()

	if !got.Has(types.CapBattery) || !got.Has(types.CapTelemetryPowertrain) || !got.Has(types.CapTelemetryGauges) {
		t.Fatalf("missing expected flags: %v", got)
	}
	if got.Has(types.CapTelemetryECU) {
		t.Fatalf("unexpected CapTelemetryECU in %v", got)
	}
}

func TestBuilder_ChainingIsOrderIndependent(t *testing.T) {
	a := NewBuilder().HasALT().HasBattery().HasBatteryCalibration().Build()
	b := NewBuilder().HasBatteryCalibration().HasBattery().HasALT().Build()
	if a != b {
		t.Fatalf("flag order changed result: %v != %v", a, b)
	}
}
