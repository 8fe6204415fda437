package rounding

import (
	"math"
	"testing"
)

func TestF64ToI32Saturates(t *testing.T) {
	got, flags := F64ToI32(1e18, RNE)
	if got != math.MaxInt32 {
		t.Errorf("F64ToI32(1e18) = %v, want MaxInt32", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag on saturation")
	}
}

func TestF64ToI32NegativeSaturates(t *testing.T) {
	got, flags := F64ToI32(-1e18, RNE)
	if got != math.MinInt32 {
		t.Errorf("F64ToI32(-1e18) = %v, want MinInt32", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag on saturation")
	}
}

func TestF64ToU32RejectsNegative(t *testing.T) {
	got, flags := F64ToU32(-1.0, RNE)
	if got != 0 {
		t.Errorf("F64ToU32(-1) = %v, want 0", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag for a negative-to-unsigned conversion")
	}
}

func TestF64ToI64NaNSaturatesToMax(t *testing.T) {
	got, flags := F64ToI64(math.NaN(), RNE)
	if got != math.MaxInt64 {
		t.Errorf("F64ToI64(NaN) = %v, want MaxInt64", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag for a NaN conversion")
	}
}

func TestF64ToI64NegInfSaturatesToMin(t *testing.T) {
	got, _ := F64ToI64(math.Inf(-1), RNE)
	if got != math.MinInt64 {
		t.Errorf("F64ToI64(-Inf) = %v, want MinInt64", got)
	}
}

func TestI32ToF64Exact(t *testing.T) {
	got, flags := I32ToF64(-12345, RNE)
	if got != -12345 {
		t.Errorf("I32ToF64(-12345) = %v, want -12345", got)
	}
	if flags != 0 {
		t.Error("integer-to-binary64 widening of a 32-bit value is always exact")
	}
}

func TestU64ToF32RoundsInexactly(t *testing.T) {
	// 2^53+1 isn't representable exactly in 24 bits of significand.
	_, flags := U64ToF32(1<<53+1, RNE)
	if flags&Inexact == 0 {
		t.Error("expected Inexact flag converting a large integer to binary32")
	}
}

func TestWidenF32ToF64Exact(t *testing.T) {
	got, flags := WidenF32ToF64(float32(3.5))
	if got != 3.5 {
		t.Errorf("WidenF32ToF64(3.5) = %v, want 3.5", got)
	}
	if flags != 0 {
		t.Error("widening binary32 to binary64 is always exact")
	}
}

func TestWidenF32ToF64QuietsSignalingNaN(t *testing.T) {
	sig := math.Float32frombits(0x7FA00000)
	got, flags := WidenF32ToF64(sig)
	if !math.IsNaN(got) {
		t.Errorf("WidenF32ToF64(sNaN) = %v, want NaN", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag widening a signaling NaN")
	}
}

func TestNarrowF64ToF32RoundsUnderRNE(t *testing.T) {
	got, flags := NarrowF64ToF32(1.0000000001, RNE)
	if got != 1.0 {
		t.Errorf("NarrowF64ToF32(1.0000000001) = %v, want 1", got)
	}
	if flags&Inexact == 0 {
		t.Error("expected Inexact flag on a lossy narrowing")
	}
}

func TestResolveDynamicSubstitutesFCSR(t *testing.T) {
	eff, reserved := Resolve(Dynamic, RDN)
	if reserved {
		t.Fatal("RDN should not be reserved")
	}
	if eff != RDN {
		t.Errorf("Resolve(Dynamic, RDN) = %v, want RDN", eff)
	}
}

func TestResolveReservedFieldCode(t *testing.T) {
	_, reserved := Resolve(0b101, RNE)
	if !reserved {
		t.Error("expected funct3 field 0b101 to be reported reserved")
	}
}

func TestResolveDynamicPointingAtDynamicIsReserved(t *testing.T) {
	_, reserved := Resolve(Dynamic, Dynamic)
	if !reserved {
		t.Error("expected FCSR.RM == Dynamic to be reported reserved")
	}
}
