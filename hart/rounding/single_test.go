package rounding

import (
	"math"
	"testing"
)

func TestAdd32ExactSum(t *testing.T) {
	got, flags := Add32(1.0, 2.0, RNE)
	if got != 3.0 {
		t.Errorf("Add32(1,2) = %v, want 3", got)
	}
	if flags != 0 {
		t.Errorf("expected no flags for an exact sum, got %v", flags)
	}
}

func TestAdd32InexactSetsFlag(t *testing.T) {
	_, flags := Add32(1.0, math.Float32frombits(0x2F800000 /* 2^-32 */), RNE)
	if flags&Inexact == 0 {
		t.Error("expected Inexact flag for a lossy sum")
	}
}

func TestAdd32NaNPropagatesAndQuiets(t *testing.T) {
	signaling := math.Float32frombits(0x7FA00000)
	got, flags := Add32(signaling, 1.0, RNE)
	if math.Float32bits(got) != CanonicalNaN32 {
		t.Errorf("Add32 with a signaling NaN operand = 0x%X, want canonical NaN", math.Float32bits(got))
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag when an operand is a signaling NaN")
	}
}

func TestDiv32ByZeroSetsDivByZero(t *testing.T) {
	got, flags := Div32(1.0, 0.0, RNE)
	if !math.IsInf(float64(got), 1) {
		t.Errorf("Div32(1,0) = %v, want +Inf", got)
	}
	if flags&DivByZero == 0 {
		t.Error("expected DivByZero flag")
	}
}

func TestZeroOverZeroIsInvalid(t *testing.T) {
	got, flags := Div32(0, 0, RNE)
	if !math.IsNaN(float64(got)) {
		t.Errorf("Div32(0,0) = %v, want NaN", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag for 0/0")
	}
}

func TestZeroSignOnCancelRDN(t *testing.T) {
	got, _ := Sub32(1.0, 1.0, RDN)
	if !math.Signbit(float64(got)) {
		t.Error("expected -0 from exact cancellation under RDN")
	}
	got, _ = Sub32(1.0, 1.0, RNE)
	if math.Signbit(float64(got)) {
		t.Error("expected +0 from exact cancellation under RNE")
	}
}

func TestFmaSingleRounding(t *testing.T) {
	got, flags := Fma32(2, 3, 4, RNE) // 2*3+4 = 10 exactly
	if got != 10 {
		t.Errorf("Fma32(2,3,4) = %v, want 10", got)
	}
	if flags&Inexact != 0 {
		t.Error("expected no Inexact flag for an exact FMA result")
	}
}

func TestFmsFnmaFnmsReductions(t *testing.T) {
	a, b, c := float32(3), float32(4), float32(5)
	fms, _ := Fms32(a, b, c, RNE)
	if fms != 7 { // 3*4-5
		t.Errorf("Fms32 = %v, want 7", fms)
	}
	fnma, _ := Fnma32(a, b, c, RNE)
	if fnma != -7 { // -(3*4)+5
		t.Errorf("Fnma32 = %v, want -7", fnma)
	}
	fnms, _ := Fnms32(a, b, c, RNE)
	if fnms != -17 { // -(3*4)-5
		t.Errorf("Fnms32 = %v, want -17", fnms)
	}
}

func TestSqrt32NegativeIsInvalid(t *testing.T) {
	got, flags := Sqrt32(-4, RNE)
	if !math.IsNaN(float64(got)) {
		t.Errorf("Sqrt32(-4) = %v, want NaN", got)
	}
	if flags&Invalid == 0 {
		t.Error("expected Invalid flag for sqrt of a negative number")
	}
}

func TestIsSignalingNaN32(t *testing.T) {
	if !IsSignalingNaN32(math.Float32frombits(0x7FA00000)) {
		t.Error("expected 0x7FA00000 to be a signaling NaN (mantissa MSB 0)")
	}
	if IsSignalingNaN32(math.Float32frombits(0x7FC00000)) {
		t.Error("expected 0x7FC00000 to be a quiet NaN (mantissa MSB 1)")
	}
	if IsSignalingNaN32(1.0) {
		t.Error("a finite value is never a signaling NaN")
	}
}
