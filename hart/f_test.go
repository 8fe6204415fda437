package hart

import (
	"math"
	"testing"

	"github.com/cart-pucminas/narvi-go/hart/rounding"
)

func TestFLWFSWNaNBoxingRoundTrip(t *testing.T) {
	h := New(Extensions{F: true, D: true}, 64)
	// flen==64: a single write must NaN-box into the upper 32 bits, and
	// the subsequent read must see the original bit pattern back out.
	bits := math.Float32bits(3.5)
	_ = h.SetGPR(1, 0)
	if err := h.SetFPSingle(2, bits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// SW-equivalent for FP: FSW f2, 0(x1)
	store := encodeS(opStoreFP, 0b010, 1, 2, 0)
	if err := h.Execute(store); err != nil {
		t.Fatalf("store: %v", err)
	}
	h.SetPC(0)
	// FLW f3, 0(x1)
	load := encodeI(opLoadFP, 0b010, 3, 1, 0)
	if err := h.Execute(load); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := h.FPSingle(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bits {
		t.Errorf("round-tripped bits = 0x%X, want 0x%X", got, bits)
	}
}

func TestFADDSSetsInexactUnderRNE(t *testing.T) {
	h := New(Extensions{F: true}, 8)
	_ = h.SetFPSingle(1, math.Float32bits(1.0))
	_ = h.SetFPSingle(2, math.Float32bits(0x1p-30)) // far too small to change 1.0 exactly
	// FADD.S f3, f1, f2, rm=000 (RNE)
	inst := encodeR(opFP, 0b000, 3, 1, 2, 0b0000000)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.FCSRWord()&0x1 == 0 {
		t.Error("expected Inexact flag set after a lossy FADD.S")
	}
}

func TestFMINSSignalingNaNInvalid(t *testing.T) {
	h := New(Extensions{F: true}, 8)
	signalingNaN := uint32(0x7FA00000) // mantissa MSB 0: signaling
	_ = h.SetFPSingle(1, signalingNaN)
	_ = h.SetFPSingle(2, math.Float32bits(2.0))
	// FMIN.S f3, f1, f2
	inst := encodeR(opFP, 0b000, 3, 1, 2, 0b0010100)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.FCSRWord()&0x10 == 0 {
		t.Error("expected Invalid flag set when an operand is a signaling NaN")
	}
}

func TestFMINSPureQuietNaNInvalid(t *testing.T) {
	h := New(Extensions{F: true}, 8)
	quietNaN := uint32(0x7FC00000) // mantissa MSB 1: quiet
	_ = h.SetFPSingle(1, quietNaN)
	_ = h.SetFPSingle(2, math.Float32bits(2.0))
	// FMIN.S f3, f1, f2
	inst := encodeR(opFP, 0b000, 3, 1, 2, 0b0010100)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.FCSRWord()&0x10 == 0 {
		t.Error("expected Invalid flag set when an operand is a quiet NaN, not just a signaling one")
	}
	got, err := h.FPSingle(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != math.Float32bits(2.0) {
		t.Errorf("FMIN.S(qNaN, 2.0) = 0x%X, want the other operand 0x%X", got, math.Float32bits(2.0))
	}
}

func TestFADDSReservedRoundingModeSubstitutesCanonicalNaN(t *testing.T) {
	h := New(Extensions{F: true}, 8)
	_ = h.SetFPSingle(1, math.Float32bits(1.0))
	_ = h.SetFPSingle(2, math.Float32bits(2.0))
	// FADD.S f3, f1, f2, rm=101 (reserved)
	inst := encodeR(opFP, 0b101, 3, 1, 2, 0b0000000)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("expected a reserved rounding mode to substitute a value, not fault: %v", err)
	}
	got, err := h.FPSingle(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != rounding.CanonicalNaN32 {
		t.Errorf("FADD.S under a reserved rm = 0x%X, want the canonical quiet NaN 0x%X", got, rounding.CanonicalNaN32)
	}
	if h.FCSRWord()&0x1F != 0 {
		t.Error("a reserved rounding mode must not raise any FCSR flags")
	}
	if h.PC() != 4 {
		t.Errorf("PC = %d, want 4 (a reserved rm must still advance the PC)", h.PC())
	}
}

func TestFCVTWSReservedRoundingModeWritesZero(t *testing.T) {
	h := New(Extensions{F: true}, 8)
	_ = h.SetFPSingle(1, math.Float32bits(3.5))
	_ = h.SetGPR(3, 0xDEADBEEF)
	// FCVT.W.S x3, f1, rm=110 (reserved)
	inst := encodeR(opFP, 0b110, 3, 1, 0b00000, 0b1100000)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("expected a reserved rounding mode to substitute zero, not fault: %v", err)
	}
	got, err := h.GPR(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("FCVT.W.S under a reserved rm wrote 0x%X, want 0 (FP->int destination policy)", got)
	}
}

func TestFADDSDynamicRoundingModePointingAtReservedFCSRFieldSubstitutes(t *testing.T) {
	h := New(Extensions{F: true}, 8)
	_ = h.SetFPSingle(1, math.Float32bits(1.0))
	_ = h.SetFPSingle(2, math.Float32bits(2.0))
	h.SetFCSRWord(0b101 << 5) // RM field set to a reserved code
	// FADD.S f3, f1, f2, rm=111 (Dynamic)
	inst := encodeR(opFP, 0b111, 3, 1, 2, 0b0000000)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("expected a reserved dynamic rounding mode to substitute a value, not fault: %v", err)
	}
	got, err := h.FPSingle(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != rounding.CanonicalNaN32 {
		t.Errorf("FADD.S under a reserved dynamic rm = 0x%X, want the canonical quiet NaN 0x%X", got, rounding.CanonicalNaN32)
	}
}

func TestFDisabledFaults(t *testing.T) {
	h := New(Extensions{}, 8)
	inst := encodeR(opFP, 0b000, 3, 1, 2, 0b0000000)
	err := h.Execute(inst)
	if err == nil {
		t.Fatal("expected InstructionNotFound when F is disabled")
	}
}
