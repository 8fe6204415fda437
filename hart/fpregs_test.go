package hart

import (
	"math"
	"testing"
)

func TestFPRegistersSingleFlen32NoBoxing(t *testing.T) {
	r := newFPRegisters(32)
	bits := math.Float32bits(-1.5)
	if err := r.WriteSingle(3, bits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.ReadSingle(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bits {
		t.Errorf("ReadSingle = 0x%X, want 0x%X", got, bits)
	}
}

func TestFPRegistersDoubleOnFlen32Fails(t *testing.T) {
	r := newFPRegisters(32)
	if _, err := r.ReadDouble(1); err == nil {
		t.Fatal("expected FLENTooShort reading a double at flen==32")
	}
}

func TestFPRegistersSingleOnFlen0Fails(t *testing.T) {
	r := newFPRegisters(0)
	if _, err := r.ReadSingle(1); err == nil {
		t.Fatal("expected a fault reading a register with no FP configured")
	}
}

func TestFPRegistersSingleUnboxesCorruptedUpperBits(t *testing.T) {
	r := newFPRegisters(64)
	// Write a double directly, then read it back as a single: the upper
	// 32 bits aren't all-ones, so the read must substitute the canonical
	// single NaN rather than truncate garbage.
	if err := r.WriteDouble(5, 0x0102030405060708); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.ReadSingle(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nanBoxedSingle {
		t.Errorf("ReadSingle on an improperly boxed register = 0x%X, want 0x%X", got, nanBoxedSingle)
	}
}

func TestFPRegistersOutOfRangeFails(t *testing.T) {
	r := newFPRegisters(64)
	if err := r.WriteSingle(32, 0); err == nil {
		t.Fatal("expected RegisterNotFound for reg 32")
	}
	if err := r.WriteSingle(-1, 0); err == nil {
		t.Fatal("expected RegisterNotFound for reg -1")
	}
}
