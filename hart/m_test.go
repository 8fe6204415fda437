package hart

import "testing"

func TestMULHSU(t *testing.T) {
	h := New(Extensions{M: true}, 8)
	// MULHSU x3, x1, x2: a=-1 (signed), b=2 (unsigned) -> product = -2,
	// high 64 bits of the 128-bit result = all-ones (sign-extension of -1).
	_ = h.SetGPR(1, 0xFFFFFFFFFFFFFFFF)
	_ = h.SetGPR(2, 2)
	inst := encodeR(opOp, 0b010, 3, 1, 2, 0b0000001)
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := h.GPR(3)
	if got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("MULHSU(-1,2) high = 0x%X, want 0xFFFFFFFFFFFFFFFF", got)
	}
}

func TestDIVByZero(t *testing.T) {
	h := New(Extensions{M: true}, 8)
	_ = h.SetGPR(1, 7)
	_ = h.SetGPR(2, 0)
	inst := encodeR(opOp, 0b100, 3, 1, 2, 0b0000001) // DIV
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := h.GPR(3)
	if int64(got) != -1 {
		t.Errorf("DIV by zero = %d, want -1", int64(got))
	}
}

func TestDIVUByZero(t *testing.T) {
	h := New(Extensions{M: true}, 8)
	_ = h.SetGPR(1, 7)
	_ = h.SetGPR(2, 0)
	inst := encodeR(opOp, 0b101, 3, 1, 2, 0b0000001) // DIVU
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := h.GPR(3)
	if got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("DIVU by zero = 0x%X, want all-ones", got)
	}
}

func TestREMByZeroReturnsDividend(t *testing.T) {
	h := New(Extensions{M: true}, 8)
	_ = h.SetGPR(1, 7)
	_ = h.SetGPR(2, 0)
	inst := encodeR(opOp, 0b110, 3, 1, 2, 0b0000001) // REM
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := h.GPR(3)
	if got != 7 {
		t.Errorf("REM by zero = %d, want 7", got)
	}
}

func TestDIVOverflow(t *testing.T) {
	h := New(Extensions{M: true}, 8)
	_ = h.SetGPR(1, 0x8000000000000000) // INT64_MIN
	_ = h.SetGPR(2, 0xFFFFFFFFFFFFFFFF) // -1
	inst := encodeR(opOp, 0b100, 3, 1, 2, 0b0000001) // DIV
	if err := h.Execute(inst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := h.GPR(3)
	if got != 0x8000000000000000 {
		t.Errorf("DIV overflow quotient = 0x%X, want dividend 0x8000000000000000", got)
	}
}

func TestMDisabledFaultsInsteadOfWrapping(t *testing.T) {
	h := New(Extensions{}, 8) // M not enabled
	_ = h.SetGPR(1, 6)
	_ = h.SetGPR(2, 3)
	inst := encodeR(opOp, 0b100, 3, 1, 2, 0b0000001)
	err := h.Execute(inst)
	if err == nil {
		t.Fatal("expected InstructionNotFound when M is disabled")
	}
	var f *Fault
	if !asFault(err, &f) || f.Kind != InstructionNotFound {
		t.Errorf("expected InstructionNotFound, got %v", err)
	}
}
