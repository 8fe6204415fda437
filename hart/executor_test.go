package hart

import "testing"

func TestExecuteFallsThroughAllEnabledLayers(t *testing.T) {
	h := New(Extensions{M: true, F: true, D: true}, 16)
	_ = h.SetGPR(1, 10)
	_ = h.SetGPR(2, 3)

	// ADDI x3, x1, 5 -- base layer
	if err := h.Execute(encodeI(opImm, 0b000, 3, 1, 5)); err != nil {
		t.Fatalf("ADDI: %v", err)
	}
	got, _ := h.GPR(3)
	if got != 15 {
		t.Fatalf("ADDI result = %d, want 15", got)
	}

	// MUL x4, x1, x2 -- declined by base, handled by M
	if err := h.Execute(encodeR(opOp, 0b000, 4, 1, 2, 0b0000001)); err != nil {
		t.Fatalf("MUL: %v", err)
	}
	got, _ = h.GPR(4)
	if got != 30 {
		t.Fatalf("MUL result = %d, want 30", got)
	}
}

func TestExecuteUnrecognizedOpcodeFaults(t *testing.T) {
	h := New(Extensions{}, 16)
	// opcode 0b1111111 is unassigned in every layer.
	err := h.Execute(0b1111111)
	var f *Fault
	if !asFault(err, &f) || f.Kind != InstructionNotFound {
		t.Fatalf("expected InstructionNotFound, got %v", err)
	}
}

func TestStepFaultsOnMisalignedPC(t *testing.T) {
	h := New(Extensions{}, 16)
	h.SetPC(2)
	err := h.Step()
	var f *Fault
	if !asFault(err, &f) || f.Kind != InstructionAddressMisaligned {
		t.Fatalf("expected InstructionAddressMisaligned, got %v", err)
	}
}

func TestStepFetchesAndExecutesFromMemory(t *testing.T) {
	h := New(Extensions{}, 16)
	// LUI x1, 0x12345
	h.Memory().Set32(0, encodeU(opLUI, 1, 0x12345))
	if err := h.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	got, _ := h.GPR(1)
	if got != 0x12345000 {
		t.Errorf("LUI via Step = 0x%X, want 0x12345000", got)
	}
	if h.PC() != 4 {
		t.Errorf("PC after Step = %d, want 4", h.PC())
	}
}
