package hart

// Execute decodes and executes one instruction word at the hart's
// current PC, advancing PC (or branching/jumping) as a side effect. It
// tries the base integer decoder first, then M, F, and D in turn,
// skipping any extension the hart was not configured with.
// InstructionNotFound is returned once every enabled layer has declined
// the opcode.
func (h *Hart) Execute(inst uint32) error {
	pc := h.pc

	if handled, err := executeBase(h, inst); handled {
		return err
	}
	if h.extensions.M {
		if handled, err := executeM(h, inst); handled {
			return err
		}
	}
	if h.extensions.F {
		if handled, err := executeF(h, inst); handled {
			return err
		}
	}
	if h.extensions.D {
		if handled, err := executeD(h, inst); handled {
			return err
		}
	}
	return NewFault(InstructionNotFound, pc, inst, "no enabled extension recognizes this encoding")
}

// Step is a convenience wrapper around Execute that fetches the
// instruction word from the hart's own memory at PC first, as a driver
// running a program image would. It requires the instruction to be
// 4-byte aligned; the base ISA's compressed forms are out of scope.
func (h *Hart) Step() error {
	pc := h.pc
	if pc%4 != 0 {
		return NewFault(InstructionAddressMisaligned, pc, 0, "PC not a multiple of 4")
	}
	inst := h.mem.Get32(pc)
	return h.Execute(inst)
}
