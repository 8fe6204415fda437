package hart

import "math/bits"

// executeM executes inst as an RV64M instruction (OP/OP-32 with
// funct7==0000001). Only reached once executeBase has declined the
// opcode for that reason.
func executeM(h *Hart, inst uint32) (handled bool, err error) {
	switch opcodeOf(inst) {
	case opOp:
		if funct7Of(inst) != 0b0000001 {
			return false, nil
		}
		return true, executeMOp(h, inst)
	case opOp32:
		if funct7Of(inst) != 0b0000001 {
			return false, nil
		}
		return true, executeMOp32(h, inst)
	default:
		return false, nil
	}
}

func executeMOp(h *Hart, inst uint32) error {
	pc := h.pc
	a := h.gpr.Get(rs1Of(inst))
	b := h.gpr.Get(rs2Of(inst))
	rd := rdOf(inst)

	switch funct3Of(inst) {
	case 0b000: // MUL
		h.gpr.Set(rd, a*b)
	case 0b001: // MULH (signed x signed, high 64 bits of the 128-bit product)
		h.gpr.Set(rd, mulhSigned(int64(a), int64(b)))
	case 0b010: // MULHSU (a signed, b unsigned)
		h.gpr.Set(rd, mulhSignedUnsigned(int64(a), b))
	case 0b011: // MULHU (unsigned x unsigned)
		hi, _ := bits.Mul64(a, b)
		h.gpr.Set(rd, hi)
	case 0b100: // DIV
		h.gpr.Set(rd, divSigned(int64(a), int64(b)))
	case 0b101: // DIVU
		if b == 0 {
			h.gpr.Set(rd, ^uint64(0))
		} else {
			h.gpr.Set(rd, a/b)
		}
	case 0b110: // REM
		h.gpr.Set(rd, remSigned(int64(a), int64(b)))
	case 0b111: // REMU
		if b == 0 {
			h.gpr.Set(rd, a)
		} else {
			h.gpr.Set(rd, a%b)
		}
	default:
		return NewFault(ReservedInstruction, pc, inst, "unreachable M funct3")
	}
	h.pc = pc + 4
	return nil
}

func executeMOp32(h *Hart, inst uint32) error {
	pc := h.pc
	a := int32(uint32(h.gpr.Get(rs1Of(inst))))
	b := int32(uint32(h.gpr.Get(rs2Of(inst))))
	ua := uint32(a)
	ub := uint32(b)
	rd := rdOf(inst)

	switch funct3Of(inst) {
	case 0b000: // MULW
		h.gpr.Set(rd, signExtendWord(ua*ub))
	case 0b100: // DIVW
		if b == 0 {
			h.gpr.Set(rd, ^uint64(0))
		} else if a == -2147483648 && b == -1 {
			h.gpr.Set(rd, signExtendWord(ua)) // overflow: quotient = dividend
		} else {
			h.gpr.Set(rd, signExtendWord(uint32(a/b)))
		}
	case 0b101: // DIVUW
		if ub == 0 {
			h.gpr.Set(rd, ^uint64(0))
		} else {
			h.gpr.Set(rd, signExtendWord(ua/ub))
		}
	case 0b110: // REMW
		if b == 0 {
			h.gpr.Set(rd, signExtendWord(ua))
		} else if a == -2147483648 && b == -1 {
			h.gpr.Set(rd, 0)
		} else {
			h.gpr.Set(rd, signExtendWord(uint32(a%b)))
		}
	case 0b111: // REMUW
		if ub == 0 {
			h.gpr.Set(rd, signExtendWord(ua))
		} else {
			h.gpr.Set(rd, signExtendWord(ua%ub))
		}
	default:
		return NewFault(ReservedInstruction, pc, inst, "unreachable M-32 funct3")
	}
	h.pc = pc + 4
	return nil
}

// divSigned implements RISC-V DIV's canonical results for division by
// zero (-1) and signed overflow (dividend) — the ISA-defined behavior,
// not a trap.
func divSigned(a, b int64) uint64 {
	if b == 0 {
		return ^uint64(0)
	}
	if a == -9223372036854775808 && b == -1 {
		return uint64(a)
	}
	return uint64(a / b)
}

func remSigned(a, b int64) uint64 {
	if b == 0 {
		return uint64(a)
	}
	if a == -9223372036854775808 && b == -1 {
		return 0
	}
	return uint64(a % b)
}

// mulhSigned returns the high 64 bits of the signed 128-bit product a*b,
// correcting math/bits.Mul64's unsigned result for each negative operand.
func mulhSigned(a, b int64) uint64 {
	hi, _ := bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return hi
}

// mulhSignedUnsigned returns the high 64 bits of the 128-bit product of
// signed a and unsigned b.
func mulhSignedUnsigned(a int64, b uint64) uint64 {
	hi, _ := bits.Mul64(uint64(a), b)
	if a < 0 {
		hi -= b
	}
	return hi
}
