package hart

import (
	"math"

	"github.com/cart-pucminas/narvi-go/hart/rounding"
)

// funct5 values of the F/D opcode-space (opFP), decoded from the
// (funct7, funct2, rs2-field, funct3, opcode) fields.
const (
	fpAdd      = 0b00000
	fpSub      = 0b00001
	fpMul      = 0b00010
	fpDiv      = 0b00011
	fpSqrt     = 0b01011
	fpSgnj     = 0b00100
	fpMinMax   = 0b00101
	fpCvtToInt = 0b11000
	fpCvtFromI = 0b11010
	fpMvToInt  = 0b11100 // also FCLASS
	fpMvFromI  = 0b11110
	fpCompare  = 0b10100
	fpCvtFmt   = 0b01000 // FCVT.S.D / FCVT.D.S
)

// executeF executes inst as an RV32F/RV64F instruction (loads/stores use
// opLoadFP/opStoreFP; arithmetic uses opFP with funct2==00 selecting
// single precision, plus the four fused-madd opcodes).
func executeF(h *Hart, inst uint32) (handled bool, err error) {
	if !h.extensions.F {
		return false, nil
	}
	pc := h.pc

	switch opcodeOf(inst) {
	case opLoadFP:
		if funct3Of(inst) != 0b010 {
			return false, nil
		}
		addr := h.gpr.Get(rs1Of(inst)) + immIOf(inst)
		if err := h.fp.WriteSingle(rdOf(inst), h.mem.Get32(addr)); err != nil {
			return true, err
		}
		h.pc = pc + 4
		return true, nil

	case opStoreFP:
		if funct3Of(inst) != 0b010 {
			return false, nil
		}
		addr := h.gpr.Get(rs1Of(inst)) + immSOf(inst)
		bits, err := h.fp.ReadSingle(rs2Of(inst))
		if err != nil {
			return true, err
		}
		h.mem.Set32(addr, bits)
		h.pc = pc + 4
		return true, nil

	case opMAdd, opMSub, opNMSub, opNMAdd:
		if funct2Of(inst) != 0b00 {
			return false, nil
		}
		return true, executeFMadd(h, inst)

	case opFP:
		if funct2Of(inst) != 0b00 {
			return false, nil
		}
		return true, executeFOp(h, inst)

	default:
		return false, nil
	}
}

func executeFMadd(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadSingleFloat(rs1Of(inst))
	if err != nil {
		return err
	}
	b, err := h.fp.ReadSingleFloat(rs2Of(inst))
	if err != nil {
		return err
	}
	c, err := h.fp.ReadSingleFloat(rs3Of(inst))
	if err != nil {
		return err
	}
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		if err := h.fp.WriteSingleFloat(rdOf(inst), math.Float32frombits(rounding.CanonicalNaN32)); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	}

	var (
		result float32
		flags  rounding.Flags
	)
	switch opcodeOf(inst) {
	case opMAdd:
		result, flags = rounding.Fma32(a, b, c, mode)
	case opMSub:
		result, flags = rounding.Fms32(a, b, c, mode)
	case opNMSub:
		result, flags = rounding.Fnma32(a, b, c, mode)
	case opNMAdd:
		result, flags = rounding.Fnms32(a, b, c, mode)
	}
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteSingleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}

func executeFOp(h *Hart, inst uint32) error {
	pc := h.pc
	rs2 := rs2Of(inst)

	switch funct7Of(inst) >> 2 {
	case fpAdd, fpSub, fpMul, fpDiv, fpSqrt:
		return executeFArith(h, inst)
	case fpSgnj:
		a, err := h.fp.ReadSingle(rs1Of(inst))
		if err != nil {
			return err
		}
		b, err := h.fp.ReadSingle(rs2)
		if err != nil {
			return err
		}
		var out uint32
		switch funct3Of(inst) {
		case 0b000:
			out = uint32(sgnj(uint64(a), uint64(b), signBit32))
		case 0b001:
			out = uint32(sgnjn(uint64(a), uint64(b), signBit32))
		case 0b010:
			out = uint32(sgnjx(uint64(a), uint64(b), signBit32))
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved FSGNJ.S funct3")
		}
		if err := h.fp.WriteSingle(rdOf(inst), out); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	case fpMinMax:
		a, err := h.fp.ReadSingleFloat(rs1Of(inst))
		if err != nil {
			return err
		}
		b, err := h.fp.ReadSingleFloat(rs2)
		if err != nil {
			return err
		}
		var result float32
		var flags rounding.Flags
		switch funct3Of(inst) {
		case 0b000:
			result, flags = fpMin32(a, b)
		case 0b001:
			result, flags = fpMax32(a, b)
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved FMIN/FMAX.S funct3")
		}
		h.fcsr.Accumulate(flags)
		if err := h.fp.WriteSingleFloat(rdOf(inst), result); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	case fpCompare:
		a, err := h.fp.ReadSingleFloat(rs1Of(inst))
		if err != nil {
			return err
		}
		b, err := h.fp.ReadSingleFloat(rs2)
		if err != nil {
			return err
		}
		var result bool
		var signalOnQuiet bool
		switch funct3Of(inst) {
		case 0b010: // FEQ.S
			result = a == b
			signalOnQuiet = false
		case 0b001: // FLT.S
			result = a < b
			signalOnQuiet = true
		case 0b000: // FLE.S
			result = a <= b
			signalOnQuiet = true
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved compare funct3")
		}
		h.fcsr.Accumulate(fpCompareFlags32(a, b, signalOnQuiet))
		h.gpr.Set(rdOf(inst), boolToU64(result))
		h.pc = pc + 4
		return nil
	case fpMvToInt:
		switch funct3Of(inst) {
		case 0b000: // FMV.X.W
			bits, err := h.fp.ReadSingle(rs1Of(inst))
			if err != nil {
				return err
			}
			h.gpr.Set(rdOf(inst), signExtendWord(bits))
		case 0b001: // FCLASS.S
			a, err := h.fp.ReadSingleFloat(rs1Of(inst))
			if err != nil {
				return err
			}
			h.gpr.Set(rdOf(inst), classify32(a))
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved FMV.X.W/FCLASS.S funct3")
		}
		h.pc = pc + 4
		return nil
	case fpMvFromI: // FMV.W.X
		v := uint32(h.gpr.Get(rs1Of(inst)))
		if err := h.fp.WriteSingle(rdOf(inst), v); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	case fpCvtToInt:
		return executeFCvtToInt(h, inst)
	case fpCvtFromI:
		return executeFCvtFromInt(h, inst)
	case fpCvtFmt: // FCVT.S.D: narrow a double-precision source to single
		if !h.extensions.D {
			return NewFault(InstructionNotFound, pc, inst, "FCVT.S.D requires the D extension")
		}
		if rs2 != 0b00001 {
			return NewFault(ReservedInstruction, pc, inst, "reserved FCVT.S.* source format")
		}
		a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
		if err != nil {
			return err
		}
		mode, reserved := effectiveRM(h, funct3Of(inst))
		if reserved {
			if err := h.fp.WriteSingleFloat(rdOf(inst), math.Float32frombits(rounding.CanonicalNaN32)); err != nil {
				return err
			}
			h.pc = pc + 4
			return nil
		}
		result, flags := rounding.NarrowF64ToF32(a, mode)
		h.fcsr.Accumulate(flags)
		if err := h.fp.WriteSingleFloat(rdOf(inst), result); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	default:
		return NewFault(ReservedInstruction, pc, inst, "reserved OP-FP funct7")
	}
}

func executeFArith(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadSingleFloat(rs1Of(inst))
	if err != nil {
		return err
	}
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		if err := h.fp.WriteSingleFloat(rdOf(inst), math.Float32frombits(rounding.CanonicalNaN32)); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	}

	var (
		result float32
		flags  rounding.Flags
	)
	switch funct7Of(inst) >> 2 {
	case fpSqrt:
		result, flags = rounding.Sqrt32(a, mode)
	default:
		b, err := h.fp.ReadSingleFloat(rs2Of(inst))
		if err != nil {
			return err
		}
		switch funct7Of(inst) >> 2 {
		case fpAdd:
			result, flags = rounding.Add32(a, b, mode)
		case fpSub:
			result, flags = rounding.Sub32(a, b, mode)
		case fpMul:
			result, flags = rounding.Mul32(a, b, mode)
		case fpDiv:
			result, flags = rounding.Div32(a, b, mode)
		}
	}
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteSingleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}

func executeFCvtToInt(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadSingleFloat(rs1Of(inst))
	if err != nil {
		return err
	}
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		h.gpr.Set(rdOf(inst), 0)
		h.pc = pc + 4
		return nil
	}

	var (
		result uint64
		flags  rounding.Flags
	)
	switch rs2Of(inst) {
	case 0b00000: // FCVT.W.S
		v, f := rounding.F32ToI32(a, mode)
		result, flags = signExtendWord(uint32(v)), f
	case 0b00001: // FCVT.WU.S
		v, f := rounding.F32ToU32(a, mode)
		result, flags = signExtendWord(v), f
	case 0b00010: // FCVT.L.S
		v, f := rounding.F32ToI64(a, mode)
		result, flags = uint64(v), f
	case 0b00011: // FCVT.LU.S
		v, f := rounding.F32ToU64(a, mode)
		result, flags = v, f
	default:
		return NewFault(ReservedInstruction, pc, inst, "reserved FCVT.*.S rs2 field")
	}
	h.fcsr.Accumulate(flags)
	h.gpr.Set(rdOf(inst), result)
	h.pc = pc + 4
	return nil
}

func executeFCvtFromInt(h *Hart, inst uint32) error {
	pc := h.pc
	src := h.gpr.Get(rs1Of(inst))
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		if err := h.fp.WriteSingleFloat(rdOf(inst), math.Float32frombits(rounding.CanonicalNaN32)); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	}

	var (
		result float32
		flags  rounding.Flags
	)
	switch rs2Of(inst) {
	case 0b00000: // FCVT.S.W
		result, flags = rounding.I32ToF32(int32(uint32(src)), mode)
	case 0b00001: // FCVT.S.WU
		result, flags = rounding.U32ToF32(uint32(src), mode)
	case 0b00010: // FCVT.S.L
		result, flags = rounding.I64ToF32(int64(src), mode)
	case 0b00011: // FCVT.S.LU
		result, flags = rounding.U64ToF32(src, mode)
	default:
		return NewFault(ReservedInstruction, pc, inst, "reserved FCVT.S.* rs2 field")
	}
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteSingleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}
