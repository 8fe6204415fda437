package hart

import (
	"math"

	"github.com/cart-pucminas/narvi-go/hart/rounding"
)

// executeD executes inst as an RV64D instruction: opLoadFP/opStoreFP with
// funct3==011, opFP arithmetic with funct2==01 selecting double
// precision, plus the four fused-madd opcodes and FCVT.D.S widening.
// FMV.X.D/FMV.D.X (rv64-only GPR<->FP moves) live here too since they
// only make sense once D is enabled.
func executeD(h *Hart, inst uint32) (handled bool, err error) {
	if !h.extensions.D {
		return false, nil
	}
	pc := h.pc

	switch opcodeOf(inst) {
	case opLoadFP:
		if funct3Of(inst) != 0b011 {
			return false, nil
		}
		addr := h.gpr.Get(rs1Of(inst)) + immIOf(inst)
		if err := h.fp.WriteDouble(rdOf(inst), h.mem.Get64(addr)); err != nil {
			return true, err
		}
		h.pc = pc + 4
		return true, nil

	case opStoreFP:
		if funct3Of(inst) != 0b011 {
			return false, nil
		}
		addr := h.gpr.Get(rs1Of(inst)) + immSOf(inst)
		bits, err := h.fp.ReadDouble(rs2Of(inst))
		if err != nil {
			return true, err
		}
		h.mem.Set64(addr, bits)
		h.pc = pc + 4
		return true, nil

	case opMAdd, opMSub, opNMSub, opNMAdd:
		if funct2Of(inst) != 0b01 {
			return false, nil
		}
		return true, executeDMadd(h, inst)

	case opFP:
		if funct2Of(inst) != 0b01 {
			return false, nil
		}
		return true, executeDOp(h, inst)

	default:
		return false, nil
	}
}

func executeDMadd(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
	if err != nil {
		return err
	}
	b, err := h.fp.ReadDoubleFloat(rs2Of(inst))
	if err != nil {
		return err
	}
	c, err := h.fp.ReadDoubleFloat(rs3Of(inst))
	if err != nil {
		return err
	}
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		if err := h.fp.WriteDoubleFloat(rdOf(inst), math.Float64frombits(rounding.CanonicalNaN64)); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	}

	var (
		result float64
		flags  rounding.Flags
	)
	switch opcodeOf(inst) {
	case opMAdd:
		result, flags = rounding.Fma64(a, b, c, mode)
	case opMSub:
		result, flags = rounding.Fms64(a, b, c, mode)
	case opNMSub:
		result, flags = rounding.Fnma64(a, b, c, mode)
	case opNMAdd:
		result, flags = rounding.Fnms64(a, b, c, mode)
	}
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteDoubleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}

// executeDCvtFromSingle handles FCVT.D.S: an exact format widening from
// a single-precision source register into a double-precision dest.
func executeDCvtFromSingle(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadSingleFloat(rs1Of(inst))
	if err != nil {
		return err
	}
	result, flags := rounding.WidenF32ToF64(a)
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteDoubleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}

func executeDOp(h *Hart, inst uint32) error {
	pc := h.pc
	rs2 := rs2Of(inst)

	switch funct7Of(inst) >> 2 {
	case fpAdd, fpSub, fpMul, fpDiv, fpSqrt:
		return executeDArith(h, inst)
	case fpSgnj:
		a, err := h.fp.ReadDouble(rs1Of(inst))
		if err != nil {
			return err
		}
		b, err := h.fp.ReadDouble(rs2)
		if err != nil {
			return err
		}
		var out uint64
		switch funct3Of(inst) {
		case 0b000:
			out = sgnj(a, b, signBit64)
		case 0b001:
			out = sgnjn(a, b, signBit64)
		case 0b010:
			out = sgnjx(a, b, signBit64)
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved FSGNJ.D funct3")
		}
		if err := h.fp.WriteDouble(rdOf(inst), out); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	case fpMinMax:
		a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
		if err != nil {
			return err
		}
		b, err := h.fp.ReadDoubleFloat(rs2)
		if err != nil {
			return err
		}
		var result float64
		var flags rounding.Flags
		switch funct3Of(inst) {
		case 0b000:
			result, flags = fpMin64(a, b)
		case 0b001:
			result, flags = fpMax64(a, b)
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved FMIN/FMAX.D funct3")
		}
		h.fcsr.Accumulate(flags)
		if err := h.fp.WriteDoubleFloat(rdOf(inst), result); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	case fpCompare:
		a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
		if err != nil {
			return err
		}
		b, err := h.fp.ReadDoubleFloat(rs2)
		if err != nil {
			return err
		}
		var result bool
		var signalOnQuiet bool
		switch funct3Of(inst) {
		case 0b010: // FEQ.D
			result = a == b
			signalOnQuiet = false
		case 0b001: // FLT.D
			result = a < b
			signalOnQuiet = true
		case 0b000: // FLE.D
			result = a <= b
			signalOnQuiet = true
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved compare funct3")
		}
		h.fcsr.Accumulate(fpCompareFlags64(a, b, signalOnQuiet))
		h.gpr.Set(rdOf(inst), boolToU64(result))
		h.pc = pc + 4
		return nil
	case fpMvToInt:
		switch funct3Of(inst) {
		case 0b000: // FMV.X.D
			bits, err := h.fp.ReadDouble(rs1Of(inst))
			if err != nil {
				return err
			}
			h.gpr.Set(rdOf(inst), bits)
		case 0b001: // FCLASS.D
			a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
			if err != nil {
				return err
			}
			h.gpr.Set(rdOf(inst), classify64(a))
		default:
			return NewFault(ReservedInstruction, pc, inst, "reserved FMV.X.D/FCLASS.D funct3")
		}
		h.pc = pc + 4
		return nil
	case fpMvFromI: // FMV.D.X
		v := h.gpr.Get(rs1Of(inst))
		if err := h.fp.WriteDouble(rdOf(inst), v); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	case fpCvtToInt:
		return executeDCvtToInt(h, inst)
	case fpCvtFromI:
		return executeDCvtFromInt(h, inst)
	case fpCvtFmt: // FCVT.D.S: widen a single-precision source to double
		if !h.extensions.F {
			return NewFault(InstructionNotFound, pc, inst, "FCVT.D.S requires the F extension")
		}
		if rs2 != 0b00000 {
			return NewFault(ReservedInstruction, pc, inst, "reserved FCVT.D.* source format")
		}
		return executeDCvtFromSingle(h, inst)
	default:
		return NewFault(ReservedInstruction, pc, inst, "reserved OP-FP funct7")
	}
}

func executeDArith(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
	if err != nil {
		return err
	}
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		if err := h.fp.WriteDoubleFloat(rdOf(inst), math.Float64frombits(rounding.CanonicalNaN64)); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	}

	var (
		result float64
		flags  rounding.Flags
	)
	switch funct7Of(inst) >> 2 {
	case fpSqrt:
		result, flags = rounding.Sqrt64(a, mode)
	default:
		b, err := h.fp.ReadDoubleFloat(rs2Of(inst))
		if err != nil {
			return err
		}
		switch funct7Of(inst) >> 2 {
		case fpAdd:
			result, flags = rounding.Add64(a, b, mode)
		case fpSub:
			result, flags = rounding.Sub64(a, b, mode)
		case fpMul:
			result, flags = rounding.Mul64(a, b, mode)
		case fpDiv:
			result, flags = rounding.Div64(a, b, mode)
		}
	}
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteDoubleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}

func executeDCvtToInt(h *Hart, inst uint32) error {
	pc := h.pc
	a, err := h.fp.ReadDoubleFloat(rs1Of(inst))
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
	case 0b00000: // FCVT.W.D
		v, f := rounding.F64ToI32(a, mode)
		result, flags = signExtendWord(uint32(v)), f
	case 0b00001: // FCVT.WU.D
		v, f := rounding.F64ToU32(a, mode)
		result, flags = signExtendWord(v), f
	case 0b00010: // FCVT.L.D
		v, f := rounding.F64ToI64(a, mode)
		result, flags = uint64(v), f
	case 0b00011: // FCVT.LU.D
		v, f := rounding.F64ToU64(a, mode)
		result, flags = v, f
	default:
		return NewFault(ReservedInstruction, pc, inst, "reserved FCVT.*.D rs2 field")
	}
	h.fcsr.Accumulate(flags)
	h.gpr.Set(rdOf(inst), result)
	h.pc = pc + 4
	return nil
}

func executeDCvtFromInt(h *Hart, inst uint32) error {
	pc := h.pc
	src := h.gpr.Get(rs1Of(inst))
	mode, reserved := effectiveRM(h, funct3Of(inst))
	if reserved {
		if err := h.fp.WriteDoubleFloat(rdOf(inst), math.Float64frombits(rounding.CanonicalNaN64)); err != nil {
			return err
		}
		h.pc = pc + 4
		return nil
	}

	var (
		result float64
		flags  rounding.Flags
	)
	switch rs2Of(inst) {
	case 0b00000: // FCVT.D.W
		result, flags = rounding.I32ToF64(int32(uint32(src)), mode)
	case 0b00001: // FCVT.D.WU
		result, flags = rounding.U32ToF64(uint32(src), mode)
	case 0b00010: // FCVT.D.L
		result, flags = rounding.I64ToF64(int64(src), mode)
	case 0b00011: // FCVT.D.LU
		result, flags = rounding.U64ToF64(src, mode)
	default:
		return NewFault(ReservedInstruction, pc, inst, "reserved FCVT.D.* rs2 field")
	}
	h.fcsr.Accumulate(flags)
	if err := h.fp.WriteDoubleFloat(rdOf(inst), result); err != nil {
		return err
	}
	h.pc = pc + 4
	return nil
}
