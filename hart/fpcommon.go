package hart

import (
	"math"

	"github.com/cart-pucminas/narvi-go/hart/rounding"
)

// FSGNJ/FSGNJN/FSGNJX operate on raw sign bits regardless of width, so
// they are implemented once on bit patterns and reused by both F and D.

func sgnj(a, b uint64, signBit uint64) uint64 {
	return (a &^ signBit) | (b & signBit)
}

func sgnjn(a, b uint64, signBit uint64) uint64 {
	return (a &^ signBit) | ((^b) & signBit)
}

func sgnjx(a, b uint64, signBit uint64) uint64 {
	return a ^ (b & signBit)
}

const (
	signBit32 uint64 = 1 << 31
	signBit64 uint64 = 1 << 63
)

// fpMin32/fpMax32 implement the IEEE-754 minNum/maxNum-derived RISC-V
// FMIN.S/FMAX.S semantics: a quiet NaN operand yields the other operand;
// two NaNs yield the canonical NaN; any NaN operand sets Invalid.
func fpMin32(a, b float32) (float32, rounding.Flags) {
	var flags rounding.Flags
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		flags |= rounding.Invalid
	}
	switch {
	case math.IsNaN(float64(a)) && math.IsNaN(float64(b)):
		return math.Float32frombits(rounding.CanonicalNaN32), flags
	case math.IsNaN(float64(a)):
		return b, flags
	case math.IsNaN(float64(b)):
		return a, flags
	case a == 0 && b == 0:
		if math.Signbit(float64(a)) {
			return a, flags
		}
		return b, flags
	case a < b:
		return a, flags
	default:
		return b, flags
	}
}

func fpMax32(a, b float32) (float32, rounding.Flags) {
	var flags rounding.Flags
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		flags |= rounding.Invalid
	}
	switch {
	case math.IsNaN(float64(a)) && math.IsNaN(float64(b)):
		return math.Float32frombits(rounding.CanonicalNaN32), flags
	case math.IsNaN(float64(a)):
		return b, flags
	case math.IsNaN(float64(b)):
		return a, flags
	case a == 0 && b == 0:
		if math.Signbit(float64(a)) {
			return b, flags
		}
		return a, flags
	case a > b:
		return a, flags
	default:
		return b, flags
	}
}

func fpMin64(a, b float64) (float64, rounding.Flags) {
	var flags rounding.Flags
	if math.IsNaN(a) || math.IsNaN(b) {
		flags |= rounding.Invalid
	}
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.Float64frombits(rounding.CanonicalNaN64), flags
	case math.IsNaN(a):
		return b, flags
	case math.IsNaN(b):
		return a, flags
	case a == 0 && b == 0:
		if math.Signbit(a) {
			return a, flags
		}
		return b, flags
	case a < b:
		return a, flags
	default:
		return b, flags
	}
}

func fpMax64(a, b float64) (float64, rounding.Flags) {
	var flags rounding.Flags
	if math.IsNaN(a) || math.IsNaN(b) {
		flags |= rounding.Invalid
	}
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return math.Float64frombits(rounding.CanonicalNaN64), flags
	case math.IsNaN(a):
		return b, flags
	case math.IsNaN(b):
		return a, flags
	case a == 0 && b == 0:
		if math.Signbit(a) {
			return b, flags
		}
		return a, flags
	case a > b:
		return a, flags
	default:
		return b, flags
	}
}

// fpCompareFlags32/fpCompareFlags64 compute the flags of FEQ/FLT/FLE. A quiet NaN makes every comparison
// false without a flag; a signaling NaN also sets Invalid, and FLT/FLE
// additionally set Invalid on any NaN operand per the IEEE-754 rule for
// ordered comparisons.
func fpCompareFlags32(a, b float32, signalOnQuiet bool) rounding.Flags {
	var flags rounding.Flags
	aNaN, bNaN := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	if rounding.IsSignalingNaN32(a) || rounding.IsSignalingNaN32(b) {
		flags |= rounding.Invalid
	} else if signalOnQuiet && (aNaN || bNaN) {
		flags |= rounding.Invalid
	}
	return flags
}

func fpCompareFlags64(a, b float64, signalOnQuiet bool) rounding.Flags {
	var flags rounding.Flags
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	if rounding.IsSignalingNaN64(a) || rounding.IsSignalingNaN64(b) {
		flags |= rounding.Invalid
	} else if signalOnQuiet && (aNaN || bNaN) {
		flags |= rounding.Invalid
	}
	return flags
}

// FCLASS result bits: one-hot, bit 0 = negative infinity through bit 9 =
// quiet NaN.
const (
	classNegInf = 1 << 0
	classNegNormal = 1 << 1
	classNegSubnormal = 1 << 2
	classNegZero = 1 << 3
	classPosZero = 1 << 4
	classPosSubnormal = 1 << 5
	classPosNormal = 1 << 6
	classPosInf = 1 << 7
	classSignalingNaN = 1 << 8
	classQuietNaN = 1 << 9
)

func classify32(v float32) uint64 {
	bits := math.Float32bits(v)
	neg := bits>>31 == 1
	exp := (bits >> 23) & 0xFF
	mant := bits & 0x7FFFFF

	switch {
	case exp == 0xFF && mant != 0:
		if rounding.IsSignalingNaN32(v) {
			return classSignalingNaN
		}
		return classQuietNaN
	case exp == 0xFF:
		if neg {
			return classNegInf
		}
		return classPosInf
	case exp == 0 && mant == 0:
		if neg {
			return classNegZero
		}
		return classPosZero
	case exp == 0:
		if neg {
			return classNegSubnormal
		}
		return classPosSubnormal
	default:
		if neg {
			return classNegNormal
		}
		return classPosNormal
	}
}

func classify64(v float64) uint64 {
	bits := math.Float64bits(v)
	neg := bits>>63 == 1
	exp := (bits >> 52) & 0x7FF
	mant := bits & 0xFFFFFFFFFFFFF

	switch {
	case exp == 0x7FF && mant != 0:
		if rounding.IsSignalingNaN64(v) {
			return classSignalingNaN
		}
		return classQuietNaN
	case exp == 0x7FF:
		if neg {
			return classNegInf
		}
		return classPosInf
	case exp == 0 && mant == 0:
		if neg {
			return classNegZero
		}
		return classPosZero
	case exp == 0:
		if neg {
			return classNegSubnormal
		}
		return classPosSubnormal
	default:
		if neg {
			return classNegNormal
		}
		return classPosNormal
	}
}

// effectiveRM resolves a funct3-encoded rounding mode field against the
// hart's dynamic FCSR mode. funct3==111 selects Dynamic; reserved is true
// for the two reserved rm codes or a Dynamic lookup that lands on a
// reserved FCSR RM field. A reserved mode never faults: callers must
// skip the rounding primitive entirely and substitute the canonical
// quiet NaN (or zero, for an FP->int destination) with no flags raised.
func effectiveRM(h *Hart, field uint32) (mode rounding.Mode, reserved bool) {
	return rounding.Resolve(rounding.Mode(field), h.fcsr.RM())
}
