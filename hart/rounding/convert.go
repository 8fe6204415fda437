package rounding

import (
	"math"
	"math/big"
)

var bigOne = big.NewInt(1)

// roundToInt rounds the exact value of a finite, non-NaN big.Float to an
// integer under mode, using exact rational arithmetic (big.Float.Rat) so
// the nearest-tie comparison is never itself subject to floating error.
func roundToInt(x *big.Float, mode Mode) (*big.Int, bool) {
	r, _ := x.Rat(nil)
	num, den := r.Num(), r.Denom()

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() == 0 {
		return q, false
	}

	incrementAwayFromZero := func() {
		if num.Sign() < 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}

	switch mode {
	case RTZ:
		// q already truncated toward zero.
	case RDN:
		if num.Sign() < 0 {
			q.Sub(q, bigOne)
		}
	case RUP:
		if num.Sign() > 0 {
			q.Add(q, bigOne)
		}
	default: // RNE, RMM
		absRem := new(big.Int).Abs(rem)
		cmp := new(big.Int).Lsh(absRem, 1).Cmp(den)
		switch {
		case cmp > 0:
			incrementAwayFromZero()
		case cmp == 0:
			if mode == RMM {
				incrementAwayFromZero()
			} else if q.Bit(0) == 1 {
				incrementAwayFromZero() // RNE tie: round to even
			}
		}
	}

	return q, true
}

func saturate(q *big.Int, min, max *big.Int) (*big.Int, bool) {
	if q.Cmp(min) < 0 {
		return new(big.Int).Set(min), true
	}
	if q.Cmp(max) > 0 {
		return new(big.Int).Set(max), true
	}
	return q, false
}

var (
	minI32 = big.NewInt(math.MinInt32)
	maxI32 = big.NewInt(math.MaxInt32)
	minI64 = big.NewInt(math.MinInt64)
	maxI64 = big.NewInt(math.MaxInt64)
	maxU32 = new(big.Int).SetUint64(math.MaxUint32)
	maxU64 = new(big.Int).SetUint64(math.MaxUint64)
	zeroBI = big.NewInt(0)
)

// floatToIntGeneric converts a finite, non-NaN big.Float to an integer of
// the requested width/signedness, rounding under mode and saturating (with
// the Invalid flag set) on overflow.
func floatToIntGeneric(x *big.Float, mode Mode, min, max *big.Int) (int64OrUint64 *big.Int, flags Flags) {
	q, inexact := roundToInt(x, mode)
	q, overflowed := saturate(q, min, max)
	if inexact {
		flags |= Inexact
	}
	if overflowed {
		flags |= Invalid
	}
	return q, flags
}

// nanOrInfResult picks the RISC-V canonical saturated result for a NaN or
// infinite FP->int conversion input: +infinity and NaN saturate to the
// maximum representable value, -infinity to the minimum.
func nanOrInfResult(isNaN, negative bool, min, max *big.Int) *big.Int {
	if isNaN || !negative {
		return new(big.Int).Set(max)
	}
	return new(big.Int).Set(min)
}

// --- binary32 <-> integer ---

func f32ToIntBig(a float32, mode Mode, min, max *big.Int) (*big.Int, Flags) {
	if math.IsNaN(float64(a)) {
		return nanOrInfResult(true, false, min, max), Invalid
	}
	if math.IsInf(float64(a), 0) {
		return nanOrInfResult(false, a < 0, min, max), Invalid
	}
	return floatToIntGeneric(bigFromFloat32(a), mode, min, max)
}

// F32ToI32 converts binary32 to a sign-extended 32-bit signed result.
func F32ToI32(a float32, mode Mode) (int32, Flags) {
	q, f := f32ToIntBig(a, mode, minI32, maxI32)
	return int32(q.Int64()), f
}

// F32ToU32 converts binary32 to a 32-bit unsigned result.
func F32ToU32(a float32, mode Mode) (uint32, Flags) {
	q, f := f32ToIntBig(a, mode, zeroBI, maxU32)
	return uint32(q.Uint64()), f
}

// F32ToI64 converts binary32 to a 64-bit signed result.
func F32ToI64(a float32, mode Mode) (int64, Flags) {
	q, f := f32ToIntBig(a, mode, minI64, maxI64)
	return q.Int64(), f
}

// F32ToU64 converts binary32 to a 64-bit unsigned result.
func F32ToU64(a float32, mode Mode) (uint64, Flags) {
	q, f := f32ToIntBig(a, mode, zeroBI, maxU64)
	return q.Uint64(), f
}

// --- binary64 <-> integer ---

func f64ToIntBig(a float64, mode Mode, min, max *big.Int) (*big.Int, Flags) {
	if math.IsNaN(a) {
		return nanOrInfResult(true, false, min, max), Invalid
	}
	if math.IsInf(a, 0) {
		return nanOrInfResult(false, a < 0, min, max), Invalid
	}
	return floatToIntGeneric(bigFromFloat64(a), mode, min, max)
}

// F64ToI32 converts binary64 to a sign-extended 32-bit signed result.
func F64ToI32(a float64, mode Mode) (int32, Flags) {
	q, f := f64ToIntBig(a, mode, minI32, maxI32)
	return int32(q.Int64()), f
}

// F64ToU32 converts binary64 to a 32-bit unsigned result.
func F64ToU32(a float64, mode Mode) (uint32, Flags) {
	q, f := f64ToIntBig(a, mode, zeroBI, maxU32)
	return uint32(q.Uint64()), f
}

// F64ToI64 converts binary64 to a 64-bit signed result.
func F64ToI64(a float64, mode Mode) (int64, Flags) {
	q, f := f64ToIntBig(a, mode, minI64, maxI64)
	return q.Int64(), f
}

// F64ToU64 converts binary64 to a 64-bit unsigned result.
func F64ToU64(a float64, mode Mode) (uint64, Flags) {
	q, f := f64ToIntBig(a, mode, zeroBI, maxU64)
	return q.Uint64(), f
}

// --- integer -> binary32 ---

func intToF32(x *big.Float, mode Mode) (float32, Flags) {
	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(x, new(big.Float))
	})
	f, flags := finish32(specSingle, mode, z.Sign() < 0, z, flags)
	return f, flags
}

// I32ToF32 converts a signed 32-bit integer to binary32 under mode.
func I32ToF32(v int32, mode Mode) (float32, Flags) {
	return intToF32(new(big.Float).SetInt64(int64(v)), mode)
}

// U32ToF32 converts an unsigned 32-bit integer to binary32 under mode.
func U32ToF32(v uint32, mode Mode) (float32, Flags) {
	return intToF32(new(big.Float).SetUint64(uint64(v)), mode)
}

// I64ToF32 converts a signed 64-bit integer to binary32 under mode.
func I64ToF32(v int64, mode Mode) (float32, Flags) {
	return intToF32(new(big.Float).SetInt64(v), mode)
}

// U64ToF32 converts an unsigned 64-bit integer to binary32 under mode.
func U64ToF32(v uint64, mode Mode) (float32, Flags) {
	return intToF32(new(big.Float).SetUint64(v), mode)
}

// --- integer -> binary64 ---

func intToF64(x *big.Float, mode Mode) (float64, Flags) {
	z, flags := roundResult(specDouble, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(x, new(big.Float))
	})
	f, flags := finish64(specDouble, mode, z.Sign() < 0, z, flags)
	return f, flags
}

// I32ToF64 converts a signed 32-bit integer to binary64 under mode (exact).
func I32ToF64(v int32, mode Mode) (float64, Flags) {
	return intToF64(new(big.Float).SetInt64(int64(v)), mode)
}

// U32ToF64 converts an unsigned 32-bit integer to binary64 under mode (exact).
func U32ToF64(v uint32, mode Mode) (float64, Flags) {
	return intToF64(new(big.Float).SetUint64(uint64(v)), mode)
}

// I64ToF64 converts a signed 64-bit integer to binary64 under mode.
func I64ToF64(v int64, mode Mode) (float64, Flags) {
	return intToF64(new(big.Float).SetInt64(v), mode)
}

// U64ToF64 converts an unsigned 64-bit integer to binary64 under mode.
func U64ToF64(v uint64, mode Mode) (float64, Flags) {
	return intToF64(new(big.Float).SetUint64(v), mode)
}

// --- FP <-> FP ---

// WidenF32ToF64 converts binary32 to binary64. Always exact, so it
// ignores the rounding mode. A NaN operand's payload carries over
// faithfully; a signaling NaN is quieted and reported as Invalid, per
// the usual IEEE format-conversion rule.
func WidenF32ToF64(a float32) (float64, Flags) {
	if math.IsNaN(float64(a)) {
		bits := math.Float32bits(a)
		sign := uint64(bits>>31) << 63
		payload := uint64(bits&0x003F_FFFF) << 29 // low 22 of 23 mantissa bits, widened
		out := sign | 0x7FF8_0000_0000_0000 | payload
		var flags Flags
		if IsSignalingNaN32(a) {
			flags = Invalid
		}
		return math.Float64frombits(out), flags
	}
	return float64(a), 0
}

// NarrowF64ToF32 converts binary64 to binary32, rounding under mode.
func NarrowF64ToF32(a float64, mode Mode) (float32, Flags) {
	if math.IsNaN(a) {
		f := Flags(0)
		if IsSignalingNaN64(a) {
			f = Invalid
		}
		return canonicalNaN32(), f
	}
	if math.IsInf(a, 0) {
		return float32(a), 0
	}
	if a == 0 {
		return float32(a), 0
	}

	neg := math.Signbit(a)
	x := bigFromFloat64(a)
	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(x, new(big.Float))
	})
	f, flags := finish32(specSingle, mode, neg, z, flags)
	return f, flags
}
