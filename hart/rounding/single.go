package rounding

import (
	"math"
	"math/big"
)

// CanonicalNaN32 is the IEEE canonical quiet NaN for binary32.
const CanonicalNaN32 uint32 = 0x7FC0_0000

// IsSignalingNaN32 reports whether x is a signaling NaN, per the IEEE
// convention that signaling-ness lives in the mantissa MSB (0 = signaling,
// 1 = quiet), rather than the sign bit some implementations use as a
// shortcut.
func IsSignalingNaN32(x float32) bool {
	bits := math.Float32bits(x)
	if !isNaN32Bits(bits) {
		return false
	}
	return bits&0x0040_0000 == 0
}

func isNaN32Bits(bits uint32) bool {
	return bits&0x7F80_0000 == 0x7F80_0000 && bits&0x007F_FFFF != 0
}

func canonicalNaN32() float32 {
	return math.Float32frombits(CanonicalNaN32)
}

func nanFlags32(a, b float32) Flags {
	var f Flags
	if IsSignalingNaN32(a) || IsSignalingNaN32(b) {
		f |= Invalid
	}
	return f
}

func bigFromFloat32(f float32) *big.Float {
	return new(big.Float).SetPrec(specSingle.prec).SetFloat64(float64(f))
}

func toFloat32(z *big.Float, neg bool) float32 {
	if z.Sign() == 0 {
		return float32(math.Copysign(0, signOf(neg)))
	}
	f32, _ := z.Float32()
	return f32
}

func signOf(neg bool) float64 {
	if neg {
		return -1
	}
	return 1
}

func finish32(spec widthSpec, mode Mode, zeroNeg bool, z *big.Float, flags Flags) (float32, Flags) {
	if z.Sign() == 0 {
		return toFloat32(z, zeroNeg), flags
	}
	if flags&Overflow != 0 {
		z = overflowSubstitute(spec, mode, z.Sign() < 0)
	}
	f32, _ := z.Float32()
	return f32, flags
}

// zeroSignOnCancel implements the IEEE-754 rule for a sum/difference that
// cancels to exactly zero: +0 unless rounding toward -infinity, in which
// mode the result is -0. Same-sign operands that are both zero keep their
// common sign regardless of mode.
func zeroSignOnCancel(aNeg, bNeg bool, bothZero bool, mode Mode) bool {
	if bothZero && aNeg == bNeg {
		return aNeg
	}
	return mode == RDN
}

// Add32 computes a+b rounded to binary32 under mode.
func Add32(a, b float32, mode Mode) (float32, Flags) {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return canonicalNaN32(), nanFlags32(a, b)
	}
	if math.IsInf(float64(a), 0) && math.IsInf(float64(b), 0) {
		if math.Signbit(float64(a)) != math.Signbit(float64(b)) {
			return canonicalNaN32(), Invalid
		}
		return a, 0
	}
	if math.IsInf(float64(a), 0) {
		return a, 0
	}
	if math.IsInf(float64(b), 0) {
		return b, 0
	}

	x, y := bigFromFloat32(a), bigFromFloat32(b)
	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(x, y)
	})
	aZero, bZero := a == 0, b == 0
	zeroNeg := zeroSignOnCancel(math.Signbit(float64(a)), math.Signbit(float64(b)), aZero && bZero, mode)
	f, flags := finish32(specSingle, mode, zeroNeg, z, flags)
	return f, flags
}

// Sub32 computes a-b rounded to binary32 under mode.
func Sub32(a, b float32, mode Mode) (float32, Flags) {
	return Add32(a, -b, mode)
}

// Mul32 computes a*b rounded to binary32 under mode.
func Mul32(a, b float32, mode Mode) (float32, Flags) {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return canonicalNaN32(), nanFlags32(a, b)
	}
	resultNeg := math.Signbit(float64(a)) != math.Signbit(float64(b))
	aInf, bInf := math.IsInf(float64(a), 0), math.IsInf(float64(b), 0)
	if (aInf && b == 0) || (bInf && a == 0) {
		return canonicalNaN32(), Invalid
	}
	if aInf || bInf {
		return float32(math.Copysign(math.Inf(1), signOf(resultNeg))), 0
	}
	if a == 0 || b == 0 {
		return float32(math.Copysign(0, signOf(resultNeg))), 0
	}

	x, y := bigFromFloat32(a), bigFromFloat32(b)
	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Mul(x, y)
	})
	f, flags := finish32(specSingle, mode, resultNeg, z, flags)
	return f, flags
}

// Div32 computes a/b rounded to binary32 under mode.
func Div32(a, b float32, mode Mode) (float32, Flags) {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return canonicalNaN32(), nanFlags32(a, b)
	}
	resultNeg := math.Signbit(float64(a)) != math.Signbit(float64(b))
	aInf, bInf := math.IsInf(float64(a), 0), math.IsInf(float64(b), 0)
	if aInf && bInf {
		return canonicalNaN32(), Invalid
	}
	if a == 0 && b == 0 {
		return canonicalNaN32(), Invalid
	}
	if bInf {
		return float32(math.Copysign(0, signOf(resultNeg))), 0
	}
	if aInf {
		return float32(math.Copysign(math.Inf(1), signOf(resultNeg))), 0
	}
	if b == 0 {
		return float32(math.Copysign(math.Inf(1), signOf(resultNeg))), DivByZero
	}
	if a == 0 {
		return float32(math.Copysign(0, signOf(resultNeg))), 0
	}

	x, y := bigFromFloat32(a), bigFromFloat32(b)
	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Quo(x, y)
	})
	f, flags := finish32(specSingle, mode, resultNeg, z, flags)
	return f, flags
}

// Sqrt32 computes sqrt(a) rounded to binary32 under mode.
func Sqrt32(a float32, mode Mode) (float32, Flags) {
	if math.IsNaN(float64(a)) {
		f := Flags(0)
		if IsSignalingNaN32(a) {
			f = Invalid
		}
		return canonicalNaN32(), f
	}
	if a < 0 {
		return canonicalNaN32(), Invalid
	}
	if a == 0 {
		return a, 0
	}
	if math.IsInf(float64(a), 1) {
		return a, 0
	}

	x := bigFromFloat32(a)
	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Sqrt(x)
	})
	f, flags := finish32(specSingle, mode, false, z, flags)
	return f, flags
}

// Fma32 computes a*b+c with a single rounding to binary32 under mode.
func Fma32(a, b, c float32, mode Mode) (float32, Flags) {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) || math.IsNaN(float64(c)) {
		f := nanFlags32(a, b)
		if IsSignalingNaN32(c) {
			f |= Invalid
		}
		return canonicalNaN32(), f
	}
	aInf, bInf := math.IsInf(float64(a), 0), math.IsInf(float64(b), 0)
	if (aInf && b == 0) || (bInf && a == 0) {
		return canonicalNaN32(), Invalid
	}
	productInf := aInf || bInf
	productNeg := math.Signbit(float64(a)) != math.Signbit(float64(b))
	if productInf {
		if math.IsInf(float64(c), 0) && math.Signbit(float64(c)) != productNeg {
			return canonicalNaN32(), Invalid
		}
		return float32(math.Copysign(math.Inf(1), signOf(productNeg))), 0
	}
	if math.IsInf(float64(c), 0) {
		return c, 0
	}

	aBig, bBig, cBig := bigFromFloat32(a), bigFromFloat32(b), bigFromFloat32(c)
	product := new(big.Float).SetPrec(2*specSingle.prec + 8).Mul(aBig, bBig)

	z, flags := roundResult(specSingle, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(product, cBig)
	})
	aZero, bZero := a == 0 || b == 0, c == 0
	zeroNeg := zeroSignOnCancel(productNeg, math.Signbit(float64(c)), aZero && bZero, mode)
	f, flags := finish32(specSingle, mode, zeroNeg, z, flags)
	return f, flags
}

// Fms32 computes a*b-c with a single rounding to binary32 under mode.
func Fms32(a, b, c float32, mode Mode) (float32, Flags) {
	return Fma32(a, b, -c, mode)
}

// Fnma32 computes -(a*b)+c with a single rounding to binary32 under mode.
func Fnma32(a, b, c float32, mode Mode) (float32, Flags) {
	return Fma32(-a, b, c, mode)
}

// Fnms32 computes -(a*b)-c with a single rounding to binary32 under mode.
func Fnms32(a, b, c float32, mode Mode) (float32, Flags) {
	return Fma32(-a, b, -c, mode)
}
