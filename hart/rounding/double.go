package rounding

import (
	"math"
	"math/big"
)

// CanonicalNaN64 is the IEEE canonical quiet NaN for binary64.
const CanonicalNaN64 uint64 = 0x7FF8_0000_0000_0000

// IsSignalingNaN64 is the binary64 counterpart of IsSignalingNaN32.
func IsSignalingNaN64(x float64) bool {
	bits := math.Float64bits(x)
	if !isNaN64Bits(bits) {
		return false
	}
	return bits&0x0008_0000_0000_0000 == 0
}

func isNaN64Bits(bits uint64) bool {
	return bits&0x7FF0_0000_0000_0000 == 0x7FF0_0000_0000_0000 && bits&0x000F_FFFF_FFFF_FFFF != 0
}

func canonicalNaN64() float64 {
	return math.Float64frombits(CanonicalNaN64)
}

func nanFlags64(a, b float64) Flags {
	var f Flags
	if IsSignalingNaN64(a) || IsSignalingNaN64(b) {
		f |= Invalid
	}
	return f
}

func bigFromFloat64(f float64) *big.Float {
	return new(big.Float).SetPrec(specDouble.prec).SetFloat64(f)
}

func toFloat64(z *big.Float, neg bool) float64 {
	if z.Sign() == 0 {
		return math.Copysign(0, signOf(neg))
	}
	f64, _ := z.Float64()
	return f64
}

func finish64(spec widthSpec, mode Mode, zeroNeg bool, z *big.Float, flags Flags) (float64, Flags) {
	if z.Sign() == 0 {
		return toFloat64(z, zeroNeg), flags
	}
	if flags&Overflow != 0 {
		z = overflowSubstitute(spec, mode, z.Sign() < 0)
	}
	f64, _ := z.Float64()
	return f64, flags
}

// Add64 computes a+b rounded to binary64 under mode.
func Add64(a, b float64, mode Mode) (float64, Flags) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return canonicalNaN64(), nanFlags64(a, b)
	}
	if math.IsInf(a, 0) && math.IsInf(b, 0) {
		if math.Signbit(a) != math.Signbit(b) {
			return canonicalNaN64(), Invalid
		}
		return a, 0
	}
	if math.IsInf(a, 0) {
		return a, 0
	}
	if math.IsInf(b, 0) {
		return b, 0
	}

	x, y := bigFromFloat64(a), bigFromFloat64(b)
	z, flags := roundResult(specDouble, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(x, y)
	})
	aZero, bZero := a == 0, b == 0
	zeroNeg := zeroSignOnCancel(math.Signbit(a), math.Signbit(b), aZero && bZero, mode)
	f, flags := finish64(specDouble, mode, zeroNeg, z, flags)
	return f, flags
}

// Sub64 computes a-b rounded to binary64 under mode.
func Sub64(a, b float64, mode Mode) (float64, Flags) {
	return Add64(a, -b, mode)
}

// Mul64 computes a*b rounded to binary64 under mode.
func Mul64(a, b float64, mode Mode) (float64, Flags) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return canonicalNaN64(), nanFlags64(a, b)
	}
	resultNeg := math.Signbit(a) != math.Signbit(b)
	aInf, bInf := math.IsInf(a, 0), math.IsInf(b, 0)
	if (aInf && b == 0) || (bInf && a == 0) {
		return canonicalNaN64(), Invalid
	}
	if aInf || bInf {
		return math.Copysign(math.Inf(1), signOf(resultNeg)), 0
	}
	if a == 0 || b == 0 {
		return math.Copysign(0, signOf(resultNeg)), 0
	}

	x, y := bigFromFloat64(a), bigFromFloat64(b)
	z, flags := roundResult(specDouble, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Mul(x, y)
	})
	f, flags := finish64(specDouble, mode, resultNeg, z, flags)
	return f, flags
}

// Div64 computes a/b rounded to binary64 under mode.
func Div64(a, b float64, mode Mode) (float64, Flags) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return canonicalNaN64(), nanFlags64(a, b)
	}
	resultNeg := math.Signbit(a) != math.Signbit(b)
	aInf, bInf := math.IsInf(a, 0), math.IsInf(b, 0)
	if aInf && bInf {
		return canonicalNaN64(), Invalid
	}
	if a == 0 && b == 0 {
		return canonicalNaN64(), Invalid
	}
	if bInf {
		return math.Copysign(0, signOf(resultNeg)), 0
	}
	if aInf {
		return math.Copysign(math.Inf(1), signOf(resultNeg)), 0
	}
	if b == 0 {
		return math.Copysign(math.Inf(1), signOf(resultNeg)), DivByZero
	}
	if a == 0 {
		return math.Copysign(0, signOf(resultNeg)), 0
	}

	x, y := bigFromFloat64(a), bigFromFloat64(b)
	z, flags := roundResult(specDouble, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Quo(x, y)
	})
	f, flags := finish64(specDouble, mode, resultNeg, z, flags)
	return f, flags
}

// Sqrt64 computes sqrt(a) rounded to binary64 under mode.
func Sqrt64(a float64, mode Mode) (float64, Flags) {
	if math.IsNaN(a) {
		f := Flags(0)
		if IsSignalingNaN64(a) {
			f = Invalid
		}
		return canonicalNaN64(), f
	}
	if a < 0 {
		return canonicalNaN64(), Invalid
	}
	if a == 0 {
		return a, 0
	}
	if math.IsInf(a, 1) {
		return a, 0
	}

	x := bigFromFloat64(a)
	z, flags := roundResult(specDouble, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Sqrt(x)
	})
	f, flags := finish64(specDouble, mode, false, z, flags)
	return f, flags
}

// Fma64 computes a*b+c with a single rounding to binary64 under mode.
func Fma64(a, b, c float64, mode Mode) (float64, Flags) {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsNaN(c) {
		f := nanFlags64(a, b)
		if IsSignalingNaN64(c) {
			f |= Invalid
		}
		return canonicalNaN64(), f
	}
	aInf, bInf := math.IsInf(a, 0), math.IsInf(b, 0)
	if (aInf && b == 0) || (bInf && a == 0) {
		return canonicalNaN64(), Invalid
	}
	productInf := aInf || bInf
	productNeg := math.Signbit(a) != math.Signbit(b)
	if productInf {
		if math.IsInf(c, 0) && math.Signbit(c) != productNeg {
			return canonicalNaN64(), Invalid
		}
		return math.Copysign(math.Inf(1), signOf(productNeg)), 0
	}
	if math.IsInf(c, 0) {
		return c, 0
	}

	aBig, bBig, cBig := bigFromFloat64(a), bigFromFloat64(b), bigFromFloat64(c)
	product := new(big.Float).SetPrec(2*specDouble.prec + 8).Mul(aBig, bBig)

	z, flags := roundResult(specDouble, mode, func(prec uint, bm big.RoundingMode) *big.Float {
		return new(big.Float).SetPrec(prec).SetMode(bm).Add(product, cBig)
	})
	aZero, bZero := a == 0 || b == 0, c == 0
	zeroNeg := zeroSignOnCancel(productNeg, math.Signbit(c), aZero && bZero, mode)
	f, flags := finish64(specDouble, mode, zeroNeg, z, flags)
	return f, flags
}

// Fms64 computes a*b-c with a single rounding to binary64 under mode.
func Fms64(a, b, c float64, mode Mode) (float64, Flags) {
	return Fma64(a, b, -c, mode)
}

// Fnma64 computes -(a*b)+c with a single rounding to binary64 under mode.
func Fnma64(a, b, c float64, mode Mode) (float64, Flags) {
	return Fma64(-a, b, c, mode)
}

// Fnms64 computes -(a*b)-c with a single rounding to binary64 under mode.
func Fnms64(a, b, c float64, mode Mode) (float64, Flags) {
	return Fma64(-a, b, -c, mode)
}
