package rounding

import "math/big"

// widthSpec captures the precision and exponent range of a binary32/
// binary64 target so the add/sub/mul/div/sqrt/fma family can share one
// rounding core instead of duplicating the subnormal/overflow handling
// per width.
type widthSpec struct {
	prec         uint // significand bits including the implicit leading one
	minNormalExp int  // exponent e such that 1.0 * 2^e is the smallest normal
	maxFinite    *big.Float
}

func bigRoundingMode(m Mode) big.RoundingMode {
	switch m {
	case RTZ:
		return big.ToZero
	case RDN:
		return big.ToNegativeInf
	case RUP:
		return big.ToPositiveInf
	default: // RNE and RMM both round half-to-even at this precision.
		return big.ToNearestEven
	}
}

// roundResult rounds the arbitrary-precision operation produced by op
// (called with the working precision and a big.RoundingMode) to the
// target width, handling gradual underflow into the subnormal range and
// flagging overflow/underflow/inexact. op must be re-invokable at a
// reduced precision for the subnormal path, so callers close over their
// operands rather than precomputing a single big.Float result.
func roundResult(spec widthSpec, mode Mode, op func(prec uint, bm big.RoundingMode) *big.Float) (*big.Float, Flags) {
	bm := bigRoundingMode(mode)

	z := op(spec.prec, bm)
	if z.Sign() == 0 {
		return z, 0 // exact cancellation to zero; caller assigns the IEEE zero sign
	}

	mant := new(big.Float)
	exp := z.MantExp(mant) // z == mant * 2^exp, 0.5 <= |mant| < 1
	normalizedExp := exp - 1

	var flags Flags
	if normalizedExp < spec.minNormalExp {
		// Gradual underflow: re-round at the reduced precision a subnormal
		// of this exponent actually offers.
		shortfall := spec.minNormalExp - normalizedExp
		newPrec := int(spec.prec) - shortfall
		if newPrec < 1 {
			newPrec = 1
		}
		z = op(uint(newPrec), bm)
		flags |= Underflow
		if z.Acc() != big.Exact || newPrec < int(spec.prec) {
			flags |= Inexact
		}
		return z, flags
	}

	if z.Acc() != big.Exact {
		flags |= Inexact
	}

	absZ := new(big.Float).Abs(z)
	if absZ.Cmp(spec.maxFinite) > 0 {
		flags |= Overflow | Inexact
	}

	return z, flags
}

// overflowSubstitute applies the IEEE-754 directed-rounding overflow rule:
// round-to-nearest modes overflow to infinity, round-toward-zero clamps
// to the largest finite magnitude, and the two round-toward-infinity
// modes overflow to infinity only on the side they round away from.
func overflowSubstitute(spec widthSpec, mode Mode, negative bool) *big.Float {
	toInf := func() *big.Float {
		z := new(big.Float).SetPrec(spec.prec)
		if negative {
			z.SetInf(true)
		} else {
			z.SetInf(false)
		}
		return z
	}
	toMaxFinite := func() *big.Float {
		z := new(big.Float).SetPrec(spec.prec).Copy(spec.maxFinite)
		if negative {
			z.Neg(z)
		}
		return z
	}

	switch mode {
	case RTZ:
		return toMaxFinite()
	case RUP:
		if negative {
			return toMaxFinite()
		}
		return toInf()
	case RDN:
		if negative {
			return toInf()
		}
		return toMaxFinite()
	default: // RNE, RMM
		return toInf()
	}
}

var (
	specSingle = widthSpec{prec: 24, minNormalExp: -126, maxFinite: mustParse("340282346638528859811704183484516925440")}
	specDouble = widthSpec{prec: 53, minNormalExp: -1022, maxFinite: mustParse("179769313486231570814527423731704356798070567525844996598917476803157260780028538760589558632766878171540458953514382464234321326889464182768467546703537516986049910576551282076245490090389328944075868508455133942304583236903222948165808559332123348274797826204144723168738177180919299881250404026184124858368")}
)

func mustParse(s string) *big.Float {
	f, _, err := big.ParseFloat(s, 10, 200, big.ToNearestEven)
	if err != nil {
		panic(err)
	}
	return f
}
