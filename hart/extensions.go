package hart

// Extensions records which optional instruction subsets a hart decodes.
// `A` and `C` are carried as fields so a hart configuration round-trips
// the full record (see config.Config), even though this core never
// routes to them: atomic and compressed instructions are never dispatched.
type Extensions struct {
	M bool // integer multiply/divide
	A bool // atomic (decode-only, never dispatched)
	C bool // compressed (decode-only, never dispatched)
	F bool // single-precision floating point
	D bool // double-precision floating point
}

// FLen derives the floating-point register width from the extension set:
// 64 if D, else 32 if F, else 0.
func (e Extensions) FLen() int {
	switch {
	case e.D:
		return 64
	case e.F:
		return 32
	default:
		return 0
	}
}
