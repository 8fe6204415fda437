package hart

import "math"

// nanBoxedSingle is the canonical binary32 NaN substituted for a single
// read of an improperly-boxed 64-bit FP register.
const nanBoxedSingle uint32 = 0x7FC0_0000

// fpRegisters is the FP register file, monomorphic to the hart's
// configured flen. Cells always store 64 bits internally; at flen==32
// only the low 32 bits are meaningful, and at flen==64 a single-precision
// value is NaN-boxed into the upper half.
type fpRegisters struct {
	flen int
	cell [32]uint64
}

func newFPRegisters(flen int) *fpRegisters {
	return &fpRegisters{flen: flen}
}

func checkFPReg(reg int) error {
	if reg < 0 || reg > 31 {
		return RegisterNotFoundFault(reg)
	}
	return nil
}

// ReadSingle returns the bit pattern of a binary32 value held in reg. At
// flen==64 it unboxes: the stored value must read as all-ones in its
// upper 32 bits, or the canonical single NaN substitutes.
func (r *fpRegisters) ReadSingle(reg int) (uint32, error) {
	if err := checkFPReg(reg); err != nil {
		return 0, err
	}
	switch r.flen {
	case 0:
		return 0, &Fault{Kind: FLENMisaligned, Detail: "no FP registers configured (flen=0)"}
	case 32:
		return uint32(r.cell[reg]), nil
	default: // 64
		v := r.cell[reg]
		if v>>32 == 0xFFFF_FFFF {
			return uint32(v), nil
		}
		return nanBoxedSingle, nil
	}
}

// WriteSingle stores a binary32 bit pattern in reg, NaN-boxing it when
// flen==64.
func (r *fpRegisters) WriteSingle(reg int, bits uint32) error {
	if err := checkFPReg(reg); err != nil {
		return err
	}
	switch r.flen {
	case 0:
		return &Fault{Kind: FLENMisaligned, Detail: "no FP registers configured (flen=0)"}
	case 32:
		r.cell[reg] = uint64(bits)
	default: // 64
		r.cell[reg] = 0xFFFF_FFFF_0000_0000 | uint64(bits)
	}
	return nil
}

// ReadDouble returns the bit pattern of a binary64 value held in reg.
// Requires flen==64; flen==32 fails with FLENTooShort.
func (r *fpRegisters) ReadDouble(reg int) (uint64, error) {
	if err := checkFPReg(reg); err != nil {
		return 0, err
	}
	switch r.flen {
	case 0:
		return 0, &Fault{Kind: FLENMisaligned, Detail: "no FP registers configured (flen=0)"}
	case 32:
		return 0, &Fault{Kind: FLENTooShort, Detail: "double-precision op on a 32-bit FP configuration"}
	default:
		return r.cell[reg], nil
	}
}

// WriteDouble stores a binary64 bit pattern in reg. Requires flen==64.
func (r *fpRegisters) WriteDouble(reg int, bits uint64) error {
	if err := checkFPReg(reg); err != nil {
		return err
	}
	switch r.flen {
	case 0:
		return &Fault{Kind: FLENMisaligned, Detail: "no FP registers configured (flen=0)"}
	case 32:
		return &Fault{Kind: FLENTooShort, Detail: "double-precision op on a 32-bit FP configuration"}
	default:
		r.cell[reg] = bits
		return nil
	}
}

// ReadSingleFloat/WriteSingleFloat/ReadDoubleFloat/WriteDoubleFloat are
// float32/float64 convenience wrappers over the bit-pattern accessors.

func (r *fpRegisters) ReadSingleFloat(reg int) (float32, error) {
	bits, err := r.ReadSingle(reg)
	return math.Float32frombits(bits), err
}

func (r *fpRegisters) WriteSingleFloat(reg int, v float32) error {
	return r.WriteSingle(reg, math.Float32bits(v))
}

func (r *fpRegisters) ReadDoubleFloat(reg int) (float64, error) {
	bits, err := r.ReadDouble(reg)
	return math.Float64frombits(bits), err
}

func (r *fpRegisters) WriteDoubleFloat(reg int, v float64) error {
	return r.WriteDouble(reg, math.Float64bits(v))
}
