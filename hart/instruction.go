package hart

// Field extraction for the 32-bit instruction word.

func opcodeOf(inst uint32) uint32 { return BitsOf(6, 0, inst) }
func rdOf(inst uint32) int        { return int(BitsOf(11, 7, inst)) }
func funct3Of(inst uint32) uint32 { return BitsOf(14, 12, inst) }
func rs1Of(inst uint32) int       { return int(BitsOf(19, 15, inst)) }
func rs2Of(inst uint32) int       { return int(BitsOf(24, 20, inst)) }
func funct7Of(inst uint32) uint32 { return BitsOf(31, 25, inst) }
func funct2Of(inst uint32) uint32 { return BitsOf(26, 25, inst) }
func rs3Of(inst uint32) int       { return int(BitsOf(31, 27, inst)) }

// immIOf assembles the 12-bit I-type immediate, sign-extended to 64 bits.
func immIOf(inst uint32) uint64 {
	raw := BitsOf(31, 20, inst)
	return uint64(int64(int32(SignExtend32(raw, 12))))
}

// immSOf assembles the 12-bit S-type immediate (stores), sign-extended.
func immSOf(inst uint32) uint64 {
	raw := (BitsOf(31, 25, inst) << 5) | BitsOf(11, 7, inst)
	return uint64(int64(int32(SignExtend32(raw, 12))))
}

// immBOf assembles the 13-bit B-type immediate (branches; always even),
// sign-extended. Bit 0 is always 0 and is not separately encoded.
func immBOf(inst uint32) uint64 {
	raw := (BitsOf(31, 31, inst) << 12) |
		(BitsOf(7, 7, inst) << 11) |
		(BitsOf(30, 25, inst) << 5) |
		(BitsOf(11, 8, inst) << 1)
	return uint64(int64(int32(SignExtend32(raw, 13))))
}

// immUOf assembles the U-type immediate: the upper 20 bits shifted into
// position, sign-extended to 64 bits (LUI, AUIPC).
func immUOf(inst uint32) uint64 {
	raw := BitsOf(31, 12, inst) << 12
	return uint64(int64(int32(raw)))
}

// immJOf assembles the 21-bit J-type immediate (JAL; always even),
// sign-extended.
func immJOf(inst uint32) uint64 {
	raw := (BitsOf(31, 31, inst) << 20) |
		(BitsOf(19, 12, inst) << 12) |
		(BitsOf(20, 20, inst) << 11) |
		(BitsOf(30, 21, inst) << 1)
	return uint64(int64(int32(SignExtend32(raw, 21))))
}

// shamt6Of returns the 6-bit shift amount of the register-immediate shift
// encoding (SLLI/SRLI/SRAI): bits [25:20].
func shamt6Of(inst uint32) uint {
	return uint(BitsOf(25, 20, inst))
}

// shamt5Of returns the 5-bit shift amount of the word-variant shift
// encoding (SLLIW/SRLIW/SRAIW): bits [24:20].
func shamt5Of(inst uint32) uint {
	return uint(BitsOf(24, 20, inst))
}
