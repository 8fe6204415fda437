package hart

import "github.com/cart-pucminas/narvi-go/hart/rounding"

// FCSR is the 32-bit floating-point control/status register: bits [4:0]
// are sticky exception flags, bits [7:5] are the dynamic rounding-mode
// field, and all higher bits read as zero. Modeled as a single cell with
// bit-slice accessors.
type FCSR struct {
	word uint32
}

const (
	fcsrFlagsMask = 0x1F
	fcsrRMShift   = 5
	fcsrRMMask    = 0x7
	fcsrReadMask  = 0xFF // bits above [7:0] are reserved and always read 0
)

// Word returns the full 32-bit FCSR value (reserved bits read as zero).
func (c *FCSR) Word() uint32 {
	return c.word & fcsrReadMask
}

// SetWord overwrites the entire register, including the sticky flags.
// This is the only way the flags are ever cleared; arithmetic execution
// only ORs flags in, never resets them.
func (c *FCSR) SetWord(v uint32) {
	c.word = v & fcsrReadMask
}

// RM returns the current dynamic rounding-mode field.
func (c *FCSR) RM() rounding.Mode {
	return rounding.Mode((c.word >> fcsrRMShift) & fcsrRMMask)
}

// SetRM overwrites the dynamic rounding-mode field.
func (c *FCSR) SetRM(m rounding.Mode) {
	c.word = (c.word &^ (fcsrRMMask << fcsrRMShift)) | (uint32(m&fcsrRMMask) << fcsrRMShift)
}

// Flags returns the sticky exception bits [4:0].
func (c *FCSR) Flags() uint32 {
	return c.word & fcsrFlagsMask
}

// Accumulate ORs the rounding primitives' reported Flags into the sticky
// bits. Apart from a whole-register SetWord, this is the only path that
// sets these bits.
func (c *FCSR) Accumulate(f rounding.Flags) {
	c.word |= uint32(f) & fcsrFlagsMask
}
