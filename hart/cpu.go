package hart

// gprFile is the general-purpose register file: 32 unsigned 64-bit cells,
// with x0 hard-wired to zero.
type gprFile struct {
	x [32]uint64
}

// Get returns the value of register reg. Reg must be in [0,31]; a
// decoder that presents an out-of-range index has already produced a
// malformed instruction word, so Get trusts its caller and never checks
// bounds itself — a well-formed decode never produces one.
func (f *gprFile) Get(reg int) uint64 {
	if reg == 0 {
		return 0
	}
	return f.x[reg]
}

// Set writes value to register reg. Writes to x0 are silently discarded.
func (f *gprFile) Set(reg int, value uint64) {
	if reg == 0 {
		return
	}
	f.x[reg] = value
}

// Hart is the architectural state of a single execution context: the
// integer register file, program counter, FP register file, and FCSR.
// No execution mode, tracing, or cycle accounting lives here; those are
// driver concerns layered on top.
type Hart struct {
	gpr  gprFile
	pc   uint64
	fp   *fpRegisters
	fcsr FCSR

	extensions Extensions
	mem        *Memory
}

// New constructs a hart with the given extension set and L1 memory size.
// flen is derived from the extension set: 64 if D, else 32 if F, else 0.
// Unsupported extensions never fail construction; their instructions
// simply fail to decode.
func New(extensions Extensions, memorySize uint64) *Hart {
	return &Hart{
		fp:         newFPRegisters(extensions.FLen()),
		extensions: extensions,
		mem:        NewMemory(memorySize),
	}
}

// Extensions returns the hart's configured extension set.
func (h *Hart) Extensions() Extensions {
	return h.extensions
}

// FLen returns the configured FP register width (0, 32, or 64).
func (h *Hart) FLen() int {
	return h.extensions.FLen()
}

// Memory returns the hart's L1 collaborator.
func (h *Hart) Memory() *Memory {
	return h.mem
}

// PC returns the program counter.
func (h *Hart) PC() uint64 {
	return h.pc
}

// SetPC overwrites the program counter.
func (h *Hart) SetPC(v uint64) {
	h.pc = v
}

// GPR returns the value of integer register reg (reg must be in [0,31]).
func (h *Hart) GPR(reg int) (uint64, error) {
	if reg < 0 || reg > 31 {
		return 0, RegisterNotFoundFault(reg)
	}
	return h.gpr.Get(reg), nil
}

// SetGPR writes value to integer register reg; writes to x0 are discarded.
func (h *Hart) SetGPR(reg int, value uint64) error {
	if reg < 0 || reg > 31 {
		return RegisterNotFoundFault(reg)
	}
	h.gpr.Set(reg, value)
	return nil
}

// FPSingle reads FP register reg as a binary32 bit pattern.
func (h *Hart) FPSingle(reg int) (uint32, error) {
	return h.fp.ReadSingle(reg)
}

// SetFPSingle writes a binary32 bit pattern to FP register reg.
func (h *Hart) SetFPSingle(reg int, bits uint32) error {
	return h.fp.WriteSingle(reg, bits)
}

// FPDouble reads FP register reg as a binary64 bit pattern.
func (h *Hart) FPDouble(reg int) (uint64, error) {
	return h.fp.ReadDouble(reg)
}

// SetFPDouble writes a binary64 bit pattern to FP register reg.
func (h *Hart) SetFPDouble(reg int, bits uint64) error {
	return h.fp.WriteDouble(reg, bits)
}

// FCSRWord returns the current FCSR value (reserved bits read as zero).
func (h *Hart) FCSRWord() uint32 {
	return h.fcsr.Word()
}

// SetFCSRWord overwrites the entire FCSR, including the sticky flags —
// the only way those flags are ever cleared.
func (h *Hart) SetFCSRWord(v uint32) {
	h.fcsr.SetWord(v)
}
