package hart

import "fmt"

// FaultKind enumerates the kinds of fault a hart can raise.
type FaultKind int

const (
	// RegisterNotFound: register index outside [0,31]; a decoder
	// invariant violation for well-formed instructions.
	RegisterNotFound FaultKind = iota
	// InstructionNotFound: no enabled executor recognizes the pattern.
	InstructionNotFound
	// ExecutionError: recognized pattern but unimplemented/invalid sub-form.
	ExecutionError
	// ReservedInstruction: pattern explicitly reserved by the ISA.
	ReservedInstruction
	// InstructionAddressMisaligned: branch/jump target not a multiple of 2.
	InstructionAddressMisaligned
	// FLENMisaligned: FP state inconsistent with configured width.
	FLENMisaligned
	// FLENTooShort: double-precision op attempted on a 32-bit FP config.
	FLENTooShort
)

func (k FaultKind) String() string {
	switch k {
	case RegisterNotFound:
		return "RegisterNotFound"
	case InstructionNotFound:
		return "InstructionNotFound"
	case ExecutionError:
		return "ExecutionError"
	case ReservedInstruction:
		return "ReservedInstruction"
	case InstructionAddressMisaligned:
		return "InstructionAddressMisaligned"
	case FLENMisaligned:
		return "FLENMisaligned"
	case FLENTooShort:
		return "FLENTooShort"
	default:
		return "UnknownFault"
	}
}

// Fault is the core's single error type: a typed kind plus enough
// context (instruction word, PC, detail string, wrapped cause) to
// diagnose a decode/execute failure without the caller re-deriving it.
type Fault struct {
	Kind   FaultKind
	Inst   uint32 // raw instruction word, if known
	PC     uint64
	Detail string // e.g. which sub-form was reserved
	Cause  error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	msg := fmt.Sprintf("%s at PC=0x%016X (inst=0x%08X)", f.Kind, f.PC, f.Inst)
	if f.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, f.Detail)
	}
	if f.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, f.Cause)
	}
	return msg
}

// Unwrap returns the wrapped cause, if any, for errors.Is/As support.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is allows errors.Is(err, &Fault{Kind: SomeFaultKind}) by comparing
// kinds only, since FaultKind is not itself an error.
func (f *Fault) Is(target error) bool {
	other, ok := target.(*Fault)
	if !ok {
		return false
	}
	return f.Kind == other.Kind
}

// NewFault builds a Fault of the given kind with PC/instruction context.
func NewFault(kind FaultKind, pc uint64, inst uint32, detail string) *Fault {
	return &Fault{Kind: kind, Inst: inst, PC: pc, Detail: detail}
}

// RegisterNotFoundFault is a convenience constructor for an out-of-range
// register index, never reachable from a well-formed instruction.
func RegisterNotFoundFault(reg int) *Fault {
	return &Fault{Kind: RegisterNotFound, Detail: fmt.Sprintf("register index %d out of [0,31]", reg)}
}
