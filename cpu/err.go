package cpu

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

// FaultKind classifies a machine fault. Every FaultKind is also an error,
// so errors.Is(err, FAULT_INPUT_EXHAUSTED) tests for a kind directly.
type FaultKind int

//go:generate go tool stringer -linecomment -type=FaultKind
const (
	FAULT_NONE                   = FaultKind(0) // none
	FAULT_NEGATIVE_ADDRESS       = FaultKind(1) // negative address
	FAULT_ILLEGAL_OPCODE         = FaultKind(2) // illegal opcode
	FAULT_ILLEGAL_PARAMETER_MODE = FaultKind(3) // illegal parameter mode
	FAULT_INVALID_WRITE_TARGET   = FaultKind(4) // invalid write target
	FAULT_INPUT_EXHAUSTED        = FaultKind(5) // input exhausted
	FAULT_MACHINE_HALTED         = FaultKind(6) // machine halted
)

func (fk FaultKind) Error() string {
	return f("fault: %v", fk.String())
}

// Fault returns the kind of machine fault carried by err, or FAULT_NONE.
func Fault(err error) (kind FaultKind) {
	if !errors.As(err, &kind) {
		kind = FAULT_NONE
	}
	return
}

var (
	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
)

// ErrOpcode is an instruction word with no valid opcode.
type ErrOpcode int64

func (eo ErrOpcode) Error() string {
	return f("illegal opcode %d", int64(eo))
}

func (eo ErrOpcode) Unwrap() error {
	return FAULT_ILLEGAL_OPCODE
}

// ErrMode is a parameter mode digit outside of the defined modes.
type ErrMode Mode

func (em ErrMode) Error() string {
	return f("illegal parameter mode %d", int(em))
}

func (em ErrMode) Unwrap() error {
	return FAULT_ILLEGAL_PARAMETER_MODE
}

// ErrFault locates a fault at the instruction that raised it.
type ErrFault struct {
	Ip   int64 // Instruction pointer of the faulting instruction.
	Word int64 // Instruction word at Ip.
	Err  error
}

func (err *ErrFault) Error() string {
	return f("ip %d word %d: %v", err.Ip, err.Word, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
