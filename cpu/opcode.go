package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the operation selector of an instruction word (word mod 100).
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD                  = Opcode(1)  // add
	OP_MULTIPLY             = Opcode(2)  // mul
	OP_INPUT                = Opcode(3)  // in
	OP_OUTPUT               = Opcode(4)  // out
	OP_JUMP_IF_TRUE         = Opcode(5)  // jt
	OP_JUMP_IF_FALSE        = Opcode(6)  // jf
	OP_LESS_THAN            = Opcode(7)  // lt
	OP_EQUALS               = Opcode(8)  // eq
	OP_ADJUST_RELATIVE_BASE = Opcode(9)  // arb
	OP_HALT                 = Opcode(99) // hlt
)

// Opcodes lists every valid opcode.
var Opcodes = []Opcode{
	OP_ADD, OP_MULTIPLY, OP_INPUT, OP_OUTPUT,
	OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE, OP_LESS_THAN, OP_EQUALS,
	OP_ADJUST_RELATIVE_BASE, OP_HALT,
}

// opArity is the fixed operand count of each opcode.
var opArity = map[Opcode]int{
	OP_ADD:                  3,
	OP_MULTIPLY:             3,
	OP_INPUT:                1,
	OP_OUTPUT:               1,
	OP_JUMP_IF_TRUE:         2,
	OP_JUMP_IF_FALSE:        2,
	OP_LESS_THAN:            3,
	OP_EQUALS:               3,
	OP_ADJUST_RELATIVE_BASE: 1,
	OP_HALT:                 0,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opArity[op]
	return ok
}

// Arity returns the number of operands of the opcode.
func (op Opcode) Arity() int {
	return opArity[op]
}

// Writes returns true if the last operand of the opcode is a write target.
func (op Opcode) Writes() bool {
	switch op {
	case OP_ADD, OP_MULTIPLY, OP_INPUT, OP_LESS_THAN, OP_EQUALS:
		return true
	}
	return false
}

// Mode is a parameter addressing mode.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_POSITION  = Mode(0) // position
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_RELATIVE  = Mode(2) // relative
)

// Instruction is a decoded instruction word.
type Instruction struct {
	Word   int64   // Raw instruction word.
	Opcode Opcode  // Operation.
	Modes  [3]Mode // Mode of each operand, first operand first.
}

// Decode splits an instruction word into its opcode and operand modes.
// All three mode digits are checked, even those past the opcode's operands.
// Digits above the third mode are ignored.
func Decode(word int64) (inst Instruction, err error) {
	inst.Word = word

	if word < 0 {
		err = ErrOpcode(word)
		return
	}

	inst.Opcode = Opcode(word % 100)
	if !inst.Opcode.Valid() {
		err = ErrOpcode(word)
		return
	}

	arity := inst.Opcode.Arity()
	digits := word / 100
	for n := range len(inst.Modes) {
		mode := Mode(digits % 10)
		if mode > MODE_RELATIVE {
			err = ErrMode(mode)
			return
		}
		if n < arity {
			inst.Modes[n] = mode
		}
		digits /= 10
	}

	return
}

// MakeWord encodes an opcode and its operand modes, first operand first.
func MakeWord(op Opcode, modes ...Mode) (word int64) {
	word = int64(op)
	scale := int64(100)
	for _, mode := range modes {
		word += int64(mode) * scale
		scale *= 10
	}

	return
}

// Len returns the number of memory cells the instruction occupies.
func (inst Instruction) Len() int {
	return 1 + inst.Opcode.Arity()
}

// String returns the opcode and operand modes of the instruction.
func (inst Instruction) String() string {
	parts := []string{inst.Opcode.String()}
	for n := range inst.Opcode.Arity() {
		parts = append(parts, inst.Modes[n].String())
	}
	return strings.Join(parts, ".")
}

// Operand formats a raw parameter in assembly syntax for the given mode.
func Operand(mode Mode, param int64) string {
	switch mode {
	case MODE_IMMEDIATE:
		return fmt.Sprintf("#%d", param)
	case MODE_RELATIVE:
		if param < 0 {
			return fmt.Sprintf("rb%d", param)
		}
		return fmt.Sprintf("rb+%d", param)
	default:
		return fmt.Sprintf("%d", param)
	}
}

// Disassemble formats the instruction with its raw parameters as a line
// of assembly text.
func (inst Instruction) Disassemble(params []int64) string {
	parts := []string{inst.Opcode.String()}
	for n := range inst.Opcode.Arity() {
		var param int64
		if n < len(params) {
			param = params[n]
		}
		parts = append(parts, Operand(inst.Modes[n], param))
	}
	return strings.Join(parts, " ")
}
