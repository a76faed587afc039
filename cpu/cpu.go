package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/intcode/memory"
)

// RunState is the execution state of a machine.
type RunState int

//go:generate go tool stringer -linecomment -type=RunState
const (
	STATE_RUNNING        = RunState(0) // running
	STATE_AWAITING_INPUT = RunState(1) // awaiting input
	STATE_HALTED         = RunState(2) // halted
)

// Outcome is the result of a single Step.
type Outcome int

//go:generate go tool stringer -linecomment -type=Outcome
const (
	OUTCOME_CONTINUE    = Outcome(0) // continue
	OUTCOME_OUTPUT      = Outcome(1) // output
	OUTCOME_NEEDS_INPUT = Outcome(2) // needs input
	OUTCOME_HALTED      = Outcome(3) // halted
)

var _cpu_defines = makeDefines()

// makeDefines names every opcode and mode number.
func makeDefines() (defines map[string]string) {
	defines = map[string]string{}
	for _, op := range Opcodes {
		defines["OP_"+strings.ToUpper(op.String())] = fmt.Sprintf("%d", int(op))
	}
	for mode := MODE_POSITION; mode <= MODE_RELATIVE; mode++ {
		defines["MODE_"+strings.ToUpper(mode.String())] = fmt.Sprintf("%d", int(mode))
	}

	return
}

// Machine is a single Intcode virtual machine.
//
// The machine exclusively owns its memory; hosts interact with it through
// ProvideInput and the values returned by Step, and may only observe memory
// through Snapshot copies.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Ticks int // Executed instruction counter.

	program      []int64        // Listing restored by Reset.
	memory       *memory.Memory // Machine memory.
	ip           int64          // Instruction pointer.
	relativeBase int64          // Relative base register.
	state        RunState       // Current run state.
	input        []int64        // Pending input, oldest first.
	fault        error          // Latched fault, if any.
}

// NewMachine creates a machine loaded with a copy of program.
func NewMachine(program []int64) (m *Machine) {
	m = &Machine{
		program: slices.Clone(program),
		memory:  memory.New(program),
	}

	return
}

// Defines returns the opcode and mode numbers as assembler equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset restores the original program and clears all machine state,
// including pending input and any latched fault.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("cpu: reset")
	}

	m.memory.Load(m.program)
	m.ip = 0
	m.relativeBase = 0
	m.state = STATE_RUNNING
	m.input = nil
	m.fault = nil
	m.Ticks = 0
}

// Ip returns the instruction pointer.
func (m *Machine) Ip() int64 {
	return m.ip
}

// RelativeBase returns the relative base register.
func (m *Machine) RelativeBase() int64 {
	return m.relativeBase
}

// State returns the run state.
func (m *Machine) State() RunState {
	return m.state
}

// Err returns the fault that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.fault
}

// Snapshot returns a copy of the machine memory.
func (m *Machine) Snapshot() []int64 {
	return m.memory.Snapshot()
}

// ProvideInput queues values for the Input instruction.
func (m *Machine) ProvideInput(values ...int64) {
	m.input = append(m.input, values...)
}

// Pending returns the number of queued input values.
func (m *Machine) Pending() int {
	return len(m.input)
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("   ip: %d\n", m.ip)
	text += fmt.Sprintf("   rb: %d\n", m.relativeBase)
	text += fmt.Sprintf("state: %v\n", m.state)
	text += fmt.Sprintf("input: %v\n", m.input)
	sparse := 0
	for range m.memory.Sparse() {
		sparse++
	}
	text += fmt.Sprintf("  mem: %d cells, %d sparse\n", m.memory.Len(), sparse)
	if m.fault != nil {
		text += fmt.Sprintf("fault: %v\n", m.fault)
	}

	return
}

// halt latches a fault and stops the machine.
func (m *Machine) halt(err error) error {
	if _, ok := err.(*ErrFault); !ok {
		word, _ := m.memory.Read(m.ip)
		err = &ErrFault{Ip: m.ip, Word: word, Err: err}
	}
	m.fault = err
	m.state = STATE_HALTED
	return err
}

// read reads a memory cell.
func (m *Machine) read(address int64) (value int64, err error) {
	value, err = m.memory.Read(address)
	if err != nil {
		err = errors.Join(FAULT_NEGATIVE_ADDRESS, err)
	}
	return
}

// write writes a memory cell.
func (m *Machine) write(address int64, value int64) (err error) {
	err = m.memory.Write(address, value)
	if err != nil {
		err = errors.Join(FAULT_NEGATIVE_ADDRESS, err)
	}
	return
}

// Fetch decodes the instruction at the instruction pointer and reads its
// raw parameters.
func (m *Machine) Fetch() (inst Instruction, params []int64, err error) {
	word, err := m.read(m.ip)
	if err != nil {
		return
	}

	inst, err = Decode(word)
	if err != nil {
		return
	}

	params = make([]int64, inst.Opcode.Arity())
	for n := range params {
		params[n], err = m.read(m.ip + 1 + int64(n))
		if err != nil {
			return
		}
	}

	return
}

// getValue resolves the value of operand n.
func (m *Machine) getValue(inst Instruction, params []int64, n int) (value int64, err error) {
	switch inst.Modes[n] {
	case MODE_POSITION:
		value, err = m.read(params[n])
	case MODE_IMMEDIATE:
		value = params[n]
	case MODE_RELATIVE:
		value, err = m.read(m.relativeBase + params[n])
	default:
		err = ErrMode(inst.Modes[n])
	}

	return
}

// getAddress resolves the address of write target operand n.
func (m *Machine) getAddress(inst Instruction, params []int64, n int) (address int64, err error) {
	switch inst.Modes[n] {
	case MODE_POSITION:
		address = params[n]
	case MODE_RELATIVE:
		address = m.relativeBase + params[n]
	case MODE_IMMEDIATE:
		err = FAULT_INVALID_WRITE_TARGET
	default:
		err = ErrMode(inst.Modes[n])
	}

	return
}

// Step executes a single instruction.
//
// Stepping a halted machine returns OUTCOME_HALTED and
// FAULT_MACHINE_HALTED. A fault stops the machine: the faulting Step and
// every later Step return OUTCOME_HALTED with the same *ErrFault.
func (m *Machine) Step() (outcome Outcome, value int64, err error) {
	if m.fault != nil {
		return OUTCOME_HALTED, 0, m.fault
	}

	if m.state == STATE_HALTED {
		return OUTCOME_HALTED, 0, FAULT_MACHINE_HALTED
	}

	m.memory.Verbose = m.Verbose

	defer func() {
		if err != nil {
			outcome = OUTCOME_HALTED
			value = 0
			err = m.halt(err)
		}
	}()

	inst, params, err := m.Fetch()
	if err != nil {
		return
	}

	if m.Verbose {
		log.Printf("%04d: %v", m.ip, inst.Disassemble(params))
	}

	next_ip := m.ip + int64(inst.Len())

	switch inst.Opcode {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUALS:
		var a, b, dst int64
		a, err = m.getValue(inst, params, 0)
		if err != nil {
			return
		}
		b, err = m.getValue(inst, params, 1)
		if err != nil {
			return
		}
		dst, err = m.getAddress(inst, params, 2)
		if err != nil {
			return
		}
		var result int64
		switch inst.Opcode {
		case OP_ADD:
			result = a + b
		case OP_MULTIPLY:
			result = a * b
		case OP_LESS_THAN:
			if a < b {
				result = 1
			}
		case OP_EQUALS:
			if a == b {
				result = 1
			}
		}
		err = m.write(dst, result)
		if err != nil {
			return
		}
	case OP_INPUT:
		if len(m.input) == 0 {
			// Don't advance to next IP.
			m.state = STATE_AWAITING_INPUT
			outcome = OUTCOME_NEEDS_INPUT
			return
		}
		var dst int64
		dst, err = m.getAddress(inst, params, 0)
		if err != nil {
			return
		}
		err = m.write(dst, m.input[0])
		if err != nil {
			return
		}
		m.input = m.input[1:]
	case OP_OUTPUT:
		value, err = m.getValue(inst, params, 0)
		if err != nil {
			return
		}
		outcome = OUTCOME_OUTPUT
	case OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE:
		var cond, target int64
		cond, err = m.getValue(inst, params, 0)
		if err != nil {
			return
		}
		target, err = m.getValue(inst, params, 1)
		if err != nil {
			return
		}
		if (cond != 0) == (inst.Opcode == OP_JUMP_IF_TRUE) {
			next_ip = target
		}
	case OP_ADJUST_RELATIVE_BASE:
		var offset int64
		offset, err = m.getValue(inst, params, 0)
		if err != nil {
			return
		}
		m.relativeBase += offset
	case OP_HALT:
		m.state = STATE_HALTED
		m.Ticks++
		outcome = OUTCOME_HALTED
		return
	default:
		err = ErrOpcode(inst.Word)
		return
	}

	m.ip = next_ip
	m.state = STATE_RUNNING
	m.Ticks++

	return
}
