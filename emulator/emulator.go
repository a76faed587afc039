// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives Intcode machines from the host side, connecting
// them to I/O channels and to each other.
package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

const (
	ASCII_NEWLINE = 10  // Line terminator for ASCII programs.
	ASCII_MAX     = 127 // Largest value written as a character.
)

var _emulator_defines = map[string]string{
	"ASCII_NEWLINE": fmt.Sprintf("%v", ASCII_NEWLINE),
	"ASCII_MAX":     fmt.Sprintf("%v", ASCII_MAX),
}

// Defines returns an iterator over all of the assembler defines.
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
	)
}

// Emulator state. Machine + IO channels.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Id      int          // Machine index, for error reports.
	Machine *cpu.Machine // Reference to the machine.
	Program *cpu.Program // Assembled source, if known, for line numbers.

	Input  io.Channel // Input values. May be nil.
	Output io.Channel // Output values. May be nil, discarding output.
}

// NewEmulator creates a new emulator running program.
func NewEmulator(program []int64) (emu *Emulator) {
	emu = &Emulator{
		Machine: cpu.NewMachine(program),
	}

	return
}

// Reset the machine and rewind its channels.
func (emu *Emulator) Reset() {
	emu.Machine.Reset()
	if emu.Input != nil {
		emu.Input.Rewind()
	}
	if emu.Output != nil {
		emu.Output.Rewind()
	}
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int64 {
	return emu.Machine.Ip()
}

// Done returns true when the machine has halted.
func (emu *Emulator) Done() bool {
	return emu.Machine.State() == cpu.STATE_HALTED
}

// LineNo returns the source line number for the executing instruction,
// or 0 if unknown.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Machine.Ip())
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// runtime wraps err with the machine location.
func (emu *Emulator) runtime(ip int64, lineno int, err error) error {
	var rterr *ErrRuntime
	if err == nil || errors.As(err, &rterr) {
		return err
	}

	return &ErrRuntime{Machine: emu.Id, Ip: ip, LineNo: lineno, Err: err}
}

// Poll performs a single step of the machine.
// blocked is set if the machine needs input the Input channel cannot supply.
func (emu *Emulator) Poll() (blocked bool, done bool, err error) {
	m := emu.Machine
	m.Verbose = emu.Verbose

	ip := m.Ip()
	lineno := emu.LineNo()
	defer func() {
		err = emu.runtime(ip, lineno, err)
	}()

	outcome, value, err := m.Step()
	if err != nil {
		return
	}

	switch outcome {
	case cpu.OUTCOME_NEEDS_INPUT:
		var ok bool
		if emu.Input != nil {
			value, ok = io.Next(emu.Input)
		}
		if !ok {
			blocked = true
			return
		}
		if emu.Verbose {
			log.Printf("emulator %d: input %d", emu.Id, value)
		}
		m.ProvideInput(value)
	case cpu.OUTCOME_OUTPUT:
		if emu.Verbose {
			log.Printf("emulator %d: output %d", emu.Id, value)
		}
		if emu.Output != nil {
			err = emu.Output.Send(value)
		}
	case cpu.OUTCOME_HALTED:
		done = true
	}

	return
}

// Tick performs a single step of the emulator.
// A machine that needs input the Input channel cannot supply faults with
// FAULT_INPUT_EXHAUSTED.
func (emu *Emulator) Tick() (done bool, err error) {
	blocked, done, err := emu.Poll()
	if err != nil || !blocked {
		return
	}

	err = emu.runtime(emu.Machine.Ip(), emu.LineNo(), emu.Machine.CloseInput())

	return
}

// Run ticks the emulator until the machine halts.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
