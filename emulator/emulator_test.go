package emulator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/io"
)

var (
	ampChain     = []int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	ampChain2    = []int64{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}
	ampFeedback  = []int64{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	ampFeedback2 = []int64{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54,
		-5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4,
		53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10}
	isEight = []int64{3, 9, 8, 9, 10, 9, 4, 9, 99, -1, 8}
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator([]int64{99})

	assert.False(emu.Verbose)
	assert.NotNil(emu.Machine)
	assert.False(emu.Done())
	assert.Equal(0, emu.LineNo())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.True(emu.Done())
	assert.Equal(1, emu.Ticks())
}

func TestEmulator_Run(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		input  []int64
		output []int64
	}){
		{input: []int64{8}, output: []int64{1}},
		{input: []int64{7}, output: []int64{0}},
		{input: []int64{8, 100}, output: []int64{1}},
	}

	for _, entry := range table {
		emu := NewEmulator(isEight)
		emu.Input = &io.Rom{Data: entry.input}
		output := &io.Temporary{}
		emu.Output = output

		assert.NoError(emu.Run())
		assert.Equal(entry.output, output.Data)

		emu.Reset()
		assert.Equal(int64(0), emu.Ip())
		assert.Equal(0, output.Size())
		assert.NoError(emu.Run())
		assert.Equal(entry.output, output.Data)
	}
}

func TestEmulator_Exhausted(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator([]int64{3, 0, 99})

	_, err := emu.Tick()
	assert.ErrorIs(err, cpu.FAULT_INPUT_EXHAUSTED)
	assert.Equal(cpu.FAULT_INPUT_EXHAUSTED, cpu.Fault(err))

	var rterr *ErrRuntime
	assert.ErrorAs(err, &rterr)
	assert.Equal(0, rterr.Machine)
	assert.Equal(int64(0), rterr.Ip)
	assert.True(emu.Done())

	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.FAULT_INPUT_EXHAUSTED)
}

func TestEmulator_Poll(t *testing.T) {
	assert := assert.New(t)

	input := &io.Temporary{}
	emu := NewEmulator([]int64{3, 0, 4, 0, 99})
	emu.Input = input

	for range 3 {
		blocked, done, err := emu.Poll()
		assert.NoError(err)
		assert.True(blocked)
		assert.False(done)
	}

	assert.NoError(input.Send(42))
	output := &io.Temporary{}
	emu.Output = output

	assert.NoError(emu.Run())
	assert.Equal([]int64{42}, output.Data)
}

func TestEmulator_OutputFull(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator([]int64{104, 1, 104, 2, 99})
	emu.Output = &io.Temporary{Capacity: 1}

	err := emu.Run()
	assert.ErrorIs(err, io.ErrChannelFull)

	var rterr *ErrRuntime
	assert.ErrorAs(err, &rterr)
	assert.Equal(int64(2), rterr.Ip)
}

func TestEmulator_LineNo(t *testing.T) {
	assert := assert.New(t)

	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader("out #5\n.data 77\n"))
	assert.NoError(err)

	emu := NewEmulator(prog.Listing())
	emu.Program = prog
	output := &io.Temporary{}
	emu.Output = output

	assert.Equal(1, emu.LineNo())

	err = emu.Run()
	assert.Equal(cpu.FAULT_ILLEGAL_OPCODE, cpu.Fault(err))
	assert.Equal([]int64{5}, output.Data)

	var rterr *ErrRuntime
	assert.ErrorAs(err, &rterr)
	assert.Equal(2, rterr.LineNo)
	assert.Equal(int64(2), rterr.Ip)
	assert.Contains(err.Error(), "line 2")
}

func TestNetwork(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program  []int64
		phases   []int64
		feedback bool
		signal   int64
	}){
		{program: ampChain, phases: []int64{4, 3, 2, 1, 0}, signal: 43210},
		{program: ampChain2, phases: []int64{0, 1, 2, 3, 4}, signal: 54321},
		{program: ampFeedback, phases: []int64{9, 8, 7, 6, 5}, feedback: true, signal: 139629729},
		{program: ampFeedback2, phases: []int64{9, 7, 8, 5, 6}, feedback: true, signal: 18216},
	}

	for _, entry := range table {
		nw := NewNetwork(entry.program, entry.phases, entry.feedback)
		assert.Len(nw.Node, len(entry.phases))

		signal, err := nw.Run(0)
		assert.NoError(err, entry.phases)
		assert.Equal(entry.signal, signal, entry.phases)

		// A network can be run again.
		signal, err = nw.Run(0)
		assert.NoError(err, entry.phases)
		assert.Equal(entry.signal, signal, entry.phases)
	}
}

func TestNetwork_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewNetwork(ampChain, nil, false).Run(0)
	assert.ErrorIs(err, ErrNoPhases)

	// Wants a third input that never comes.
	_, err = NewNetwork([]int64{3, 0, 3, 0, 3, 0, 99}, []int64{1}, false).Run(0)
	assert.ErrorIs(err, cpu.FAULT_INPUT_EXHAUSTED)

	// Halts without output.
	_, err = NewNetwork([]int64{3, 0, 99}, []int64{1, 2}, false).Run(0)
	assert.ErrorIs(err, ErrNoSignal)

	// Second node faults.
	_, err = NewNetwork([]int64{3, 20, 3, 21, 1, 20, 21, 22, 4, 22, 9, 22, 204, 0, 99}, []int64{1, -50}, false).Run(0)
	var rterr *ErrRuntime
	assert.ErrorAs(err, &rterr)
	assert.Equal(1, rterr.Machine)
	assert.ErrorIs(err, cpu.FAULT_NEGATIVE_ADDRESS)
}

func TestMaxSignal(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program  []int64
		phases   []int64
		feedback bool
		signal   int64
		order    []int64
	}){
		{program: ampChain, phases: []int64{0, 1, 2, 3, 4}, signal: 43210, order: []int64{4, 3, 2, 1, 0}},
		{program: ampChain2, phases: []int64{0, 1, 2, 3, 4}, signal: 54321, order: []int64{0, 1, 2, 3, 4}},
		{program: ampFeedback, phases: []int64{5, 6, 7, 8, 9}, feedback: true, signal: 139629729, order: []int64{9, 8, 7, 6, 5}},
		{program: ampFeedback2, phases: []int64{5, 6, 7, 8, 9}, feedback: true, signal: 18216, order: []int64{9, 7, 8, 5, 6}},
	}

	for _, entry := range table {
		signal, order, err := MaxSignal(context.Background(), entry.program, entry.phases, entry.feedback, 0)
		assert.NoError(err)
		assert.Equal(entry.signal, signal)
		assert.Equal(entry.order, order)
	}

	// The initial signal reaches the first node of every ordering.
	signal, order, err := MaxSignal(context.Background(), ampChain, []int64{0, 1}, false, 5)
	assert.NoError(err)
	assert.Equal(int64(510), signal)
	assert.Equal([]int64{1, 0}, order)

	_, _, err = MaxSignal(context.Background(), ampChain, nil, false, 0)
	assert.ErrorIs(err, ErrNoPhases)

	// Every ordering starves for input.
	_, order, err = MaxSignal(context.Background(), []int64{3, 0, 3, 0, 3, 0, 99}, []int64{0, 1}, false, 0)
	assert.Error(err)
	assert.Nil(order)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = MaxSignal(ctx, ampChain, []int64{0, 1, 2}, false, 0)
	assert.ErrorIs(err, context.Canceled)
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("10", defines["ASCII_NEWLINE"])
	assert.Equal("1", defines["OP_ADD"])
	assert.Equal("99", defines["OP_HLT"])
}

func TestConfig(t *testing.T) {
	assert := assert.New(t)

	cfg, err := ParseConfig(`
program = "amp.int"
inputs = [1, 2]
verbose = false

[network]
phases = [5, 6, 7, 8, 9]
feedback = true
search = true
`)
	assert.NoError(err)
	assert.Equal("amp.int", cfg.Program)
	assert.Equal([]int64{1, 2}, cfg.Inputs)
	assert.True(cfg.IsNetwork())
	assert.Equal([]int64{5, 6, 7, 8, 9}, cfg.Network.Phases)
	assert.True(cfg.Network.Feedback)
	assert.True(cfg.Network.Search)
	assert.Equal(int64(0), cfg.Network.Signal)

	_, err = ParseConfig(`programme = "x"`)
	assert.ErrorIs(err, ErrConfigUnknown)
	assert.ErrorAs(err, new(ErrConfigKey))

	_, err = ParseConfig(`program = [`)
	assert.Error(err)

	cfg, err = ParseConfig(``)
	assert.NoError(err)
	assert.False(cfg.IsNetwork())
	_, _, err = cfg.Load()
	assert.ErrorIs(err, ErrNoProgram)
}

func TestConfig_Build(t *testing.T) {
	assert := assert.New(t)

	cfg := &Config{Inputs: []int64{8}}
	emu := cfg.Build(isEight, nil)
	output := &io.Temporary{}
	emu.Output = output
	assert.NoError(emu.Run())
	assert.Equal([]int64{1}, output.Data)

	// Configured inputs come before host input.
	cfg = &Config{}
	emu = cfg.Build([]int64{3, 0, 3, 1, 4, 0, 4, 1, 99}, &io.Rom{Data: []int64{3, 4}})
	emu.Output = output
	output.Rewind()
	assert.NoError(emu.Run())
	assert.Equal([]int64{3, 4}, output.Data)

	cfg = &Config{Inputs: []int64{1}}
	emu = cfg.Build([]int64{3, 0, 3, 1, 4, 0, 4, 1, 99}, &io.Rom{Data: []int64{2}})
	emu.Output = output
	output.Rewind()
	assert.NoError(emu.Run())
	assert.Equal([]int64{1, 2}, output.Data)

	cfg = &Config{Network: NetworkConfig{Phases: []int64{4, 3, 2, 1, 0}}}
	signal, err := cfg.BuildNetwork(ampChain).Run(cfg.Network.Signal)
	assert.NoError(err)
	assert.Equal(int64(43210), signal)
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()

	write := func(name string, text string) string {
		path := filepath.Join(dir, name)
		err := os.WriteFile(path, []byte(text), 0o644)
		if err != nil {
			t.Fatal(err)
		}
		return path
	}

	write("eight.int", "3,9,8,9,10,9,4,9,99,-1,8\n")
	write("echo.asm", "start: in rb+0\nout rb+0\nhlt\n")
	path := write("eight.toml", "program = \"eight.int\"\ninputs = [8]\n")

	cfg, err := LoadConfig(path)
	assert.NoError(err)
	assert.Equal(dir, cfg.Dir)

	listing, prog, err := cfg.Load()
	assert.NoError(err)
	assert.Nil(prog)
	assert.Equal(isEight, listing)

	listing, prog, err = LoadProgram(filepath.Join(dir, "echo.asm"), false)
	assert.NoError(err)
	assert.NotNil(prog)
	assert.Equal([]int64{203, 0, 204, 0, 99}, listing)

	_, _, err = LoadProgram(filepath.Join(dir, "missing.int"), false)
	assert.Error(err)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(err)
}
