package cpu

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program ...string) (prog *Program, err error) {
	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))
	assert.Empty(prog.Listing())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("1", asm.Equate["OP_ADD"])
	assert.Equal("99", asm.Equate["OP_HLT"])
	assert.Equal("2", asm.Equate["MODE_RELATIVE"])
}

func TestAssemblerQuine(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"; Outputs a copy of itself",
		"start:  arb #1",
		"        out rb-1",
		"        add 100, #1, 100",
		"        eq 100 #16 101",
		"        jf 101 #start",
		"        hlt",
	)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Statement{
		{2, 0, []string{"arb", "#1"}, []int64{109, 1}, nil},
		{3, 2, []string{"out", "rb-1"}, []int64{204, -1}, nil},
		{4, 4, []string{"add", "100", "#1", "100"}, []int64{1001, 100, 1, 100}, nil},
		{5, 8, []string{"eq", "100", "#16", "101"}, []int64{1008, 100, 16, 101}, nil},
		{6, 12, []string{"jf", "101", "#start"}, []int64{1006, 101, 0}, map[int]string{2: "start"}},
		{7, 15, []string{"hlt"}, []int64{99}, nil},
	}
	assert.Equal(expected, prog.Statements)
	assert.Equal(quine, prog.Listing())

	m := NewMachine(prog.Listing())
	outputs, err := m.Run()
	assert.NoError(err)
	assert.Equal(quine, outputs)
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		".equ N 4",
		"        .data 'a' '\\n' $(N*2+1) OP_HLT end",
		"end:    hlt",
	)
	assert.NoError(err)
	assert.Equal([]int64{97, 10, 9, 99, 5, 99}, prog.Listing())

	// Labels in expressions must already be defined.
	prog, err = assemble(t,
		"top:    .data 0 0",
		"        .data $(top+2)",
	)
	assert.NoError(err)
	assert.Equal([]int64{0, 0, 2}, prog.Listing())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "100")
	asm.Predefine("STEP", "2")

	prog, err := asm.Parse(strings.NewReader("add BASE #STEP rb+BASE\nin rb-STEP"))
	assert.NoError(err)
	assert.Equal([]int64{21001, 100, 2, 100, 203, -2}, prog.Listing())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		lineno  int
	}){
		{"immediate_target", []string{"add 1 2 #3"}, ErrTargetInvalid, 1},
		{"immediate_input", []string{"hlt", "in #3"}, ErrTargetInvalid, 2},
		{"unknown", []string{"bogus 1"}, ErrInstructionInvalid, 1},
		{"missing", []string{"add 1 2"}, ErrOpcodeValueMissing, 1},
		{"extra", []string{"out 1 2"}, ErrOpcodeExtraArgs, 1},
		{"data_empty", []string{".data"}, ErrOpcodeValueMissing, 1},
		{"label_duplicate", []string{"a:", "a: hlt"}, ErrLabelDuplicate, 2},
		{"label_invalid", []string{"1abc: hlt"}, ErrLabelInvalid, 1},
		{"equate_duplicate", []string{".equ X 1", ".equ X 2"}, ErrEquateDuplicate, 2},
		{"equate_syntax", []string{".equ X"}, ErrEquateSyntax, 1},
	}

	for _, entry := range table {
		_, err := assemble(t, entry.program...)
		assert.True(errors.Is(err, entry.err), entry.name)
		var syntax *ErrSyntax
		assert.True(errors.As(err, &syntax), entry.name)
		if syntax != nil {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
		}
	}

	_, err := assemble(t, "hlt", "jt #1 #nowhere")
	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal(ErrLabelMissing("nowhere"), missing)
	var syntax *ErrSyntax
	assert.True(errors.As(err, &syntax))
	assert.Equal(2, syntax.LineNo)

	_, err = assemble(t, ".data 'ab'")
	var character ErrParseCharacter
	assert.True(errors.As(err, &character))

	_, err = assemble(t, "out rb-label")
	var number ErrParseNumber
	assert.True(errors.As(err, &number))

	_, err = assemble(t, "out #$(1/0)")
	assert.Error(err)
}

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	lines := maps.Collect(Disassemble([]int64{1, 0, 0, 0, 99, 5000, 7}))
	assert.Equal(map[int]string{
		0: "add 0 0 0",
		4: "hlt",
		5: ".data 5000",
		6: ".data 7",
	}, lines)

	// Disassembly assembles back to the same listing.
	var text []string
	for _, line := range Disassemble(quine) {
		text = append(text, line)
	}
	assert.Equal("arb #1", text[0])
	assert.Equal("out rb-1", text[1])

	prog, err := assemble(t, text...)
	assert.NoError(err)
	assert.Equal(quine, prog.Listing())
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog, err := assemble(t,
		"start:  arb #1",
		"        out rb-1",
		"        hlt",
	)
	assert.NoError(err)

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Statement)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(3)
	assert.NotNil(dbg.Statement)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(3, dbg.LineNo)

	dbg = prog.Debug(100)
	assert.Nil(dbg.Statement)
	assert.Equal(0, dbg.Index)

	var ips []int
	for ip := range prog.Codes() {
		ips = append(ips, ip)
	}
	assert.Equal([]int{0, 1, 2, 3, 4}, ips)
}
