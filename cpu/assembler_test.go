package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("32", asm.Equate["XLEN"])
	assert.Equal("32", asm.Equate["XREGS"])
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"; end to end",
		"addi x1,x0,5",
		"   addi   x2 , x0 , -3   # trailing comment",
		"",
		"add x3,x1,x2",
		"nop",
		"sw x3,0(x0)",
		"lw x4,0(x0)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Opcode{
		{2, "addi x1,x0,5", Instruction{Op: OP_ADDI, Rd: 1, Imm: 5}},
		{3, "addi x2,x0,-3", Instruction{Op: OP_ADDI, Rd: 2, Imm: -3}},
		{5, "add x3,x1,x2", Instruction{Op: OP_ADD, Rd: 3, Rs1: 1, Rs2: 2}},
		{6, "nop", Instruction{Op: OP_UNKNOWN}},
		{7, "sw x3,0(x0)", Instruction{Op: OP_SW, Rd: 3}},
		{8, "lw x4,0(x0)", Instruction{Op: OP_LW, Rd: 4}},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")

	program := []string{
		".equ SP x2",
		".equ FRAME 16",
		"addi SP, x0, BASE",
		"sw x1, FRAME(SP)",
		"lw x3, $(FRAME + 4)(SP)",
		"addi x4, x0, $(BASE // 2 - 1)",
		"addi x5, x0, $(LINENO)",
		"lui x6, $((1 << 4) * (2 + 1))",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Opcode{
		{3, "addi x2,x0,0x100", Instruction{Op: OP_ADDI, Rd: 2, Imm: 0x100}},
		{4, "sw x1,16(x2)", Instruction{Op: OP_SW, Rd: 1, Rs1: 2, Imm: 16}},
		{5, "lw x3,20(x2)", Instruction{Op: OP_LW, Rd: 3, Rs1: 2, Imm: 20}},
		{6, "addi x4,x0,127", Instruction{Op: OP_ADDI, Rd: 4, Imm: 127}},
		{7, "addi x5,x0,7", Instruction{Op: OP_ADDI, Rd: 5, Imm: 7}},
		{8, "lui x6,48", Instruction{Op: OP_LUI, Rd: 6, Imm: 48}},
	}

	opEqual(t, expected, prog.Opcodes)

	// Predefines survive across parses, equates do not.
	prog, err = asm.Parse(strings.NewReader("addi x1, x0, BASE"))
	assert.NoError(err)
	assert.Equal(int32(0x100), prog.Opcodes[0].Instruction.Imm)
	_, ok := asm.Equate["SP"]
	assert.False(ok)
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		lineno  int
		err     error
	}){
		{"equ syntax", []string{".equ A"}, 1, ErrEquateSyntax},
		{"equ duplicate", []string{".equ A 1", ".equ A 2"}, 2, ErrEquateDuplicate},
		{"equ system", []string{"", ".equ LINENO 2"}, 2, ErrEquateDuplicate},
		{"bad register", []string{"addi x1, x0, 1", "add x1, x2, x40"}, 2, ErrOperandInvalid},
		{"bad operands", []string{"lw x1, 4"}, 1, ErrInstructionInvalid},
		{"expression float", []string{"addi x1, x0, $(1 / 2)"}, 1, ErrParseExpression("1 / 2")},
		{"expression syntax", []string{"addi x1, x0, $(1 +)"}, 1, ErrParseExpression("1 +")},
		{"expression open", []string{"addi x1, x0, $(1 + (2)"}, 1, ErrParseExpression("1 + (2)")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
			assert.Equal(entry.program[entry.lineno-1], syntax.Line, entry.name)
		}
	}
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	var empty *Program
	assert.Equal(0, empty.Len())
	assert.Nil(empty.Debug(0))
	for range empty.Instructions() {
		t.Fatal("nil program yielded")
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader("addi x1, x0, 1\n\nadd x2, x1, x1\n"))
	assert.NoError(err)

	assert.Equal(2, prog.Len())
	assert.Equal(3, prog.Debug(1).LineNo)
	assert.Nil(prog.Debug(2))
	assert.Nil(prog.Debug(-1))

	var ops []Op
	for pc, ins := range prog.Instructions() {
		assert.Equal(prog.Opcodes[pc].Instruction, ins)
		ops = append(ops, ins.Op)
	}
	assert.Equal([]Op{OP_ADDI, OP_ADD}, ops)

	assert.Equal("0000    1: addi x1, x0, 1\n0001    3: add x2, x1, x1\n", prog.String())
}
