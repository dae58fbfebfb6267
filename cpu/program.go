package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Opcode is a single assembled line.
type Opcode struct {
	LineNo      int         // Source line number.
	Text        string      // Normalized instruction text, after substitutions.
	Instruction Instruction // Decoded instruction.
}

// Program is an assembled listing, executed in order.
type Program struct {
	Opcodes []Opcode
}

// Len is the number of instructions in the listing.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Opcodes)
}

// Debug returns the opcode at index pc, or nil past the end.
func (prog *Program) Debug(pc int) (op *Opcode) {
	if pc < 0 || pc >= prog.Len() {
		return
	}
	op = &prog.Opcodes[pc]
	return
}

// Instructions iterates the decoded instructions with their listing index.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(pc int, ins Instruction) bool) {
		if prog == nil {
			return
		}
		for pc, op := range prog.Opcodes {
			if !yield(pc, op.Instruction) {
				return
			}
		}
	}
}

// String returns the listing with source line numbers.
func (prog *Program) String() string {
	var text strings.Builder
	for pc, op := range prog.Opcodes {
		fmt.Fprintf(&text, "%04d %4d: %v\n", pc, op.LineNo, op.Instruction)
	}
	return text.String()
}
