// Package cpu implements the decoder, execution engine and assembler for a
// small RV32 subset.
//
// The CPU has thirty-two 32-bit signed registers (x0-x31, x0 hard-wired to
// zero) and a sparse byte addressable memory. Supported instructions:
//
//	R-type:   add sub and or xor nor slt sll sra    rd, rs1, rs2
//	I-type:   addi andi ori xori slti               rd, rs1, imm
//	MEM-type: lw lb sw sb                           rd, offset(rs1)
//	U-type:   lui                                   rd, imm
//
// Any other mnemonic is skipped. There is no program counter: callers feed one
// line at a time to Step, or assemble a Program and execute its Instructions.
package cpu
