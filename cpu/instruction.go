package cpu

import (
	"fmt"
)

const (
	REGISTER_COUNT = 32 // x0-x31
)

// Instruction is a decoded instruction.
//
// Register usage by category:
//   - R:   Rd, Rs1, Rs2
//   - I:   Rd, Rs1, Imm
//   - MEM: Rd (loaded or stored register), Rs1 (base), Imm (offset)
//   - U:   Rd, Imm
type Instruction struct {
	Op  Op
	Rd  int
	Rs1 int
	Rs2 int
	Imm int32
}

// Type returns the category of the instruction.
func (ins Instruction) Type() OpType {
	return ins.Op.Type()
}

// validRegister returns true if index names one of x0-x31.
func validRegister(index int) bool {
	return index >= 0 && index < REGISTER_COUNT
}

// Validate checks that every register the category uses is in range.
func (ins Instruction) Validate() (err error) {
	var used []int
	switch ins.Type() {
	case TYPE_R:
		used = []int{ins.Rd, ins.Rs1, ins.Rs2}
	case TYPE_I, TYPE_MEM:
		used = []int{ins.Rd, ins.Rs1}
	case TYPE_U:
		used = []int{ins.Rd}
	}

	for _, index := range used {
		if !validRegister(index) {
			err = ErrOperand(fmt.Sprintf("x%d", index))
			return
		}
	}

	return
}

// String renders the instruction in canonical assembly syntax.
func (ins Instruction) String() string {
	switch ins.Type() {
	case TYPE_R:
		return fmt.Sprintf("%v x%d, x%d, x%d", ins.Op, ins.Rd, ins.Rs1, ins.Rs2)
	case TYPE_I:
		return fmt.Sprintf("%v x%d, x%d, %d", ins.Op, ins.Rd, ins.Rs1, ins.Imm)
	case TYPE_MEM:
		return fmt.Sprintf("%v x%d, %d(x%d)", ins.Op, ins.Rd, ins.Imm, ins.Rs1)
	case TYPE_U:
		return fmt.Sprintf("%v x%d, %d", ins.Op, ins.Rd, ins.Imm)
	}
	return ins.Op.String()
}
