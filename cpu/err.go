package cpu

import (
	"errors"

	"github.com/ezrec/rvi/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrInstructionUnknown = errors.New(f("instruction unknown"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrOperandCount       = errors.New(f("operand count"))
	ErrOperandAddress     = errors.New(f("operand not offset(register)"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
)

// ErrOperand is a register token that does not name x0-x31.
type ErrOperand string

func (err ErrOperand) Error() string {
	return f("'%v' is not a register x0-x31", string(err))
}

func (err ErrOperand) Unwrap() error {
	return ErrOperandInvalid
}

// ErrInstruction tags a failed execution with the instruction.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("bad instruction '%v'", Instruction(ei).String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
