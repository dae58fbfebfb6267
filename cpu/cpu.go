package cpu

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezrec/rvi/internal"
	"github.com/ezrec/rvi/memory"
)

const (
	MEMORY_BUCKETS = memory.DEFAULT_BUCKETS // Default memory bucket count.
)

// Cpu is the machine context: the register file and the memory it executes
// against. A Cpu is not safe for concurrent use.
type Cpu struct {
	Verbose bool        // Set to enable verbose logging.
	Logger  *zap.Logger // Destination of verbose logging.

	Register [REGISTER_COUNT]int32 // Register file. x0 reads as zero after each step.
	Memory   *memory.Store         // Sparse byte addressable memory.

	Ticks int // Executed (known) instruction counter.

	decoder *Decoder
}

// NewCpu creates a CPU with the supplied initial registers and a memory of
// the given bucket count.
func NewCpu(registers [REGISTER_COUNT]int32, buckets uint) (cpu *Cpu, err error) {
	store, err := memory.NewStore(buckets)
	if err != nil {
		return
	}

	cpu = &Cpu{
		Logger:   zap.NewNop(),
		Register: registers,
		Memory:   store,
		decoder:  NewDecoder(DECODE_CACHE_SIZE),
	}

	return
}

// log returns the verbose logger, never nil.
func (cpu *Cpu) log() *zap.Logger {
	if cpu.Logger == nil {
		return zap.NewNop()
	}
	return cpu.Logger
}

// Reset the CPU state.
// - Replaces the register file.
// - Clears memory.
// - Zeros the tick counter.
func (cpu *Cpu) Reset(registers [REGISTER_COUNT]int32) {
	if cpu.Verbose {
		cpu.log().Debug("cpu: reset")
	}

	cpu.Register = registers
	cpu.Memory.Reset()
	cpu.Ticks = 0
}

// String returns the register file, four registers per line.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 4s: %08X", fmt.Sprintf("x%d", n), uint32(val))
		if n%4 == 3 {
			text += "\n"
		} else {
			text += "  "
		}
	}

	return
}

// ReadRegister returns the value of register x<index>.
func (cpu *Cpu) ReadRegister(index int) (value int32, err error) {
	if !validRegister(index) {
		err = ErrOperand(fmt.Sprintf("x%d", index))
		return
	}

	value = cpu.Register[index]
	return
}

// WriteRegister sets register x<index>. Writes to x0 are discarded.
func (cpu *Cpu) WriteRegister(index int, value int32) (err error) {
	if !validRegister(index) {
		err = ErrOperand(fmt.Sprintf("x%d", index))
		return
	}

	if index != 0 {
		cpu.Register[index] = value
	}
	return
}

// ReadMemory returns the byte at address, zero if never written.
func (cpu *Cpu) ReadMemory(address int32) uint8 {
	return cpu.Memory.Get(address)
}

// Step decodes and executes a single line of instruction text.
// Unknown instructions are skipped without error.
func (cpu *Cpu) Step(text string) (err error) {
	ins, err := cpu.decoder.Decode(text)
	if err != nil {
		return
	}

	err = cpu.Execute(ins)

	return
}

// loadWord reads four little-endian bytes.
func (cpu *Cpu) loadWord(address int32) (word uint32) {
	for n := range int32(4) {
		word |= uint32(cpu.Memory.Get(address+n)) << (8 * n)
	}
	return
}

// storeWord writes four little-endian bytes.
func (cpu *Cpu) storeWord(address int32, word uint32) {
	for n := range int32(4) {
		cpu.Memory.Put(address+n, uint8(word>>(8*n)))
	}
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(ins), err)
		}
	}()

	op := ins.Op
	if op.Type() == TYPE_UNKNOWN {
		if cpu.Verbose {
			cpu.log().Debug("cpu: skip", zap.Error(ErrInstructionUnknown))
		}
		return
	}

	err = ins.Validate()
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.log().Debug("cpu: execute",
			zap.Int("tick", cpu.Ticks),
			zap.Stringer("type", op.Type()),
			zap.Stringer("ins", ins))
	}

	reg := &cpu.Register

	switch op.Type() {
	case TYPE_R:
		a := reg[ins.Rs1]
		b := reg[ins.Rs2]
		reg[ins.Rd] = doAlu(op, a, b)
	case TYPE_I:
		reg[ins.Rd] = doAlu(op, reg[ins.Rs1], ins.Imm)
	case TYPE_MEM:
		address := reg[ins.Rs1] + ins.Imm
		switch op {
		case OP_LW:
			reg[ins.Rd] = internal.Reinterpret[uint32, int32](cpu.loadWord(address))
		case OP_LB:
			reg[ins.Rd] = internal.SignExtend(int32(cpu.Memory.Get(address)), 8)
		case OP_SW:
			cpu.storeWord(address, internal.Reinterpret[int32, uint32](reg[ins.Rd]))
		case OP_SB:
			// The stored byte comes from the base register, not Rd.
			cpu.Memory.Put(address, uint8(reg[ins.Rs1]))
		}
	case TYPE_U:
		reg[ins.Rd] = ins.Imm << 12
	}

	if cpu.Verbose {
		cpu.log().Debug("cpu: result",
			zap.Int("rd", ins.Rd),
			zap.Int32("value", reg[ins.Rd]))
	}

	// x0 is hard-wired to zero.
	reg[0] = 0

	cpu.Ticks++

	return
}

// doAlu performs the register or immediate ALU operation.
func doAlu(op Op, a int32, b int32) (output int32) {
	switch op {
	case OP_ADD, OP_ADDI:
		output = a + b
	case OP_SUB:
		output = a - b
	case OP_AND, OP_ANDI:
		output = a & b
	case OP_OR, OP_ORI:
		output = a | b
	case OP_XOR, OP_XORI:
		output = a ^ b
	case OP_NOR:
		output = ^(a | b)
	case OP_SLT, OP_SLTI:
		if a < b {
			output = 1
		}
	case OP_SLL:
		output = a << uint(b&0x1f)
	case OP_SRA:
		output = a >> uint(b&0x1f)
	}

	return
}
