// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ezrec/rvi/config"
	"github.com/ezrec/rvi/cpu"
)

// Emulator state. CPU + program listing + initial machine image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Logger   *zap.Logger  // Destination of verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
	Pc       int          // Index of the next opcode in Program.

	registers [cpu.REGISTER_COUNT]int32
	image     []byte
}

// NewEmulator creates a new emulator from a configuration.
// A nil configuration is the same as config.Default().
func NewEmulator(cfg *config.Config) (emu *Emulator, err error) {
	if cfg == nil {
		cfg = config.Default()
	}

	registers, err := cfg.Registers()
	if err != nil {
		return
	}

	var image []byte
	if path := cfg.ImagePath(); len(path) != 0 {
		image, err = os.ReadFile(path)
		if err != nil {
			return
		}
	}

	cp, err := cpu.NewCpu(registers, cfg.Buckets)
	if err != nil {
		return
	}

	emu = &Emulator{
		Verbose:   cfg.Verbose,
		Logger:    zap.NewNop(),
		Cpu:       cp,
		Program:   &cpu.Program{},
		registers: registers,
		image:     image,
	}

	err = emu.Reset()
	if err != nil {
		emu = nil
		return
	}

	return
}

// Reset the machine state.
// - Reinstalls the initial registers.
// - Reloads the memory image.
// - Rewinds to the start of the program.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Reset(emu.registers)
	emu.Pc = 0

	if len(emu.image) != 0 {
		err = emu.Cpu.Memory.Unmarshal(bytes.NewReader(emu.image))
		if err != nil {
			err = fmt.Errorf("memory image: %w", err)
			return
		}
	}

	return
}

// Ticks returns the total executed instructions since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the next opcode, or 0 at the end.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Pc)
	if op == nil {
		return 0
	}
	return op.LineNo
}

// Tick performs a single tick of the emulator.
// done is set, and nothing is executed, once the program is exhausted.
func (emu *Emulator) Tick() (done bool, err error) {
	op := emu.Program.Debug(emu.Pc)
	if op == nil {
		done = true
		return
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: op.LineNo, Err: err}
		}
	}()

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	err = emu.Cpu.Execute(op.Instruction)
	if err != nil {
		return
	}

	emu.Pc++

	return
}

// Run ticks the emulator until the program is exhausted, an instruction
// fails, or the context is done.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}
