package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/ezrec/rvi/emulator"
)

const replHelp = `Enter one instruction per line, or a command:
  .regs   show the register file
  .mem    show the written memory
  .reset  restore the initial registers and memory
  .quit   leave
`

type replOptions struct {
	machineOptions
	history string
}

func newReplCommand() *cobra.Command {
	opts := &replOptions{}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Execute instructions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}

	opts.register(replCmd)
	replCmd.Flags().StringVar(&opts.history, "history", "", "command history file")

	return replCmd
}

// session is the state of an interactive prompt.
type session struct {
	emu *emulator.Emulator
	out io.Writer
}

// eval handles a single input line. Comments and spacing follow the
// assembler: ';' or '#' start a comment, and operands may be spread out.
func (s *session) eval(line string) (quit bool) {
	if cut := strings.IndexAny(line, ";#"); cut >= 0 {
		line = line[:cut]
	}

	words := strings.Fields(line)
	line = strings.Join(words, " ")
	if len(words) > 1 && !strings.HasPrefix(line, ".") {
		line = words[0] + " " + strings.Join(words[1:], "")
	}

	switch line {
	case "":
	case ".quit", ".exit":
		quit = true
	case ".help":
		io.WriteString(s.out, replHelp)
	case ".regs":
		io.WriteString(s.out, s.emu.Cpu.String())
	case ".mem":
		err := s.emu.Cpu.Memory.Marshal(s.out)
		if err != nil {
			fmt.Fprintln(s.out, colorizeError(err.Error()))
		}
	case ".reset":
		err := s.emu.Reset()
		if err != nil {
			fmt.Fprintln(s.out, colorizeError(err.Error()))
		}
	default:
		if strings.HasPrefix(line, ".") {
			fmt.Fprintln(s.out, colorizeError(fmt.Sprintf("unknown command %v, try .help", line)))
			return
		}
		ticks := s.emu.Cpu.Ticks
		err := s.emu.Cpu.Step(line)
		if err != nil {
			fmt.Fprintln(s.out, colorizeError(err.Error()))
			return
		}
		if s.emu.Cpu.Ticks == ticks {
			fmt.Fprintln(s.out, colorizeInfo(fmt.Sprintf("skipped: %v", line)))
		}
	}

	return
}

func (opts *replOptions) run(cmd *cobra.Command) (err error) {
	emu, err := opts.machine(cmd)
	if err != nil {
		return
	}
	defer emu.Logger.Sync()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Logger = emu.Logger

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "rvi> ",
		HistoryFile: opts.history,
		Stdout:      cmd.OutOrStdout(),
	})
	if err != nil {
		return
	}
	defer rl.Close()

	s := &session{emu: emu, out: rl.Stdout()}

	for {
		var line string
		line, err = rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				err = nil
				return
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			err = nil
			return
		}
		if err != nil {
			return
		}

		if s.eval(line) {
			return
		}
	}
}
