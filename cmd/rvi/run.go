package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvi/config"
	"github.com/ezrec/rvi/cpu"
	"github.com/ezrec/rvi/emulator"
	"github.com/ezrec/rvi/translate"
)

// machineOptions are the flags shared by run and repl.
type machineOptions struct {
	configPath string
	set        []string
	buckets    uint
	verbose    bool
}

func (opts *machineOptions) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.StringArrayVar(&opts.set, "set", nil, "initial register, as xN=VALUE (repeatable)")
	flags.UintVar(&opts.buckets, "buckets", cpu.MEMORY_BUCKETS, "memory hash bucket count")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "trace execution")
}

// machine builds an emulator from the configuration file, then the flags.
func (opts *machineOptions) machine(cmd *cobra.Command) (emu *emulator.Emulator, err error) {
	cfg := config.Default()
	if len(opts.configPath) != 0 {
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return
		}
	}

	if cmd.Flags().Changed("buckets") {
		cfg.Buckets = opts.buckets
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	for _, assign := range opts.set {
		err = cfg.SetRegister(assign)
		if err != nil {
			return
		}
	}

	err = translate.SetLanguage(cfg.Language)
	if err != nil {
		return
	}

	emu, err = emulator.NewEmulator(cfg)
	if err != nil {
		return
	}

	emu.Logger, err = newLogger(emu.Verbose)
	if err != nil {
		emu = nil
		return
	}

	return
}

type runOptions struct {
	machineOptions
	format    string
	memoryOut string
}

func newRunCommand() *cobra.Command {
	opts := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Assemble and execute programs, then print the machine state",
		Long: "Assemble and execute each FILE in turn on the same machine.\n" +
			"A FILE of '-' reads the program from standard input.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args)
		},
	}

	opts.register(runCmd)
	runCmd.Flags().StringVarP(&opts.format, "format", "f", "text", "state output format: text or yaml")
	runCmd.Flags().StringVarP(&opts.memoryOut, "memory-out", "m", "", "write the final memory image to a file")

	return runCmd
}

// assemble parses a single program file.
func assemble(cmd *cobra.Command, emu *emulator.Emulator, path string) (prog *cpu.Program, err error) {
	var input io.Reader
	if path == "-" {
		input = cmd.InOrStdin()
	} else {
		var inf *os.File
		inf, err = os.Open(path)
		if err != nil {
			return
		}
		defer inf.Close()
		input = inf
	}

	asm := &cpu.Assembler{Verbose: emu.Verbose, Logger: emu.Logger}
	prog, err = asm.Parse(input)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	return
}

func (opts *runOptions) run(cmd *cobra.Command, args []string) (err error) {
	if opts.format != "text" && opts.format != "yaml" {
		err = fmt.Errorf("unknown format %q", opts.format)
		return
	}

	emu, err := opts.machine(cmd)
	if err != nil {
		return
	}
	defer emu.Logger.Sync()

	for _, path := range args {
		var prog *cpu.Program
		prog, err = assemble(cmd, emu, path)
		if err != nil {
			return
		}

		emu.Program = prog
		emu.Pc = 0
		err = emu.Run(cmd.Context())
		if err != nil {
			err = fmt.Errorf("%v: %w", path, err)
			return
		}
	}

	state := emu.State()
	switch opts.format {
	case "yaml":
		var data []byte
		data, err = state.YAML()
		if err != nil {
			return
		}
		_, err = cmd.OutOrStdout().Write(data)
	default:
		_, err = io.WriteString(cmd.OutOrStdout(), state.String())
	}
	if err != nil {
		return
	}

	if len(opts.memoryOut) != 0 {
		err = writeMemory(emu, opts.memoryOut)
	}

	return
}

func writeMemory(emu *emulator.Emulator, path string) (err error) {
	ouf, err := os.Create(path)
	if err != nil {
		return
	}
	defer func() {
		cerr := ouf.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = emu.Cpu.Memory.Marshal(ouf)
	return
}
