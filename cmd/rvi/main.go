// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rvi",
		Short:         "RV32 subset interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newRunCommand(), newReplCommand())

	return rootCmd
}

// newLogger returns the verbose trace logger.
func newLogger(verbose bool) (logger *zap.Logger, err error) {
	if !verbose {
		logger = zap.NewNop()
		return
	}
	logger, err = zap.NewDevelopment()
	return
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", os.Args[0], colorizeError(err.Error()))
		stop()
		os.Exit(1)
	}
}
