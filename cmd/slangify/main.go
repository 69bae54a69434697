package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/slangify/internal/cli"
	"codeberg.org/snonux/slangify/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The processor is built after cobra has parsed the flags and loaded
	// the configuration file.
	rootCmd := cli.CreateRootCommand(flags, func() (cli.Runner, error) {
		p, err := processor.NewProcessor(ctx)
		if err != nil {
			return nil, err
		}
		return p, nil
	})

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
