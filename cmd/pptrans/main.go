package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/pptrans/internal/cli"
	"codeberg.org/snonux/pptrans/internal/models"
	"codeberg.org/snonux/pptrans/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := cmd.Context()

	flags.ResolveConfig()
	if err := flags.Validate(); err != nil {
		return err
	}

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey(), flags.OpenAIBaseURL)
		return lister.ListAvailableModels(ctx, cmd.OutOrStdout())
	}

	// Create processor
	proc := processor.NewProcessor(flags, processor.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))

	// Handle --archive-cache flag
	if flags.ArchiveCache {
		if err := proc.ArchiveCache(); err != nil {
			return err
		}
		if flags.BatchFile == "" && len(args) == 0 {
			return nil
		}
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx)
	}

	if len(args) != 2 {
		return cmd.Usage()
	}

	_, err := proc.ProcessFile(ctx, args[0], args[1])
	return err
}
