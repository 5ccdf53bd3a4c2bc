// Package cli provides the command-line interface for pinglog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pinglog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pinglog",
		Short: "Analyze ping log files for latency and sequence gaps",
		Long: `pinglog is a batch analyzer for ping log files.

It parses probe records (icmp_seq / ttl / time lines, optionally
prefixed with a bracketed epoch timestamp from ping -D) and reports:
  - Overall latency statistics (average, median, maximum)
  - Records above a latency threshold
  - Sequence-number gaps (skipped request chunks)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
