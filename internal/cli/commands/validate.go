package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pinglog/pkg/config"
	"pinglog/pkg/parser"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a pinglog configuration file without running analysis.

Checks:
  - YAML syntax
  - Threshold, timestamps and output format values
  - Record pattern validity and required capture groups
  - Log source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Threshold:  %v ms\n", cfg.Threshold)
	fmt.Printf("  Skip title: %v\n", cfg.SkipTitle)
	fmt.Printf("  Timestamps: %s\n", cfg.Timestamps)
	fmt.Printf("  Format:     %s\n", cfg.Output.Format)
	if cfg.RecordPattern != "" {
		fmt.Printf("  Pattern:    custom (%s)\n", cfg.RecordPattern)
	} else {
		fmt.Printf("  Pattern:    built-in\n")
	}
	if cfg.Output.Chart != "" {
		fmt.Printf("  Chart:      %s\n", cfg.Output.Chart)
	}

	// Check if log sources exist (warnings only)
	if len(cfg.LogSources) > 0 {
		files, err := parser.ExpandGlobs(cfg.LogSources)
		if err != nil {
			fmt.Printf("\nWarning: Error expanding log source patterns: %v\n", err)
		} else if len(files) == 0 {
			fmt.Printf("\nWarning: No files match log source patterns\n")
		} else {
			fmt.Printf("\nLog files matched: %d\n", len(files))
			for _, f := range files {
				fmt.Printf("  - %s\n", f)
			}
		}
	}

	return nil
}
