package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pinglog/pkg/parser"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	Output     string
	SampleSize int
	Verbose    bool
}

// InspectResult summarizes how a sample of a log file parses.
type InspectResult struct {
	// SampledLines is the number of lines examined.
	SampledLines int `json:"sampled_lines"`

	// RecordLines is the number of lines that parsed as probe records.
	RecordLines int `json:"record_lines"`

	// Confidence is RecordLines / SampledLines.
	Confidence float64 `json:"confidence"`

	// Title is the detected ping title, if any.
	Title string `json:"title,omitempty"`

	// TimestampedLines is the number of records carrying a timestamp prefix.
	TimestampedLines int `json:"timestamped_lines"`

	// SampleRecord is an example line that parsed.
	SampleRecord string `json:"sample_record,omitempty"`

	// Rejected holds a few example lines that did not parse.
	Rejected []string `json:"rejected,omitempty"`
}

// maxRejectedSamples bounds the rejected-line examples kept.
const maxRejectedSamples = 5

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <log-file>",
		Short: "Check whether a file parses as a ping log",
		Long: `Sample lines from a log file and report how many parse as ping
probe records, whether a title line is present, and whether records
carry timestamp prefixes. Useful before analyzing an unfamiliar file.

Example:
  pinglog inspect /var/log/ping/example.log
  pinglog inspect -n 500 -v big.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show example rejected lines")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := inspectFile(ctx, logFile, opts.SampleSize)
	if err != nil {
		return err
	}

	switch opts.Output {
	case "text":
		printInspectText(result, opts.Verbose)
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	return nil
}

// inspectFile samples up to sampleSize lines and classifies each one.
func inspectFile(ctx context.Context, path string, sampleSize int) (*InspectResult, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	p := parser.NewRecordParser()
	result := &InspectResult{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for result.SampledLines < sampleSize && scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line := scanner.Text()
		result.SampledLines++

		if result.Title == "" {
			if title, ok := parser.ParseTitle(line); ok {
				result.Title = title
				continue
			}
		}

		rec, err := p.Parse(line)
		if err != nil {
			if len(result.Rejected) < maxRejectedSamples && line != "" {
				result.Rejected = append(result.Rejected, line)
			}
			continue
		}

		result.RecordLines++
		if rec.HasTimestamp() {
			result.TimestampedLines++
		}
		if result.SampleRecord == "" {
			result.SampleRecord = rec.Raw
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if result.SampledLines > 0 {
		result.Confidence = float64(result.RecordLines) / float64(result.SampledLines)
	}

	return result, nil
}

func printInspectText(result *InspectResult, verbose bool) {
	fmt.Printf("Sampled lines:     %d\n", result.SampledLines)
	fmt.Printf("Probe records:     %d (%.0f%%)\n", result.RecordLines, result.Confidence*100)
	fmt.Printf("With timestamps:   %d\n", result.TimestampedLines)

	if result.Title != "" {
		fmt.Printf("Title:             found\n")
	} else {
		fmt.Printf("Title:             not found (analyze will need --skip-title)\n")
	}

	if result.SampleRecord != "" {
		fmt.Printf("\nExample record:\n  %s\n", result.SampleRecord)
	}

	if verbose && len(result.Rejected) > 0 {
		fmt.Printf("\nExample rejected lines:\n")
		for _, line := range result.Rejected {
			fmt.Printf("  %s\n", line)
		}
	}

	if result.RecordLines == 0 {
		fmt.Printf("\nNo probe records in sample; this does not look like a ping log.\n")
	}
}
