package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pinglog/pkg/analyzer"
	"pinglog/pkg/config"
	"pinglog/pkg/output"
	"pinglog/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Config     string
	Threshold  float64
	SkipTitle  bool
	Pattern    string
	Timestamps string
	Output     string
	Format     string
	Chart      string
	Verbose    bool
	Quiet      bool
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <log-file>...",
		Short: "Analyze ping logs for latency and sequence gaps",
		Long: `Analyze ping log files and write a statistics report.

The report covers, in order: overall latency statistics, records above
the latency threshold, sequence-number gap statistics, and a detailed
listing of every high-latency record and every gap.

By default the report is written next to the input file as
<name>_analyzed.txt; use -o to choose a path or "-o -" for stdout.

Exit codes:
  0 - Analysis clean (no gaps, nothing above threshold)
  1 - Gaps or above-threshold records found
  2 - Configuration or runtime error`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Path to YAML config file")
	cmd.Flags().Float64VarP(&opts.Threshold, "threshold", "t", config.DefaultThreshold, "Latency threshold in milliseconds; values above are flagged")
	cmd.Flags().BoolVarP(&opts.SkipTitle, "skip-title", "s", false, "Skip ping title detection (missing title is otherwise fatal)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "Override record pattern (needs seq and time capture groups)")
	cmd.Flags().StringVar(&opts.Timestamps, "timestamps", "", "Timestamp prefix handling (auto|required|none)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Report path (default <input>_analyzed.txt, \"-\" for stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Report format (text|json)")
	cmd.Flags().StringVar(&opts.Chart, "chart", "", "Write a PNG latency chart to this path")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include percentiles and processing metadata")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	// Expand log source globs; CLI args win over config log_sources.
	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.LogSources
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no log files given (pass paths or set log_sources in the config)")
	}
	files, err := parser.ExpandGlobs(patterns)
	if err != nil {
		return fmt.Errorf("expanding log sources: %w", err)
	}

	recordParser, err := buildParser(cfg)
	if err != nil {
		return err
	}

	sourceOpts := []parser.SourceOption{}
	if !cfg.SkipTitle {
		sourceOpts = append(sourceOpts, parser.WithTitle())
	}
	source := parser.NewFileSource(files, recordParser, sourceOpts...)
	defer source.Close()

	records, err := parser.ReadAll(ctx, source)
	if err != nil {
		if errors.Is(err, parser.ErrNoTitle) {
			return fmt.Errorf("no ping title found, probably corrupted log file (use --skip-title to bypass)")
		}
		return fmt.Errorf("reading log: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No ping records found in provided file: %s\n", strings.Join(files, ", "))
		return nil
	}

	analysis := analyzer.Analyze(records, cfg.Threshold)
	report := output.NewReport(analysis, source.Title(), files, source.LinesRead())

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	// Render fully before touching the output file so a failed run never
	// leaves a partial report behind.
	var buf bytes.Buffer
	if err := formatter.Format(ctx, report, &buf); err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}

	if opts.Output == "-" {
		if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		dest := opts.Output
		if dest == "" {
			dest = defaultReportPath(files[0])
		}
		if err := os.WriteFile(dest, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Analyze results saved to %s\n", dest)
	}

	if chartPath := chartDestination(cfg, opts); chartPath != "" {
		if err := writeChart(records, report.Title, cfg.Threshold, chartPath); err != nil {
			return err
		}
		fmt.Printf("Latency chart saved to %s\n", chartPath)
	}

	// Set exit code based on results
	if report.HasFindings() {
		ExitCode = 1
	}

	return nil
}

// resolveConfig loads the optional config file and applies flag overrides.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *AnalyzeOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.Config != "" {
		loaded, err := config.Load(ctx, opts.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	// Explicit flags beat config file values.
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = opts.Threshold
	}
	if cmd.Flags().Changed("skip-title") {
		cfg.SkipTitle = opts.SkipTitle
	}
	if opts.Pattern != "" {
		cfg.RecordPattern = opts.Pattern
	}
	if opts.Timestamps != "" {
		cfg.Timestamps = opts.Timestamps
	}
	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildParser creates the record parser from the resolved config.
func buildParser(cfg *config.Config) (*parser.RecordParser, error) {
	var p *parser.RecordParser
	switch {
	case cfg.CompiledRecordPattern() != nil:
		// Validate already compiled the override.
		built, err := parser.NewRecordParserRegexp(cfg.CompiledRecordPattern())
		if err != nil {
			return nil, fmt.Errorf("record pattern: %w", err)
		}
		p = built
	case cfg.RecordPattern != "":
		built, err := parser.NewRecordParserPattern(cfg.RecordPattern)
		if err != nil {
			return nil, fmt.Errorf("record pattern: %w", err)
		}
		p = built
	default:
		p = parser.NewRecordParser()
	}

	switch cfg.Timestamps {
	case "required":
		p.SetTimestampMode(parser.TimestampRequired)
	case "none":
		p.SetTimestampMode(parser.TimestampNone)
	}
	return p, nil
}

func createFormatter(cfg *config.Config, opts *AnalyzeOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch cfg.Output.Format {
	case "", "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", cfg.Output.Format)
	}
}

func chartDestination(cfg *config.Config, opts *AnalyzeOptions) string {
	if opts.Chart != "" {
		return opts.Chart
	}
	return cfg.Output.Chart
}

func writeChart(records []parser.Record, title string, threshold float64, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided chart path is expected
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := output.RenderLatencyChart(records, title, threshold, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// defaultReportPath places the report next to the input file,
// named <stem>_analyzed.txt.
func defaultReportPath(input string) string {
	dir := filepath.Dir(input)
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"_analyzed.txt")
}
