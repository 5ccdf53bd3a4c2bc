package output

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"pinglog/pkg/analyzer"
	"pinglog/pkg/parser"
)

// timestampLayout is the layout used for record timestamps in reports.
const timestampLayout = "2006-02-01 15:04:05.000000"

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if report.Analysis == nil || report.Analysis.Empty {
		fmt.Fprintln(w, "No ping records found")
		return nil
	}
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "pinglog: %d records, %d above %s ms, %d skipped chunks\n",
		report.Summary.Records,
		report.Summary.AboveThreshold,
		fnum(report.Summary.Threshold),
		report.Summary.SkippedChunks)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	a := report.Analysis
	threshold := fnum(a.Threshold)

	if report.Title != "" {
		fmt.Fprintln(w, report.Title)
		fmt.Fprintln(w)
	}

	// Overall statistics
	fmt.Fprintf(w, "Total records: %d\n", a.Overall.Count)
	fmt.Fprintf(w, "Average ping: %s\n", fnum(a.Overall.Mean))
	fmt.Fprintf(w, "Median ping: %s\n", fnum(a.Overall.Median))
	fmt.Fprintf(w, "Maximum ping: %s\n", fnum(a.Overall.Max))
	if f.opts.Verbose {
		fmt.Fprintf(w, "P95 ping: %s\n", fnum(a.Overall.P95))
		fmt.Fprintf(w, "P99 ping: %s\n", fnum(a.Overall.P99))
	}
	fmt.Fprintln(w)

	// Threshold statistics
	fmt.Fprintf(w, "Total times above %s ms: %d\n", threshold, a.AboveThreshold.Count)
	if a.AboveThreshold.Count > 0 {
		fmt.Fprintf(w, "Percentage of requests above %s ms: %.2f\n", threshold, a.AboveThreshold.Percent)
		fmt.Fprintf(w, "Average ping above %s ms: %s\n", threshold, fnum(a.AboveThreshold.Mean))
		fmt.Fprintf(w, "Median ping above %s ms: %s\n", threshold, fnum(a.AboveThreshold.Median))
	}
	fmt.Fprintln(w)

	// Gap statistics
	fmt.Fprintf(w, "Skipped requests chunks count: %d\n", a.Skips.Count)
	if a.Skips.Count > 0 {
		fmt.Fprintf(w, "Average skipped requests in one chunk: %s\n", fnum(a.Skips.Mean))
		fmt.Fprintf(w, "Median skipped requests in one chunk: %s\n", fnum(a.Skips.Median))
		fmt.Fprintf(w, "Maximum skipped requests in one chunk: %d\n", a.Skips.Max)
	}
	fmt.Fprintln(w)

	// Detail listings
	if len(a.Exceeding) > 0 {
		fmt.Fprintf(w, "__Times above %s ms:__\n", threshold)
		fmt.Fprintln(w)
		for _, rec := range a.Exceeding {
			fmt.Fprintf(w, "%s\n", recordLine(&rec))
		}
		fmt.Fprintln(w)
	}

	if len(a.Gaps) > 0 {
		fmt.Fprintln(w, "__Skipped requests:__")
		fmt.Fprintln(w)
		for _, gap := range a.Gaps {
			f.formatGap(&gap, w)
		}
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "Lines read: %d\n", report.Metadata.LinesRead)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}

func (f *TextFormatter) formatGap(gap *analyzer.Gap, w io.Writer) {
	fmt.Fprintf(w, "Chunk begin%s%s\n", chunkAt(&gap.Start), recordLine(&gap.Start))
	if gap.OutOfOrder {
		fmt.Fprintf(w, "Skipped: %d (out of order)\n", gap.Skipped)
	} else {
		fmt.Fprintf(w, "Skipped: %d\n", gap.Skipped)
	}
	fmt.Fprintf(w, "Chunk end%s%s\n", chunkAt(&gap.End), recordLine(&gap.End))
	fmt.Fprintln(w)
}

// recordLine renders one record the way the detail sections list them.
func recordLine(rec *parser.Record) string {
	prefix := ""
	if rec.HasTimestamp() {
		prefix = rec.Timestamp.Format(timestampLayout) + ": "
	}
	return fmt.Sprintf("%sping %s: seq=%d time=%s", prefix, rec.Host, rec.Seq, fnum(rec.RTT))
}

// chunkAt joins "Chunk begin"/"Chunk end" to the record line: with a
// timestamp the record line already starts with it, so only the
// separator differs.
func chunkAt(rec *parser.Record) string {
	if rec.HasTimestamp() {
		return " at "
	}
	return ": "
}

// fnum renders a float in Go's shortest round-trip form: averages are
// pre-rounded to 3 decimals, medians and maxima keep full precision.
func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
