// Package output provides report assembly and formatting for analysis results.
package output

import (
	"time"

	"pinglog/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	// Title is the optional report title derived from the ping header line.
	Title string `json:"title,omitempty"`

	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Analysis holds the full statistics, exceeding records, and gaps.
	Analysis *analyzer.Analysis `json:"analysis"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// Records is the number of parsed probe records.
	Records int `json:"records"`

	// AboveThreshold is the number of records over the latency threshold.
	AboveThreshold int `json:"above_threshold"`

	// SkippedChunks is the number of sequence gaps detected.
	SkippedChunks int `json:"skipped_chunks"`

	// Threshold is the latency threshold in milliseconds.
	Threshold float64 `json:"threshold"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Sources lists the log files that were analyzed.
	Sources []string `json:"sources"`

	// LinesRead is the total number of raw lines consumed.
	LinesRead int `json:"lines_read"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from an analysis.
func NewReport(analysis *analyzer.Analysis, title string, sources []string, linesRead int) *Report {
	return &Report{
		Title:    title,
		Analysis: analysis,
		Summary: Summary{
			Records:        analysis.Overall.Count,
			AboveThreshold: analysis.AboveThreshold.Count,
			SkippedChunks:  analysis.Skips.Count,
			Threshold:      analysis.Threshold,
		},
		Metadata: Metadata{
			Sources:    sources,
			LinesRead:  linesRead,
			AnalyzedAt: analysis.EndTime,
			Duration:   analysis.EndTime.Sub(analysis.StartTime),
		},
	}
}

// HasFindings reports whether the run flagged anything: above-threshold
// records or sequence gaps.
func (r *Report) HasFindings() bool {
	return r.Analysis != nil && r.Analysis.HasFindings()
}
