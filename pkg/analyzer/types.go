// Package analyzer computes latency statistics and sequence-gap detection
// over an ordered list of probe records.
package analyzer

import (
	"time"

	"pinglog/pkg/parser"
)

// Gap represents a discontinuity in sequence numbers between two records
// that are adjacent in the parsed list.
type Gap struct {
	// Start is the record before the discontinuity.
	Start parser.Record `json:"start"`

	// End is the record after the discontinuity.
	End parser.Record `json:"end"`

	// Skipped is the number of probes missing between Start and End.
	// Clamped to 0 for out-of-order or duplicate sequence numbers.
	Skipped int `json:"skipped"`

	// OutOfOrder marks a gap where End.Seq <= Start.Seq (duplicate or
	// reordered delivery) rather than genuinely missing probes.
	OutOfOrder bool `json:"out_of_order,omitempty"`
}

// LatencyStats aggregates round-trip times over the full record list.
type LatencyStats struct {
	// Count is the number of records.
	Count int `json:"count"`

	// Mean is the arithmetic mean, rounded to 3 decimal places.
	Mean float64 `json:"mean"`

	// Median is the standard median (mean of middles for even counts).
	Median float64 `json:"median"`

	// Max is the maximum round-trip time.
	Max float64 `json:"max"`

	// P95 and P99 are approximate latency percentiles.
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// ThresholdStats aggregates the records exceeding the latency threshold.
type ThresholdStats struct {
	// Count is the number of records above the threshold.
	Count int `json:"count"`

	// Percent is Count as a percentage of all records, 2 decimal places.
	Percent float64 `json:"percent"`

	// Mean is the mean of exceeding round-trip times, 3 decimal places.
	Mean float64 `json:"mean"`

	// Median is the median of exceeding round-trip times.
	Median float64 `json:"median"`
}

// SkipStats aggregates the skipped-probe counts across all gaps.
type SkipStats struct {
	// Count is the number of gaps ("skipped chunks").
	Count int `json:"count"`

	// Mean is the mean skipped count, rounded to 3 decimal places.
	Mean float64 `json:"mean"`

	// Median is the median skipped count.
	Median float64 `json:"median"`

	// Max is the maximum skipped count.
	Max int `json:"max"`
}

// Analysis is the result of a single pass over the record list.
// Input records are never mutated.
type Analysis struct {
	// Empty is true when no records were provided; no other field is
	// meaningful in that case.
	Empty bool `json:"empty,omitempty"`

	// Threshold is the latency threshold in milliseconds the records
	// were checked against.
	Threshold float64 `json:"threshold"`

	// Overall aggregates all records.
	Overall LatencyStats `json:"overall"`

	// AboveThreshold aggregates the exceeding records (zero value when
	// none exceeded).
	AboveThreshold ThresholdStats `json:"above_threshold"`

	// Exceeding lists every record above the threshold, in input order.
	Exceeding []parser.Record `json:"exceeding,omitempty"`

	// Gaps lists every sequence discontinuity, in input order.
	Gaps []Gap `json:"gaps,omitempty"`

	// Skips aggregates the gap list (zero value when no gaps).
	Skips SkipStats `json:"skips"`

	// StartTime and EndTime bound the analysis pass.
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// HasFindings reports whether the analysis found anything worth flagging:
// above-threshold records or sequence gaps.
func (a *Analysis) HasFindings() bool {
	return len(a.Exceeding) > 0 || len(a.Gaps) > 0
}
