package analyzer

import (
	"math"
	"time"

	"pinglog/pkg/parser"
)

// Analyze runs a single forward pass over the ordered record list,
// flagging records above the latency threshold (milliseconds) and
// detecting sequence-number gaps between adjacent records.
//
// The input is never mutated. An empty list yields Analysis{Empty: true}.
// Analyze never fails: unexpected sequence arithmetic (out-of-order or
// duplicate numbers) is captured as an out-of-order gap, not an error.
func Analyze(records []parser.Record, threshold float64) *Analysis {
	analysis := &Analysis{
		Threshold: threshold,
		StartTime: time.Now(),
	}

	if len(records) == 0 {
		analysis.Empty = true
		analysis.EndTime = time.Now()
		return analysis
	}

	// The first record is its own predecessor so it can never open a gap.
	previousNumber := records[0].Seq - 1
	previousRecord := records[0]

	times := make([]float64, 0, len(records))
	var exceedingTimes []float64
	var skipCounts []float64

	for _, rec := range records {
		times = append(times, rec.RTT)

		if rec.RTT > threshold {
			analysis.Exceeding = append(analysis.Exceeding, rec)
			exceedingTimes = append(exceedingTimes, rec.RTT)
		}

		if rec.Seq != previousNumber+1 {
			gap := Gap{
				Start:   previousRecord,
				End:     rec,
				Skipped: rec.Seq - previousNumber - 1,
			}
			// Duplicate or reordered delivery: the arithmetic goes
			// non-positive, so clamp and flag instead of polluting
			// the skip aggregates with negative counts.
			if gap.Skipped < 0 {
				gap.Skipped = 0
				gap.OutOfOrder = true
			}
			analysis.Gaps = append(analysis.Gaps, gap)
			skipCounts = append(skipCounts, float64(gap.Skipped))
		}

		previousRecord = rec
		previousNumber = rec.Seq
	}

	analysis.Overall = LatencyStats{
		Count:  len(records),
		Mean:   Mean(times),
		Median: Median(times),
		Max:    Max(times),
	}
	ps := Percentiles(times, 0.95, 0.99)
	analysis.Overall.P95 = ps[0]
	analysis.Overall.P99 = ps[1]

	if len(exceedingTimes) > 0 {
		analysis.AboveThreshold = ThresholdStats{
			Count:   len(exceedingTimes),
			Percent: round2(float64(len(exceedingTimes)) * 100 / float64(len(records))),
			Mean:    Mean(exceedingTimes),
			Median:  Median(exceedingTimes),
		}
	}

	if len(skipCounts) > 0 {
		analysis.Skips = SkipStats{
			Count:  len(skipCounts),
			Mean:   Mean(skipCounts),
			Median: Median(skipCounts),
			Max:    int(Max(skipCounts)),
		}
	}

	analysis.EndTime = time.Now()
	return analysis
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
