package analyzer

import (
	"testing"

	"pinglog/pkg/parser"
)

func makeRecords(seqRTT ...float64) []parser.Record {
	// Pairs of (seq, rtt).
	records := make([]parser.Record, 0, len(seqRTT)/2)
	for i := 0; i+1 < len(seqRTT); i += 2 {
		records = append(records, parser.Record{
			Host: "1.2.3.4",
			Seq:  int(seqRTT[i]),
			RTT:  seqRTT[i+1],
		})
	}
	return records
}

func TestAnalyze_Empty(t *testing.T) {
	analysis := Analyze(nil, 1)

	if !analysis.Empty {
		t.Error("Empty = false, want true")
	}
	if analysis.HasFindings() {
		t.Error("HasFindings() = true for empty input")
	}
}

func TestAnalyze_ConsecutiveNoGaps(t *testing.T) {
	records := makeRecords(1, 0.5, 2, 0.6, 3, 0.7, 4, 0.8)
	analysis := Analyze(records, 1)

	if len(analysis.Gaps) != 0 {
		t.Errorf("Gaps = %d, want 0 for consecutive sequence numbers", len(analysis.Gaps))
	}
	if analysis.Skips.Count != 0 {
		t.Errorf("Skips.Count = %d, want 0", analysis.Skips.Count)
	}
}

func TestAnalyze_SingleGap(t *testing.T) {
	// Jump from 5 to 8: one gap with two probes skipped.
	records := makeRecords(4, 0.5, 5, 0.5, 8, 0.5)
	analysis := Analyze(records, 1)

	if len(analysis.Gaps) != 1 {
		t.Fatalf("Gaps = %d, want 1", len(analysis.Gaps))
	}
	gap := analysis.Gaps[0]
	if gap.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", gap.Skipped)
	}
	if gap.Start.Seq != 5 || gap.End.Seq != 8 {
		t.Errorf("gap bounds = %d..%d, want 5..8", gap.Start.Seq, gap.End.Seq)
	}
	if gap.OutOfOrder {
		t.Error("OutOfOrder = true for a forward gap")
	}
}

func TestAnalyze_SpecScenario(t *testing.T) {
	records := makeRecords(1, 0.5, 2, 2.0, 4, 0.9)
	analysis := Analyze(records, 1)

	if analysis.Overall.Count != 3 {
		t.Errorf("Count = %d, want 3", analysis.Overall.Count)
	}
	if analysis.Overall.Mean != 1.133 {
		t.Errorf("Mean = %v, want 1.133", analysis.Overall.Mean)
	}
	if analysis.Overall.Median != 0.9 {
		t.Errorf("Median = %v, want 0.9", analysis.Overall.Median)
	}
	if analysis.Overall.Max != 2.0 {
		t.Errorf("Max = %v, want 2", analysis.Overall.Max)
	}

	if analysis.AboveThreshold.Count != 1 {
		t.Errorf("AboveThreshold.Count = %d, want 1", analysis.AboveThreshold.Count)
	}
	if len(analysis.Exceeding) != 1 || analysis.Exceeding[0].Seq != 2 {
		t.Errorf("Exceeding = %v, want the seq=2 record", analysis.Exceeding)
	}
	if analysis.AboveThreshold.Percent != 33.33 {
		t.Errorf("Percent = %v, want 33.33", analysis.AboveThreshold.Percent)
	}

	if len(analysis.Gaps) != 1 {
		t.Fatalf("Gaps = %d, want 1", len(analysis.Gaps))
	}
	if analysis.Gaps[0].Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", analysis.Gaps[0].Skipped)
	}
	if analysis.Gaps[0].Start.Seq != 2 || analysis.Gaps[0].End.Seq != 4 {
		t.Errorf("gap bounds = %d..%d, want 2..4",
			analysis.Gaps[0].Start.Seq, analysis.Gaps[0].End.Seq)
	}
}

func TestAnalyze_ExceedingPlusRestEqualsTotal(t *testing.T) {
	records := makeRecords(1, 0.5, 2, 1.5, 3, 3.0, 4, 0.2, 5, 1.01)
	analysis := Analyze(records, 1)

	rest := analysis.Overall.Count - analysis.AboveThreshold.Count
	if analysis.AboveThreshold.Count+rest != len(records) {
		t.Errorf("exceeding(%d) + rest(%d) != total(%d)",
			analysis.AboveThreshold.Count, rest, len(records))
	}
	if analysis.AboveThreshold.Count != 3 {
		t.Errorf("AboveThreshold.Count = %d, want 3", analysis.AboveThreshold.Count)
	}
}

func TestAnalyze_ThresholdIsExclusive(t *testing.T) {
	// A record exactly at the threshold is not flagged.
	records := makeRecords(1, 1.0)
	analysis := Analyze(records, 1)

	if len(analysis.Exceeding) != 0 {
		t.Errorf("Exceeding = %d, want 0 for rtt == threshold", len(analysis.Exceeding))
	}
}

func TestAnalyze_OutOfOrder(t *testing.T) {
	// Sequence goes 1, 2, 2 (duplicate), 1 (reordered).
	records := makeRecords(1, 0.5, 2, 0.5, 2, 0.5, 1, 0.5)
	analysis := Analyze(records, 1)

	if len(analysis.Gaps) != 2 {
		t.Fatalf("Gaps = %d, want 2", len(analysis.Gaps))
	}
	for i, gap := range analysis.Gaps {
		if !gap.OutOfOrder {
			t.Errorf("Gaps[%d].OutOfOrder = false, want true", i)
		}
		if gap.Skipped != 0 {
			t.Errorf("Gaps[%d].Skipped = %d, want clamped 0", i, gap.Skipped)
		}
	}
	if analysis.Skips.Max != 0 || analysis.Skips.Mean != 0 {
		t.Errorf("skip stats = %+v, want all zero after clamping", analysis.Skips)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	records := makeRecords(1, 0.5, 3, 2.5)
	before := make([]parser.Record, len(records))
	copy(before, records)

	Analyze(records, 1)

	for i := range records {
		if records[i] != before[i] {
			t.Errorf("record %d mutated: %+v != %+v", i, records[i], before[i])
		}
	}
}

func TestAnalyze_SkipStats(t *testing.T) {
	// Gaps of 2 (3→6) and 4 (7→12).
	records := makeRecords(1, 0.1, 2, 0.1, 3, 0.1, 6, 0.1, 7, 0.1, 12, 0.1)
	analysis := Analyze(records, 1)

	if analysis.Skips.Count != 2 {
		t.Fatalf("Skips.Count = %d, want 2", analysis.Skips.Count)
	}
	if analysis.Skips.Mean != 3 {
		t.Errorf("Skips.Mean = %v, want 3", analysis.Skips.Mean)
	}
	if analysis.Skips.Median != 3 {
		t.Errorf("Skips.Median = %v, want 3", analysis.Skips.Median)
	}
	if analysis.Skips.Max != 4 {
		t.Errorf("Skips.Max = %d, want 4", analysis.Skips.Max)
	}
}
