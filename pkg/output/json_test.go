package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"pinglog/pkg/analyzer"
)

func TestJSONFormatter_Format(t *testing.T) {
	analysis := analyzer.Analyze(specRecords(), 1)
	report := NewReport(analysis, "Statistics of PING x (1.2.3.4) 56 bytes", []string{"ping.log"}, 3)

	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Summary.Records != 3 {
		t.Errorf("Summary.Records = %d, want 3", decoded.Summary.Records)
	}
	if decoded.Summary.AboveThreshold != 1 {
		t.Errorf("Summary.AboveThreshold = %d, want 1", decoded.Summary.AboveThreshold)
	}
	if decoded.Summary.SkippedChunks != 1 {
		t.Errorf("Summary.SkippedChunks = %d, want 1", decoded.Summary.SkippedChunks)
	}
	if decoded.Title == "" {
		t.Error("Title missing from JSON output")
	}
	if len(decoded.Analysis.Gaps) != 1 {
		t.Errorf("Analysis.Gaps = %d, want 1", len(decoded.Analysis.Gaps))
	}
}

func TestJSONFormatter_CanceledContext(t *testing.T) {
	analysis := analyzer.Analyze(specRecords(), 1)
	report := NewReport(analysis, "", nil, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{}).Format(ctx, report, &buf); err == nil {
		t.Error("Format() expected error for canceled context")
	}
	if buf.Len() != 0 {
		t.Errorf("Format() wrote %d bytes despite canceled context", buf.Len())
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	analysis := analyzer.Analyze(specRecords(), 1)
	report := NewReport(analysis, "", nil, 3)

	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{Quiet: true}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var summary Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("quiet output is not a summary: %v", err)
	}
	if summary.Records != 3 {
		t.Errorf("Records = %d, want 3", summary.Records)
	}
}
