package commands

import (
	"context"
	"path/filepath"
	"testing"
)

func TestInspectFile(t *testing.T) {
	logFile := writeSampleLog(t, sampleLog+"Request timeout for icmp_seq 5\n")

	result, err := inspectFile(context.Background(), logFile, 100)
	if err != nil {
		t.Fatalf("inspectFile() error = %v", err)
	}

	if result.SampledLines != 5 {
		t.Errorf("SampledLines = %d, want 5", result.SampledLines)
	}
	if result.RecordLines != 3 {
		t.Errorf("RecordLines = %d, want 3", result.RecordLines)
	}
	if result.Title == "" {
		t.Error("Title not detected")
	}
	if result.TimestampedLines != 0 {
		t.Errorf("TimestampedLines = %d, want 0", result.TimestampedLines)
	}
	if result.SampleRecord == "" {
		t.Error("SampleRecord not captured")
	}
	if len(result.Rejected) != 1 {
		t.Errorf("Rejected = %v, want one example line", result.Rejected)
	}
}

func TestInspectFile_SampleLimit(t *testing.T) {
	logFile := writeSampleLog(t, sampleLog)

	result, err := inspectFile(context.Background(), logFile, 2)
	if err != nil {
		t.Fatalf("inspectFile() error = %v", err)
	}
	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
}

func TestInspectFile_Timestamped(t *testing.T) {
	logFile := writeSampleLog(t, "[1700000000.5] 1 64 bytes from host (1.2.3.4): icmp_seq=1 ttl=64 time=0.5 ms\n")

	result, err := inspectFile(context.Background(), logFile, 100)
	if err != nil {
		t.Fatalf("inspectFile() error = %v", err)
	}
	if result.TimestampedLines != 1 {
		t.Errorf("TimestampedLines = %d, want 1", result.TimestampedLines)
	}
}

func TestInspectFile_Missing(t *testing.T) {
	if _, err := inspectFile(context.Background(), filepath.Join(t.TempDir(), "missing.log"), 10); err == nil {
		t.Error("inspectFile() expected error for missing file")
	}
}

func TestInspectCommand_JSONOutput(t *testing.T) {
	logFile := writeSampleLog(t, sampleLog)

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"-o", "json", logFile})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
}

func TestInspectCommand_BadFormat(t *testing.T) {
	logFile := writeSampleLog(t, sampleLog)

	cmd := NewInspectCommand()
	cmd.SetArgs([]string{"-o", "yaml", logFile})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() expected error for unknown format")
	}
}
