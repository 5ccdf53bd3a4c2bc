package output

import (
	"bytes"
	"testing"
	"time"

	"pinglog/pkg/parser"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderLatencyChart_TimeSeries(t *testing.T) {
	base := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	records := make([]parser.Record, 20)
	for i := range records {
		records[i] = parser.Record{
			Host:      "1.2.3.4",
			Seq:       i + 1,
			RTT:       float64(i%5) + 0.5,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
	}

	var buf bytes.Buffer
	if err := RenderLatencyChart(records, "test", 1, &buf); err != nil {
		t.Fatalf("RenderLatencyChart() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderLatencyChart_SequenceIndexed(t *testing.T) {
	// No timestamps: x axis falls back to sequence numbers.
	records := make([]parser.Record, 5)
	for i := range records {
		records[i] = parser.Record{Host: "h", Seq: i + 1, RTT: 1.0 + float64(i)}
	}

	var buf bytes.Buffer
	if err := RenderLatencyChart(records, "", 1, &buf); err != nil {
		t.Fatalf("RenderLatencyChart() error = %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderLatencyChart_ThresholdLine(t *testing.T) {
	records := make([]parser.Record, 12)
	for i := range records {
		records[i] = parser.Record{Host: "h", Seq: i + 1, RTT: 0.5 + float64(i%3)}
	}

	// Renders with and without the threshold marker; only the marked
	// variant carries the extra grid line, so the outputs differ.
	var with, without bytes.Buffer
	if err := RenderLatencyChart(records, "", 2, &with); err != nil {
		t.Fatalf("RenderLatencyChart() error = %v", err)
	}
	if err := RenderLatencyChart(records, "", 0, &without); err != nil {
		t.Fatalf("RenderLatencyChart() error = %v", err)
	}

	if !bytes.HasPrefix(with.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
	if bytes.Equal(with.Bytes(), without.Bytes()) {
		t.Error("threshold line did not change the rendered chart")
	}
}

func TestRenderLatencyChart_TooFewRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLatencyChart([]parser.Record{{Seq: 1, RTT: 1}}, "", 1, &buf); err == nil {
		t.Error("RenderLatencyChart() expected error for a single record")
	}
}
