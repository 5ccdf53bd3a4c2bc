package output

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pinglog/pkg/parser"
)

// smaPeriod is the window of the moving-average overlay.
const smaPeriod = 10

// RenderLatencyChart renders a PNG chart of round-trip times over the
// record list. Records with timestamps plot as a time series; otherwise
// the x axis is the sequence number. A positive threshold draws a marker
// line at that latency.
func RenderLatencyChart(records []parser.Record, title string, threshold float64, w io.Writer) error {
	if len(records) < 2 {
		return fmt.Errorf("not enough records to chart: %d", len(records))
	}

	if title == "" {
		title = "Ping latency"
	}

	graph := chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
	}

	if threshold > 0 {
		graph.YAxis.GridLines = []chart.GridLine{
			{
				Value: threshold,
				Style: chart.Style{
					StrokeColor:     drawing.Color{R: 220, G: 60, B: 60, A: 255},
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{4, 4},
				},
			},
		}
	}

	values := make([]float64, len(records))
	for i, rec := range records {
		values[i] = rec.RTT
	}

	if allTimestamped(records) {
		timestamps := make([]time.Time, len(records))
		for i, rec := range records {
			timestamps[i] = rec.Timestamp
		}

		graph.XAxis = chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		}

		ts := chart.TimeSeries{
			Name: "RTT",
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(0),
				StrokeWidth: 2,
			},
			XValues: timestamps,
			YValues: values,
		}
		graph.Series = []chart.Series{ts}

		if len(values) > smaPeriod {
			graph.Series = append(graph.Series, chart.SMASeries{
				Name: "Moving Avg",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(1),
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
				InnerSeries: ts,
				Period:      smaPeriod,
			})
		}
	} else {
		// No (complete) timestamps: plot against sequence numbers.
		seqs := make([]float64, len(records))
		for i, rec := range records {
			seqs[i] = float64(rec.Seq)
		}

		graph.XAxis = chart.XAxis{
			Name: "Sequence number",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
		}

		cs := chart.ContinuousSeries{
			Name: "RTT",
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(0),
				StrokeWidth: 2,
			},
			XValues: seqs,
			YValues: values,
		}
		graph.Series = []chart.Series{cs}

		if len(values) > smaPeriod {
			graph.Series = append(graph.Series, chart.SMASeries{
				Name: "Moving Avg",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(1),
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
				InnerSeries: cs,
				Period:      smaPeriod,
			})
		}
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering latency chart: %w", err)
	}
	return nil
}

func allTimestamped(records []parser.Record) bool {
	for i := range records {
		if !records[i].HasTimestamp() {
			return false
		}
	}
	return true
}
