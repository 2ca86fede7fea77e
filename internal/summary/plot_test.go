package summary

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/verte-zerg/elotrack/internal/model"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{1, 2, 3, 2, 1}},
		{Name: "B", Values: []float64{1, 1, 2, 3, 4}},
	}, 5, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Test Plot") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Scaled per series") {
		t.Fatalf("expected scale note in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	expectedMin := 1 + 1 + 2 + 4 + 1
	if len(lines) < expectedMin {
		t.Fatalf("expected at least %d lines of output, got %d", expectedMin, len(lines))
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	total := 80
	expected := total - axisWidth
	if expected < minPlotWidth {
		expected = minPlotWidth
	}
	if got := PlotWidthFor(total); got != expected {
		t.Fatalf("expected width %d, got %d", expected, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestRenderTrend(t *testing.T) {
	summaries := []model.DaySummary{
		{Date: mustDate(t, "2024-01-01"), SetsPlayed: 1, Start: 2100, End: 2100, High: 2100, Low: 2100},
		{Date: mustDate(t, "2024-01-02"), SetsPlayed: 2, Start: 2100, End: 2150, Change: 50, High: 2150, Low: 2100},
		{Date: mustDate(t, "2024-01-03"), SetsPlayed: 1, Start: 2150, End: 2120, Change: -30, High: 2120, Low: 2120},
	}
	var buf bytes.Buffer
	if err := RenderTrendWithSize(&buf, summaries, 2, 60, 6, false); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Elo Trend") {
		t.Fatalf("expected title in output, got:\n%s", out)
	}
	if !strings.Contains(out, "End Elo") {
		t.Fatalf("expected End Elo series, got:\n%s", out)
	}
	if !strings.Contains(out, "Avg (2d)") {
		t.Fatalf("expected moving average series, got:\n%s", out)
	}
}

func TestRenderTrendNoData(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderTrend(&buf, nil, 7); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	if !strings.Contains(buf.String(), "No Elo data recorded yet") {
		t.Fatalf("expected no-data message, got %q", buf.String())
	}
}
