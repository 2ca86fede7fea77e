package dashui

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/elotrack/internal/model"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func TestBuildDayRows(t *testing.T) {
	summaries := []model.DaySummary{
		{Date: day(t, "2024-01-01"), SetsPlayed: 3, Start: 2100, End: 2125, Change: 25, High: 2140, Low: 2100},
		{Date: day(t, "2024-01-02"), SetsPlayed: 1, Start: 2130, End: 2130, High: 2130, Low: 2130},
	}
	rows := buildDayRows(summaries)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2024-01-01" || rows[0][4] != "+25" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1][4] != "+0" {
		t.Fatalf("expected +0 change, got %q", rows[1][4])
	}
}

func TestRenderMetricCards(t *testing.T) {
	summaries := []model.DaySummary{
		{Date: day(t, "2024-01-01"), SetsPlayed: 3, Start: 2100, End: 2125, Change: 25, High: 2140, Low: 2100},
		{Date: day(t, "2024-01-02"), SetsPlayed: 2, Start: 2125, End: 2180, Change: 55, High: 2180, Low: 2125},
	}
	out := renderMetricCards(summaries, 40)
	for _, want := range []string{"Days", "Sets", "Latest", "2180", "Net", "+80", "Peak", "Low"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected cards to contain %q, got:\n%s", want, out)
		}
	}
}

func TestApplyFilter(t *testing.T) {
	m := &Model{cfg: model.QueryConfig{Days: 7, Window: 7}}
	m.initInputs()

	m.filterInputs[0].SetValue("14")
	m.filterInputs[1].SetValue("3")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	if m.cfg.Days != 14 || m.cfg.Window != 3 {
		t.Fatalf("unexpected config: %+v", m.cfg)
	}

	m.filterInputs[0].SetValue("")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	if m.cfg.Days != 0 {
		t.Fatalf("expected empty days to mean all, got %d", m.cfg.Days)
	}

	m.filterInputs[0].SetValue("-1")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected error for negative days")
	}
	m.filterInputs[0].SetValue("7")
	m.filterInputs[1].SetValue("0")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("short", 10); got != "short" {
		t.Fatalf("expected unchanged line, got %q", got)
	}
	if got := truncateLine("a very long line", 9); got != "a very..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected tiny truncation: %q", got)
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb", 3, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 3 {
			t.Fatalf("line %d: expected width 3, got %q", i, line)
		}
	}
}
