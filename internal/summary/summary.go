// Package summary contains day-level aggregation and reporting.
package summary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/elotrack/internal/history"
	"github.com/verte-zerg/elotrack/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Day aggregates a single day's sets into a summary row.
func Day(day model.Day) (model.DaySummary, error) {
	if len(day.Sets) == 0 {
		return model.DaySummary{}, fmt.Errorf("%w: %s", history.ErrEmptyDay, history.DateKey(day.Date))
	}
	high := day.Sets[0]
	low := day.Sets[0]
	for _, rating := range day.Sets[1:] {
		if rating > high {
			high = rating
		}
		if rating < low {
			low = rating
		}
	}
	start := day.Sets[0]
	end := day.Sets[len(day.Sets)-1]
	return model.DaySummary{
		Date:       day.Date,
		SetsPlayed: len(day.Sets),
		Start:      start,
		End:        end,
		Change:     end - start,
		High:       high,
		Low:        low,
	}, nil
}

// Range summarizes the most recent days with at least one recorded set, in
// ascending date order. A non-positive days value includes all recorded days.
// An empty history yields an empty slice.
func Range(h *history.History, days int) ([]model.DaySummary, error) {
	sorted := h.SortedDays()
	if days > 0 && len(sorted) > days {
		sorted = sorted[len(sorted)-days:]
	}
	summaries := make([]model.DaySummary, 0, len(sorted))
	for _, day := range sorted {
		s, err := Day(day)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// ForDate summarizes a single date. Absent dates yield ErrNoDataForDate.
func ForDate(h *history.History, date time.Time) (model.DaySummary, error) {
	day, err := h.Day(date)
	if err != nil {
		return model.DaySummary{}, err
	}
	return Day(day)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
