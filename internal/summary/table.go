package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/elotrack/internal/history"
	"github.com/verte-zerg/elotrack/internal/model"
)

const noDataMessage = "No Elo data recorded yet. Use the 'record' command to add a set."

// RenderTable prints day summaries as an aligned table with a per-day
// rating sparkline.
func RenderTable(w io.Writer, summaries []model.DaySummary, days []model.Day) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	trends := map[string]string{}
	for _, day := range days {
		values := make([]float64, len(day.Sets))
		for i, rating := range day.Sets {
			values[i] = float64(rating)
		}
		trends[history.DateKey(day.Date)] = Sparkline(values)
	}
	headers := []string{"Date", "Sets", "Start", "End", "Δ Elo", "Peak", "Low", "Trend"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			history.DateKey(s.Date),
			fmt.Sprintf("%d", s.SetsPlayed),
			fmt.Sprintf("%d", s.Start),
			fmt.Sprintf("%d", s.End),
			FormatChange(s.Change),
			fmt.Sprintf("%d", s.High),
			fmt.Sprintf("%d", s.Low),
			trends[history.DateKey(s.Date)],
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}))
}

// RenderHistory prints each day with its raw recorded ratings.
func RenderHistory(w io.Writer, days []model.Day) error {
	if len(days) == 0 {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	headers := []string{"Date", "Sets", "Ratings"}
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		parts := make([]string, len(day.Sets))
		for i, rating := range day.Sets {
			parts[i] = fmt.Sprintf("%d", rating)
		}
		rows = append(rows, []string{
			history.DateKey(day.Date),
			fmt.Sprintf("%d", len(day.Sets)),
			strings.Join(parts, " "),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true}))
}

// FormatChange renders a signed Elo delta.
func FormatChange(change int) string {
	if change >= 0 {
		return fmt.Sprintf("+%d", change)
	}
	return fmt.Sprintf("%d", change)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
