package history

import (
	"errors"
	"testing"
	"time"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return date
}

func TestAppendCreatesDay(t *testing.T) {
	h := New(0)
	date := mustDate(t, "2024-01-01")
	for i, rating := range []int{2100, 2140, 2125} {
		n, err := h.Append(date, rating)
		if err != nil {
			t.Fatalf("append %d: %v", rating, err)
		}
		if n != i+1 {
			t.Fatalf("expected set number %d, got %d", i+1, n)
		}
	}
	day, err := h.Day(date)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(day.Sets) != 3 {
		t.Fatalf("expected 3 sets, got %d", len(day.Sets))
	}
	if day.Sets[0] != 2100 || day.Sets[1] != 2140 || day.Sets[2] != 2125 {
		t.Fatalf("unexpected sets: %v", day.Sets)
	}
}

func TestAppendCapacity(t *testing.T) {
	h := New(0)
	date := mustDate(t, "2024-01-01")
	for i := 0; i < MaxSetsPerDay; i++ {
		if _, err := h.Append(date, 2000+i); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	if _, err := h.Append(date, 3000); !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	day, err := h.Day(date)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(day.Sets) != MaxSetsPerDay {
		t.Fatalf("expected day unchanged at %d sets, got %d", MaxSetsPerDay, len(day.Sets))
	}
	if day.Sets[len(day.Sets)-1] != 2000+MaxSetsPerDay-1 {
		t.Fatalf("unexpected last set: %d", day.Sets[len(day.Sets)-1])
	}
}

func TestAppendRejectsInvalidRating(t *testing.T) {
	h := New(2500)
	date := mustDate(t, "2024-01-01")
	for _, rating := range []int{0, -5, 2501} {
		if _, err := h.Append(date, rating); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
	if h.Len() != 0 {
		t.Fatalf("expected no days recorded, got %d", h.Len())
	}
}

func TestParseRating(t *testing.T) {
	rating, err := ParseRating("2100", 0)
	if err != nil {
		t.Fatalf("parse rating: %v", err)
	}
	if rating != 2100 {
		t.Fatalf("expected 2100, got %d", rating)
	}
	if _, err := ParseRating("abc", 0); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for non-integer, got %v", err)
	}
	if _, err := ParseRating("10001", 0); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating above default bound, got %v", err)
	}
}

func TestParseDateRejectsMalformedInput(t *testing.T) {
	for _, value := range []string{"2024-13-01", "01/02/2024", "yesterday"} {
		if _, err := ParseDate(value); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("value %q: expected ErrInvalidArgument, got %v", value, err)
		}
	}
}

func TestDayMissingDate(t *testing.T) {
	h := New(0)
	if _, err := h.Day(mustDate(t, "2024-02-01")); !errors.Is(err, ErrNoDataForDate) {
		t.Fatalf("expected ErrNoDataForDate, got %v", err)
	}
}

func TestSortedDaysAscending(t *testing.T) {
	h := New(0)
	for _, value := range []string{"2024-01-03", "2024-01-01", "2024-01-02"} {
		if _, err := h.Append(mustDate(t, value), 2000); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	days := h.SortedDays()
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, expected := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if got := DateKey(days[i].Date); got != expected {
			t.Fatalf("day %d: expected %s, got %s", i, expected, got)
		}
	}
}

func TestMostRecent(t *testing.T) {
	h := New(0)
	for _, value := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if _, err := h.Append(mustDate(t, value), 2000); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	recent, err := h.MostRecent(2)
	if err != nil {
		t.Fatalf("most recent: %v", err)
	}
	days := recent.SortedDays()
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if DateKey(days[0].Date) != "2024-01-02" || DateKey(days[1].Date) != "2024-01-03" {
		t.Fatalf("unexpected days: %s, %s", DateKey(days[0].Date), DateKey(days[1].Date))
	}

	all, err := h.MostRecent(10)
	if err != nil {
		t.Fatalf("most recent: %v", err)
	}
	if all.Len() != 3 {
		t.Fatalf("expected all 3 days, got %d", all.Len())
	}

	if _, err := h.MostRecent(0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for n=0, got %v", err)
	}
	if _, err := h.MostRecent(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for n=-1, got %v", err)
	}
}

func TestMostRecentCopiesData(t *testing.T) {
	h := New(0)
	date := mustDate(t, "2024-01-01")
	if _, err := h.Append(date, 2000); err != nil {
		t.Fatalf("append: %v", err)
	}
	recent, err := h.MostRecent(1)
	if err != nil {
		t.Fatalf("most recent: %v", err)
	}
	if _, err := recent.Append(date, 2100); err != nil {
		t.Fatalf("append to copy: %v", err)
	}
	day, err := h.Day(date)
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if len(day.Sets) != 1 {
		t.Fatalf("expected original history untouched, got %d sets", len(day.Sets))
	}
}

func TestClear(t *testing.T) {
	h := New(2500)
	if _, err := h.Append(mustDate(t, "2024-01-01"), 2000); err != nil {
		t.Fatalf("append: %v", err)
	}
	cleared := h.Clear()
	if cleared.Len() != 0 {
		t.Fatalf("expected empty history, got %d days", cleared.Len())
	}
	if cleared.MaxRating() != 2500 {
		t.Fatalf("expected rating bound preserved, got %d", cleared.MaxRating())
	}
	if h.Len() != 1 {
		t.Fatalf("expected source history untouched, got %d days", h.Len())
	}
}
