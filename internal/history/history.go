// Package history implements the in-memory Elo history model and its
// JSON persistence.
package history

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/verte-zerg/elotrack/internal/model"
)

// MaxSetsPerDay caps the number of sets recorded for a single day.
const MaxSetsPerDay = 25

// DefaultMaxRating bounds valid ratings when no explicit bound is configured.
const DefaultMaxRating = 10000

const dateLayout = "2006-01-02"

// Error kinds surfaced to the user. Callers match them with errors.Is.
var (
	ErrInvalidRating    = errors.New("invalid rating")
	ErrCapacityExceeded = errors.New("daily set capacity reached")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNoDataForDate    = errors.New("no data recorded for date")
	ErrEmptyDay         = errors.New("day has no recorded sets")
	ErrCorruptData      = errors.New("corrupt history data")
)

// History is the full Elo history, keyed by ISO date. It owns all day data;
// accessors return copies.
type History struct {
	maxRating int
	days      map[string][]int
}

// New returns an empty History with the given rating bound. A non-positive
// bound falls back to DefaultMaxRating.
func New(maxRating int) *History {
	if maxRating <= 0 {
		maxRating = DefaultMaxRating
	}
	return &History{maxRating: maxRating, days: map[string][]int{}}
}

// MaxRating returns the configured upper rating bound.
func (h *History) MaxRating() int {
	return h.maxRating
}

// Len returns the number of recorded days.
func (h *History) Len() int {
	return len(h.days)
}

// DateKey formats a date as its ISO history key.
func DateKey(date time.Time) string {
	return date.Format(dateLayout)
}

// ParseDate parses an ISO date argument.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dates must be in ISO format (YYYY-MM-DD), got %q", ErrInvalidArgument, value)
	}
	return parsed, nil
}

// ParseRating parses a rating argument and validates it against the bound.
func ParseRating(value string, maxRating int) (int, error) {
	rating, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: rating must be an integer, got %q", ErrInvalidRating, value)
	}
	if err := validateRating(rating, maxRating); err != nil {
		return 0, err
	}
	return rating, nil
}

func validateRating(rating, maxRating int) error {
	if maxRating <= 0 {
		maxRating = DefaultMaxRating
	}
	if rating <= 0 || rating > maxRating {
		return fmt.Errorf("%w: %d is outside 1-%d", ErrInvalidRating, rating, maxRating)
	}
	return nil
}

// Append records a rating for the given date, creating the day if absent.
// It returns the set number within that day. The history is not persisted.
func (h *History) Append(date time.Time, rating int) (int, error) {
	if err := validateRating(rating, h.maxRating); err != nil {
		return 0, err
	}
	key := DateKey(date)
	sets := h.days[key]
	if len(sets) >= MaxSetsPerDay {
		return 0, fmt.Errorf("%w: %s already holds %d sets", ErrCapacityExceeded, key, MaxSetsPerDay)
	}
	h.days[key] = append(sets, rating)
	return len(h.days[key]), nil
}

// Clear returns a new empty History with the same rating bound. Persisting
// the cleared state is a separate, explicit Save.
func (h *History) Clear() *History {
	return New(h.maxRating)
}

// Day returns the ratings recorded for the given date.
func (h *History) Day(date time.Time) (model.Day, error) {
	key := DateKey(date)
	sets, ok := h.days[key]
	if !ok {
		return model.Day{}, fmt.Errorf("%w: %s", ErrNoDataForDate, key)
	}
	return model.Day{Date: date, Sets: append([]int(nil), sets...)}, nil
}

// SortedDays returns all recorded days in ascending date order.
func (h *History) SortedDays() []model.Day {
	keys := make([]string, 0, len(h.days))
	for key := range h.days {
		keys = append(keys, key)
	}
	// ISO date strings sort chronologically.
	sort.Strings(keys)
	days := make([]model.Day, 0, len(keys))
	for _, key := range keys {
		date, err := time.ParseInLocation(dateLayout, key, time.Local)
		if err != nil {
			continue
		}
		days = append(days, model.Day{Date: date, Sets: append([]int(nil), h.days[key]...)})
	}
	return days
}

// MostRecent returns a History holding only the n latest recorded days.
func (h *History) MostRecent(n int) (*History, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: limit must be greater than 0, got %d", ErrInvalidArgument, n)
	}
	keys := make([]string, 0, len(h.days))
	for key := range h.days {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	if n < len(keys) {
		keys = keys[len(keys)-n:]
	}
	recent := New(h.maxRating)
	for _, key := range keys {
		recent.days[key] = append([]int(nil), h.days[key]...)
	}
	return recent, nil
}
