// Package model defines shared data structures.
package model

import "time"

// Day holds the ratings recorded for a single calendar day, in recording order.
type Day struct {
	Date time.Time
	Sets []int
}

// DaySummary aggregates one day's recorded sets for reporting.
type DaySummary struct {
	Date       time.Time
	SetsPlayed int
	Start      int
	End        int
	Change     int
	High       int
	Low        int
}

// QueryConfig defines filters for dashboard output. Days limits the window
// to the most recent recorded days (0 means all); Window sizes the trend
// moving average.
type QueryConfig struct {
	Days   int
	Window int
}
