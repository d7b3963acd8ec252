// Package models defines data structures and domain types.
package models

import "time"

// ReportWindow represents the selected reporting time range.
type ReportWindow int

const (
	// Window24Hours reports usage from the last 24 hours.
	Window24Hours ReportWindow = iota
	// Window7Days reports usage from the last 7 days.
	Window7Days
	// Window30Days reports usage from the last 30 days.
	Window30Days
	// WindowAllTime reports all recorded usage.
	WindowAllTime
)

// String returns the display name for a reporting window.
func (w ReportWindow) String() string {
	switch w {
	case Window24Hours:
		return "24 Hours"
	case Window7Days:
		return "7 Days"
	case Window30Days:
		return "30 Days"
	case WindowAllTime:
		return "All Time"
	default:
		return "Unknown"
	}
}

// Days returns the number of days covered by the window (0 = unlimited).
func (w ReportWindow) Days() int {
	switch w {
	case Window24Hours:
		return 1
	case Window7Days:
		return 7
	case Window30Days:
		return 30
	case WindowAllTime:
		return 0
	default:
		return 30
	}
}

// Next cycles to the next reporting window.
func (w ReportWindow) Next() ReportWindow {
	return (w + 1) % 4
}

// Bounds converts the window into a concrete (start, end) pair relative
// to now. For WindowAllTime the start is the zero time. Validation of
// arbitrary caller-supplied ranges is not this type's concern.
func (w ReportWindow) Bounds(now time.Time) (start, end time.Time) {
	end = now
	if days := w.Days(); days > 0 {
		start = now.AddDate(0, 0, -days)
	}
	return start, end
}
