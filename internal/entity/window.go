package entity

import "time"

type RangeID string

const (
	RangeToday     RangeID = "today"
	RangeYesterday RangeID = "yesterday"
	RangeThisWeek  RangeID = "thisWeek"
	RangeLastWeek  RangeID = "lastWeek"
	RangeThisMonth RangeID = "thisMonth"
	RangeLastMonth RangeID = "lastMonth"
	RangeLast5Days RangeID = "last5days"
	RangeCustom    RangeID = "custom"
)

// CustomRange carries caller supplied bounds, either YYYY-MM-DD or RFC3339.
type CustomRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RangeSelector is what the UI picks: a named range or a custom pair.
type RangeSelector struct {
	ID     RangeID      `json:"range"`
	Custom *CustomRange `json:"custom,omitempty"`
}

// DateWindow is an inclusive window, Start at 00:00:00.000 and End at
// 23:59:59.999 local time.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the window, both ends inclusive.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days returns the number of calendar days covered by the window.
func (w DateWindow) Days() int {
	loc := w.Start.Location()
	s := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, time.UTC)
	e := w.End.In(loc)
	end := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(s).Hours()/24) + 1
}
