package service

import (
	"strings"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
)

// DateResolver turns a range selection into concrete day bounds in loc.
// Weeks start on Monday. today, thisWeek and thisMonth end today.
type DateResolver struct {
	clock   Clock
	loc     *time.Location
	maxDays int
}

// NewDateResolver builds a resolver. maxDays caps custom windows, 0 disables
// the cap.
func NewDateResolver(clock Clock, loc *time.Location, maxDays int) *DateResolver {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &DateResolver{clock: clock, loc: loc, maxDays: maxDays}
}

func (r *DateResolver) Location() *time.Location { return r.loc }

func (r *DateResolver) Resolve(sel entity.RangeSelector) (entity.DateWindow, error) {
	now := r.clock.Now().In(r.loc)
	today := startOfDay(now)

	switch sel.ID {
	case entity.RangeToday:
		return window(today, today), nil
	case entity.RangeYesterday:
		y := today.AddDate(0, 0, -1)
		return window(y, y), nil
	case entity.RangeThisWeek:
		return window(mondayOf(today), today), nil
	case entity.RangeLastWeek:
		monday := mondayOf(today).AddDate(0, 0, -7)
		return window(monday, monday.AddDate(0, 0, 6)), nil
	case entity.RangeThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, r.loc)
		return window(first, today), nil
	case entity.RangeLastMonth:
		first := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, r.loc)
		last := time.Date(today.Year(), today.Month(), 0, 0, 0, 0, 0, r.loc)
		return window(first, last), nil
	case entity.RangeLast5Days:
		return window(today.AddDate(0, 0, -4), today), nil
	case entity.RangeCustom:
		return r.resolveCustom(sel.Custom)
	case "":
		return entity.DateWindow{}, invalidRange("range is required")
	default:
		return entity.DateWindow{}, invalidRange("unknown range %q", sel.ID)
	}
}

func (r *DateResolver) resolveCustom(c *entity.CustomRange) (entity.DateWindow, error) {
	if c == nil || strings.TrimSpace(c.Start) == "" || strings.TrimSpace(c.End) == "" {
		return entity.DateWindow{}, invalidRange("custom range needs start and end")
	}
	start, err := r.parseDay(c.Start)
	if err != nil {
		return entity.DateWindow{}, invalidRange("bad start %q", c.Start)
	}
	end, err := r.parseDay(c.End)
	if err != nil {
		return entity.DateWindow{}, invalidRange("bad end %q", c.End)
	}
	if start.After(end) {
		return entity.DateWindow{}, invalidRange("start %s is after end %s", c.Start, c.End)
	}
	w := window(start, end)
	if r.maxDays > 0 && w.Days() > r.maxDays {
		return entity.DateWindow{}, invalidRange("window of %d days exceeds %d", w.Days(), r.maxDays)
	}
	return w, nil
}

func (r *DateResolver) parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, r.loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return startOfDay(t.In(r.loc)), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func window(first, last time.Time) entity.DateWindow {
	return entity.DateWindow{Start: startOfDay(first), End: endOfDay(last)}
}
