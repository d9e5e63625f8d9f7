package service

import "fmt"

// HourBucket is a half-open [StartHour, EndHour) slot of local wall-clock time.
type HourBucket struct {
	Label     string
	StartHour int
	EndHour   int
}

// HourBuckets partitions the 24 hours of a day. Order is chart order.
var HourBuckets = [...]HourBucket{
	{Label: "12am", StartHour: 0, EndHour: 4},
	{Label: "4am", StartHour: 4, EndHour: 8},
	{Label: "8am", StartHour: 8, EndHour: 12},
	{Label: "12pm", StartHour: 12, EndHour: 16},
	{Label: "4pm", StartHour: 16, EndHour: 20},
	{Label: "8pm", StartHour: 20, EndHour: 24},
}

// Mealtime is a half-open [FromMinute, ToMinute) minute-of-day window. When
// FromMinute > ToMinute the window wraps midnight.
type Mealtime struct {
	Key        string
	Label      string
	FromMinute int
	ToMinute   int
}

const minutesPerDay = 24 * 60

// Mealtimes partitions the 1440 minutes of a day, checked in this order.
var Mealtimes = [...]Mealtime{
	{Key: "breakfast", Label: "Breakfast", FromMinute: 7 * 60, ToMinute: 11 * 60},
	{Key: "lunch", Label: "Lunch", FromMinute: 11 * 60, ToMinute: 16 * 60},
	{Key: "evening_snacks", Label: "Evening Snacks", FromMinute: 16 * 60, ToMinute: 19 * 60},
	{Key: "dinner", Label: "Dinner", FromMinute: 19 * 60, ToMinute: 23 * 60},
	{Key: "late_night", Label: "Late Night", FromMinute: 23 * 60, ToMinute: 7 * 60},
}

func (m Mealtime) Contains(minute int) bool {
	if m.FromMinute <= m.ToMinute {
		return minute >= m.FromMinute && minute < m.ToMinute
	}
	return minute >= m.FromMinute || minute < m.ToMinute
}

// Window renders the bounds as "HH:MM-HH:MM".
func (m Mealtime) Window() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", m.FromMinute/60, m.FromMinute%60, m.ToMinute/60, m.ToMinute%60)
}

// hourBucketIndex returns the bucket for an hour in [0,24), or -1.
func hourBucketIndex(hour int) int {
	for i, b := range HourBuckets {
		if hour >= b.StartHour && hour < b.EndHour {
			return i
		}
	}
	return -1
}

// mealtimeIndex returns the first mealtime claiming minute, or -1.
func mealtimeIndex(minute int) int {
	for i, m := range Mealtimes {
		if m.Contains(minute) {
			return i
		}
	}
	return -1
}
