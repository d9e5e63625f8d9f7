package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMealtimes_ClaimEveryMinuteExactlyOnce(t *testing.T) {
	for minute := 0; minute < minutesPerDay; minute++ {
		claims := 0
		for _, m := range Mealtimes {
			if m.Contains(minute) {
				claims++
			}
		}
		require.Equal(t, 1, claims, "minute %d claimed %d times", minute, claims)
		require.GreaterOrEqual(t, mealtimeIndex(minute), 0)
	}
}

func TestMealtimes_Boundaries(t *testing.T) {
	tests := []struct {
		minute int
		key    string
	}{
		{0, "late_night"},
		{419, "late_night"},
		{420, "breakfast"},
		{659, "breakfast"},
		{660, "lunch"},
		{959, "lunch"},
		{960, "evening_snacks"},
		{1139, "evening_snacks"},
		{1140, "dinner"},
		{1379, "dinner"},
		{1380, "late_night"},
		{1439, "late_night"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.key, Mealtimes[mealtimeIndex(tc.minute)].Key, "minute %d", tc.minute)
	}
}

func TestHourBuckets_ContiguousAndExhaustive(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		claims := 0
		for _, b := range HourBuckets {
			if hour >= b.StartHour && hour < b.EndHour {
				claims++
			}
		}
		require.Equal(t, 1, claims, "hour %d", hour)
	}
	for i := 1; i < len(HourBuckets); i++ {
		assert.Equal(t, HourBuckets[i-1].EndHour, HourBuckets[i].StartHour)
	}
	assert.Equal(t, "8am", HourBuckets[hourBucketIndex(8)].Label)
	assert.Equal(t, "4am", HourBuckets[hourBucketIndex(7)].Label)
	assert.Equal(t, -1, hourBucketIndex(24))
}

func TestMealtime_Window(t *testing.T) {
	assert.Equal(t, "07:00-11:00", Mealtimes[0].Window())
	assert.Equal(t, "23:00-07:00", Mealtimes[4].Window())
}
