package service

import (
	"math"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmptyIsAllZero(t *testing.T) {
	snap := Summarize(Aggregate(nil, singleDay(), ist))

	require.Len(t, snap.PerHourBucket, len(HourBuckets))
	require.Len(t, snap.PerMealtime, len(Mealtimes))
	assert.Equal(t, int64(0), snap.TotalOrders)
	assert.True(t, snap.TotalSales.IsZero())
	assert.True(t, snap.AverageOrderValue.IsZero())
	assert.Equal(t, "", snap.PeakHourBucket)
	for _, m := range snap.PerMealtime {
		assert.False(t, math.IsNaN(m.PercentOfTotal) || math.IsInf(m.PercentOfTotal, 0))
		assert.Equal(t, 0.0, m.PercentOfTotal)
	}
}

func TestSummarize_RoundsOnlyAtTheEnd(t *testing.T) {
	orders := []entity.Order{
		order("a", time.Date(2025, 10, 15, 12, 0, 0, 0, ist), "100.40"),
		order("b", time.Date(2025, 10, 15, 12, 30, 0, 0, ist), "100.40"),
		order("c", time.Date(2025, 10, 15, 21, 0, 0, 0, ist), "0.35"),
	}
	snap := Summarize(Aggregate(orders, singleDay(), ist))

	// 200.80 + 0.35 = 201.15 → 201, not 200 + 0.
	assert.Equal(t, "201", snap.TotalSales.String())
	assert.Equal(t, "201", snap.PerHourBucket[3].SalesSum.String())
	assert.Equal(t, "0", snap.PerHourBucket[5].SalesSum.String())
	// 201.15 / 3 = 67.05 → 67
	assert.Equal(t, "67", snap.AverageOrderValue.String())
	assert.Equal(t, "12pm", snap.PeakHourBucket)
}

func TestSummarize_Percentages(t *testing.T) {
	orders := []entity.Order{
		order("a", time.Date(2025, 10, 15, 8, 0, 0, 0, ist), "1"),
		order("b", time.Date(2025, 10, 15, 12, 0, 0, 0, ist), "1"),
		order("c", time.Date(2025, 10, 15, 13, 0, 0, 0, ist), "1"),
	}
	snap := Summarize(Aggregate(orders, singleDay(), ist))

	byKey := map[string]entity.MealtimeStat{}
	for _, m := range snap.PerMealtime {
		byKey[m.Key] = m
	}
	assert.Equal(t, 33.3, byKey["breakfast"].PercentOfTotal)
	assert.Equal(t, 66.7, byKey["lunch"].PercentOfTotal)
	assert.Equal(t, 0.0, byKey["dinner"].PercentOfTotal)
	assert.Equal(t, "11:00-16:00", byKey["lunch"].Window)
}

func TestSnapshot_ChartPointsAddSentinel(t *testing.T) {
	snap := Summarize(Aggregate([]entity.Order{
		order("a", time.Date(2025, 10, 15, 1, 0, 0, 0, ist), "40"),
	}, singleDay(), ist))

	pts := snap.ChartPoints()
	require.Len(t, pts, len(HourBuckets)+1)
	last := pts[len(pts)-1]
	assert.True(t, last.Sentinel)
	assert.Equal(t, "12am", last.Label)
	assert.Equal(t, int64(0), last.OrderCount)
	assert.True(t, last.SalesSum.Equal(decimal.Zero))
	assert.Equal(t, int64(1), pts[0].OrderCount)
}
