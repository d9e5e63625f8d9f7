package service

import (
	"testing"
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id string, at time.Time, amount string) entity.Order {
	return entity.Order{ID: id, CreatedAt: at, TotalAmount: decimal.RequireFromString(amount)}
}

func singleDay() entity.DateWindow {
	return entity.DateWindow{Start: day(2025, 10, 15), End: dayEnd(2025, 10, 15)}
}

func TestAggregate_Scenario(t *testing.T) {
	orders := []entity.Order{
		order("a", time.Date(2025, 10, 15, 9, 15, 0, 0, ist), "200"),
		order("b", time.Date(2025, 10, 15, 19, 30, 0, 0, ist), "300"),
	}
	agg := Aggregate(orders, singleDay(), ist)

	// 09:15 → 8am bucket, breakfast; 19:30 → 4pm bucket, dinner.
	assert.Equal(t, int64(1), agg.Hours[hourBucketIndex(9)].Count)
	assert.True(t, agg.Hours[hourBucketIndex(9)].Sales.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int64(1), agg.Hours[hourBucketIndex(19)].Count)
	assert.True(t, agg.Hours[hourBucketIndex(19)].Sales.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, int64(0), agg.Hours[hourBucketIndex(20)].Count)

	assert.Equal(t, int64(1), agg.Mealtimes[mealtimeIndex(9*60+15)].Count)
	assert.Equal(t, "breakfast", Mealtimes[mealtimeIndex(9*60+15)].Key)
	assert.Equal(t, "dinner", Mealtimes[mealtimeIndex(19*60+30)].Key)
	assert.Equal(t, int64(1), agg.Mealtimes[mealtimeIndex(19*60+30)].Count)

	snap := Summarize(agg)
	assert.Equal(t, int64(2), snap.TotalOrders)
	assert.True(t, snap.TotalSales.Equal(decimal.NewFromInt(500)))
	assert.True(t, snap.AverageOrderValue.Equal(decimal.NewFromInt(250)))
}

func TestAggregate_BoundaryInclusivity(t *testing.T) {
	w := singleDay()
	orders := []entity.Order{
		order("at-start", w.Start, "10"),
		order("at-end", w.End, "10"),
		order("before-start", w.Start.Add(-time.Millisecond), "10"),
		order("after-end", w.End.Add(time.Millisecond), "10"),
	}
	agg := Aggregate(orders, w, ist)
	assert.Equal(t, int64(2), agg.HourOrders())
	assert.Equal(t, int64(1), agg.Hours[0].Count, "00:00:00.000 belongs to 12am")
	assert.Equal(t, int64(1), agg.Hours[len(HourBuckets)-1].Count, "23:59:59.999 belongs to 8pm")
}

func TestAggregate_BucketStartsAtBoundary(t *testing.T) {
	orders := []entity.Order{
		order("4am", time.Date(2025, 10, 15, 4, 0, 0, 0, ist), "1"),
		order("just-before-4am", time.Date(2025, 10, 15, 3, 59, 59, 0, ist), "1"),
		order("7am", time.Date(2025, 10, 15, 7, 0, 0, 0, ist), "1"),
		order("23h", time.Date(2025, 10, 15, 23, 0, 0, 0, ist), "1"),
	}
	agg := Aggregate(orders, singleDay(), ist)
	assert.Equal(t, int64(1), agg.Hours[0].Count)
	assert.Equal(t, int64(2), agg.Hours[1].Count)
	assert.Equal(t, int64(1), agg.Mealtimes[0].Count, "07:00 opens breakfast")
	assert.Equal(t, int64(3), agg.Mealtimes[4].Count, "03:59, 04:00 and 23:00 are late night")
}

func TestAggregate_PartitionsAgree(t *testing.T) {
	w := entity.DateWindow{Start: day(2025, 10, 13), End: dayEnd(2025, 10, 19)}
	var orders []entity.Order
	for d := 0; d < 9; d++ {
		for minute := 0; minute < minutesPerDay; minute += 37 {
			at := day(2025, 10, 12).AddDate(0, 0, d).Add(time.Duration(minute) * time.Minute)
			orders = append(orders, order("x", at, "12.345"))
		}
	}
	agg := Aggregate(orders, w, ist)
	require.Equal(t, agg.HourOrders(), agg.MealtimeOrders())

	var daily int64
	for _, d := range agg.Days {
		daily += d.Count
	}
	assert.Equal(t, agg.HourOrders(), daily)
	assert.Len(t, agg.Days, 7)
	assert.Equal(t, "2025-10-13", agg.Days[0].Date)

	snap := Summarize(agg)
	var meals int64
	for _, m := range snap.PerMealtime {
		meals += m.Count
	}
	assert.Equal(t, snap.TotalOrders, meals)
}

func TestAggregate_UsesLocation(t *testing.T) {
	// 02:00 UTC is 07:30 IST.
	at := time.Date(2025, 10, 15, 2, 0, 0, 0, time.UTC)
	agg := Aggregate([]entity.Order{order("utc", at, "5")}, singleDay(), ist)
	assert.Equal(t, int64(1), agg.Hours[hourBucketIndex(7)].Count)
	assert.Equal(t, int64(1), agg.Mealtimes[0].Count)
}

func TestAggregate_KeepsExactSums(t *testing.T) {
	orders := []entity.Order{
		order("a", time.Date(2025, 10, 15, 13, 0, 0, 0, ist), "0.4"),
		order("b", time.Date(2025, 10, 15, 13, 5, 0, 0, ist), "0.4"),
	}
	agg := Aggregate(orders, singleDay(), ist)
	assert.Equal(t, "0.8", agg.Hours[hourBucketIndex(13)].Sales.String())
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil, singleDay(), ist)
	assert.Equal(t, int64(0), agg.HourOrders())
	assert.Equal(t, int64(0), agg.MealtimeOrders())
	require.Len(t, agg.Days, 1)
	assert.True(t, agg.Days[0].Sales.IsZero())
}
