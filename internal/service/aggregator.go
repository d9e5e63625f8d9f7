package service

import (
	"time"

	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/shopspring/decimal"
)

type tally struct {
	Count int64
	Sales decimal.Decimal
}

func (t *tally) add(amount decimal.Decimal) {
	t.Count++
	t.Sales = t.Sales.Add(amount)
}

// Aggregates holds exact, unrounded per-bucket sums for one window.
type Aggregates struct {
	Window    entity.DateWindow
	Hours     [len(HourBuckets)]tally
	Mealtimes [len(Mealtimes)]tally
	// Days has one entry per calendar day of Window, in order.
	Days []dayTally
}

type dayTally struct {
	Date string
	tally
}

// Aggregate buckets the orders that fall inside w. Hours and minutes are read
// in loc. It is pure and never fails; an empty input yields zero buckets.
func Aggregate(orders []entity.Order, w entity.DateWindow, loc *time.Location) Aggregates {
	if loc == nil {
		loc = w.Start.Location()
	}
	agg := Aggregates{Window: w}
	for i := range agg.Hours {
		agg.Hours[i].Sales = decimal.Zero
	}
	for i := range agg.Mealtimes {
		agg.Mealtimes[i].Sales = decimal.Zero
	}

	dayIndex := make(map[string]int)
	if !w.Start.IsZero() && !w.End.Before(w.Start) {
		for d := startOfDay(w.Start.In(loc)); !d.After(w.End); d = d.AddDate(0, 0, 1) {
			key := d.Format(time.DateOnly)
			dayIndex[key] = len(agg.Days)
			agg.Days = append(agg.Days, dayTally{Date: key, tally: tally{Sales: decimal.Zero}})
		}
	}

	for _, o := range orders {
		if !w.Contains(o.CreatedAt) {
			continue
		}
		local := o.CreatedAt.In(loc)
		if i := hourBucketIndex(local.Hour()); i >= 0 {
			agg.Hours[i].add(o.TotalAmount)
		}
		if i := mealtimeIndex(local.Hour()*60 + local.Minute()); i >= 0 {
			agg.Mealtimes[i].add(o.TotalAmount)
		}
		if i, ok := dayIndex[local.Format(time.DateOnly)]; ok {
			agg.Days[i].add(o.TotalAmount)
		}
	}
	return agg
}

// HourOrders is the order count summed over the hour partition.
func (a Aggregates) HourOrders() int64 {
	var n int64
	for _, h := range a.Hours {
		n += h.Count
	}
	return n
}

// MealtimeOrders is the order count summed over the mealtime partition.
func (a Aggregates) MealtimeOrders() int64 {
	var n int64
	for _, m := range a.Mealtimes {
		n += m.Count
	}
	return n
}
