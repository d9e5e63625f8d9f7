package service

import (
	"github.com/dayanaadylkhanova/order-insights/internal/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize derives totals, shares and the average order value from exact
// aggregates. Money is rounded to whole units and percentages to one
// decimal here and nowhere earlier. Zero orders give zeros, never NaN.
func Summarize(agg Aggregates) entity.Snapshot {
	snap := entity.Snapshot{
		Window:        agg.Window,
		PerHourBucket: make([]entity.HourBucketStat, 0, len(HourBuckets)),
		PerMealtime:   make([]entity.MealtimeStat, 0, len(Mealtimes)),
		PerDay:        make([]entity.DayStat, 0, len(agg.Days)),
	}

	totalSales := decimal.Zero
	var totalOrders int64
	peak := -1
	for i, b := range HourBuckets {
		h := agg.Hours[i]
		totalSales = totalSales.Add(h.Sales)
		totalOrders += h.Count
		if h.Count > 0 && (peak < 0 || h.Count > agg.Hours[peak].Count) {
			peak = i
		}
		snap.PerHourBucket = append(snap.PerHourBucket, entity.HourBucketStat{
			Label:      b.Label,
			OrderCount: h.Count,
			SalesSum:   roundMoney(h.Sales),
		})
	}

	for i, m := range Mealtimes {
		c := agg.Mealtimes[i].Count
		snap.PerMealtime = append(snap.PerMealtime, entity.MealtimeStat{
			Key:            m.Key,
			Label:          m.Label,
			Window:         m.Window(),
			Count:          c,
			PercentOfTotal: percentOf(c, totalOrders),
		})
	}

	for _, d := range agg.Days {
		snap.PerDay = append(snap.PerDay, entity.DayStat{
			Date:       d.Date,
			OrderCount: d.Count,
			SalesSum:   roundMoney(d.Sales),
		})
	}

	snap.TotalOrders = totalOrders
	snap.TotalSales = roundMoney(totalSales)
	snap.AverageOrderValue = decimal.Zero
	if totalOrders > 0 {
		snap.AverageOrderValue = roundMoney(totalSales.Div(decimal.NewFromInt(totalOrders)))
	}
	if peak >= 0 {
		snap.PeakHourBucket = HourBuckets[peak].Label
	}
	return snap
}

// percentOf returns part/total*100 rounded to one decimal, 0 when total is 0.
func percentOf(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(total)).Round(1)
	return p.InexactFloat64()
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
