package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type HourBucketStat struct {
	Label      string          `json:"label"`
	OrderCount int64           `json:"orderCount"`
	SalesSum   decimal.Decimal `json:"salesSum"`
}

type MealtimeStat struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Window         string  `json:"window"`
	Count          int64   `json:"count"`
	PercentOfTotal float64 `json:"percentOfTotal"`
}

type DayStat struct {
	Date       string          `json:"date"`
	OrderCount int64           `json:"orderCount"`
	SalesSum   decimal.Decimal `json:"salesSum"`
}

// ChartPoint is one x-axis point of the hour-of-day chart.
type ChartPoint struct {
	Label      string          `json:"label"`
	OrderCount int64           `json:"orderCount"`
	SalesSum   decimal.Decimal `json:"salesSum"`
	Sentinel   bool            `json:"sentinel,omitempty"`
}

// Snapshot is the immutable result of one report run. Callers must not mutate
// it; use Clone before handing it to code that might.
type Snapshot struct {
	Range             RangeID          `json:"range"`
	Window            DateWindow       `json:"window"`
	PerHourBucket     []HourBucketStat `json:"perHourBucket"`
	PerMealtime       []MealtimeStat   `json:"perMealtime"`
	PerDay            []DayStat        `json:"perDay"`
	TotalSales        decimal.Decimal  `json:"totalSales"`
	TotalOrders       int64            `json:"totalOrders"`
	AverageOrderValue decimal.Decimal  `json:"averageOrderValue"`
	PeakHourBucket    string           `json:"peakHourBucket"`
	Partial           bool             `json:"partial"`
	FetchFailed       bool             `json:"fetchFailed"`
	GeneratedAt       time.Time        `json:"generatedAt"`
}

// Clone returns a deep copy so the original backing arrays are never shared.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.PerHourBucket = append([]HourBucketStat(nil), s.PerHourBucket...)
	out.PerMealtime = append([]MealtimeStat(nil), s.PerMealtime...)
	out.PerDay = append([]DayStat(nil), s.PerDay...)
	return out
}

// ChartPoints returns the hour buckets followed by the closing 12am sentinel,
// which carries no data.
func (s Snapshot) ChartPoints() []ChartPoint {
	pts := make([]ChartPoint, 0, len(s.PerHourBucket)+1)
	for _, b := range s.PerHourBucket {
		pts = append(pts, ChartPoint{Label: b.Label, OrderCount: b.OrderCount, SalesSum: b.SalesSum})
	}
	if len(s.PerHourBucket) > 0 {
		pts = append(pts, ChartPoint{Label: s.PerHourBucket[0].Label, SalesSum: decimal.Zero, Sentinel: true})
	}
	return pts
}

// SessionState is what the renderer polls: the latest applied snapshot and
// whether a newer request is still in flight.
type SessionState struct {
	ID         string        `json:"id"`
	Selector   RangeSelector `json:"selector"`
	Generation uint64        `json:"generation"`
	Loading    bool          `json:"loading"`
	Stale      bool          `json:"stale"`
	Snapshot   *Snapshot     `json:"snapshot,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type SessionCreated struct {
	ID string `json:"id"`
}
