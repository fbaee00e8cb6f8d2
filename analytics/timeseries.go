package analytics

import (
	"sort"
	"time"

	"minimart/model"

	"github.com/jinzhu/now"
)

// PeriodRevenue is one bucket of the revenue time series.
type PeriodRevenue struct {
	Period  time.Time `json:"period"`
	Revenue float64   `json:"revenue"`
}

// RevenueByPeriod buckets revenue at the given granularity, ascending by
// period start.
func RevenueByPeriod(records []model.ConsolidatedRecord, g model.Granularity) []PeriodRevenue {
	buckets := make(map[time.Time]float64)
	for i := range records {
		r := &records[i]
		buckets[bucketStart(r.Date, g)] += r.Amount.Or(0)
	}

	out := make([]PeriodRevenue, 0, len(buckets))
	for period, revenue := range buckets {
		out = append(out, PeriodRevenue{Period: period, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Before(out[j].Period) })
	return out
}

func bucketStart(t time.Time, g model.Granularity) time.Time {
	n := now.New(t)
	switch g {
	case model.GranularityDay:
		return n.BeginningOfDay()
	case model.GranularityMonth:
		return n.BeginningOfMonth()
	default:
		return n.BeginningOfWeek()
	}
}
