package model

import "time"

// All is the sentinel for an unconstrained city or category dimension.
const All = ""

// Filter is the predicate set applied to the consolidated view. The date
// range is inclusive on both ends. Empty City/Category leave that dimension
// unconstrained.
type Filter struct {
	From     time.Time
	To       time.Time
	City     string
	Category string
}

// Match reports whether the record satisfies every active predicate.
func (f Filter) Match(r *ConsolidatedRecord) bool {
	if !f.From.IsZero() && r.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(endOfDay(f.To)) {
		return false
	}
	if f.City != All && (!r.City.Valid || r.City.Value != f.City) {
		return false
	}
	if f.Category != All && (!r.Category.Valid || r.Category.Value != f.Category) {
		return false
	}
	return true
}

// The range is inclusive of the To day even when sale dates carry a time
// component.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// Granularity selects the time bucket for the revenue series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity maps a request parameter to a Granularity, defaulting
// to week as the dashboard does.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), true
	case "":
		return GranularityWeek, true
	}
	return "", false
}
