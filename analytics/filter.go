// Package analytics derives the dashboard views from the consolidated record
// set. Every function takes the records it is given and returns a new value;
// the input is never mutated, and an empty view is a valid result everywhere.
package analytics

import (
	"sort"

	"minimart/model"
)

// Apply returns the subset of records satisfying all active predicates of
// the filter.
func Apply(records []model.ConsolidatedRecord, f model.Filter) []model.ConsolidatedRecord {
	out := make([]model.ConsolidatedRecord, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Cities lists the distinct city values present in the records, sorted.
// Used to populate the dashboard's city selector.
func Cities(records []model.ConsolidatedRecord) []string {
	return distinct(records, func(r *model.ConsolidatedRecord) model.NullString { return r.City })
}

// Categories lists the distinct category values present in the records,
// sorted.
func Categories(records []model.ConsolidatedRecord) []string {
	return distinct(records, func(r *model.ConsolidatedRecord) model.NullString { return r.Category })
}

func distinct(records []model.ConsolidatedRecord, field func(*model.ConsolidatedRecord) model.NullString) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for i := range records {
		v := field(&records[i])
		if !v.Valid || seen[v.Value] {
			continue
		}
		seen[v.Value] = true
		out = append(out, v.Value)
	}
	sort.Strings(out)
	return out
}
