// Package rfm computes the Recency/Frequency/Monetary customer table and its
// quartile-based segmentation. Every function here is a pure function of the
// record set it is handed, so the result is always scoped to the view the
// caller filtered, never to the full dataset.
package rfm

import (
	"sort"
	"time"

	"minimart/model"

	log "github.com/sirupsen/logrus"
)

// Table is the per-customer RFM result for one view.
type Table struct {
	// Snapshot is one day past the latest sale date in the view. Recency is
	// measured against it, so it moves with the active filter.
	Snapshot time.Time
	Rows     []model.RFMRow
	// Warning is a non-fatal degradation notice, e.g. display-only columns
	// missing from the view.
	Warning string
}

type saleAgg struct {
	customerID string
	date       time.Time
	name       model.NullString
	city       model.NullString
	total      float64
}

// Compute aggregates a line-item level record set into one RFM row per
// customer. An empty input yields an empty table, not an error.
func Compute(records []model.ConsolidatedRecord) Table {
	if len(records) == 0 {
		return Table{}
	}

	// The input is one row per (sale, line). Dedup to one row per sale first,
	// otherwise multi-line sales are double-counted in Frequency. Per-sale
	// totals come from summing line amounts grouped by sale id.
	sales := make(map[string]*saleAgg, len(records))
	order := make([]string, 0, len(records))
	var maxDate time.Time
	for i := range records {
		r := &records[i]
		agg, ok := sales[r.SaleID]
		if !ok {
			agg = &saleAgg{
				customerID: r.CustomerID,
				date:       r.Date,
				name:       r.CustomerName,
				city:       r.City,
			}
			sales[r.SaleID] = agg
			order = append(order, r.SaleID)
		}
		agg.total += r.Amount.Or(0)
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	warning := ""
	if !hasColumn(records, func(r *model.ConsolidatedRecord) bool { return r.CustomerName.Valid }) ||
		!hasColumn(records, func(r *model.ConsolidatedRecord) bool { return r.City.Valid }) {
		warning = "customer name or city not available in the filtered view; segments are computed without them"
		log.Warn("RFM view missing nombre_cliente or ciudad, computing without display fields.")
	}

	snapshot := maxDate.AddDate(0, 0, 1)

	byCustomer := make(map[string]*model.RFMRow, len(sales))
	for _, saleID := range order {
		s := sales[saleID]
		row, ok := byCustomer[s.customerID]
		if !ok {
			row = &model.RFMRow{
				CustomerID:   s.customerID,
				CustomerName: s.name,
				City:         s.city,
			}
			byCustomer[s.customerID] = row
		}
		row.Frequency++
		row.Monetary += s.total
		if days := daysBetween(s.date, snapshot); row.Frequency == 1 || days < row.Recency {
			row.Recency = days
		}
	}

	rows := make([]model.RFMRow, 0, len(byCustomer))
	for _, row := range byCustomer {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CustomerID < rows[j].CustomerID })

	return Table{Snapshot: snapshot, Rows: rows, Warning: warning}
}

func hasColumn(records []model.ConsolidatedRecord, valid func(*model.ConsolidatedRecord) bool) bool {
	for i := range records {
		if valid(&records[i]) {
			return true
		}
	}
	return false
}

// daysBetween is the whole-day distance from the sale date to the snapshot.
// Always >= 1 for in-scope sales, since the snapshot is past the max date.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
