package analytics

import (
	"sort"
	"time"

	"minimart/model"
)

// ProductMetric selects the ordering for the top-products view.
type ProductMetric string

const (
	MetricRevenue  ProductMetric = "revenue"
	MetricQuantity ProductMetric = "quantity"
)

// ParseProductMetric maps a request parameter, defaulting to revenue.
func ParseProductMetric(s string) (ProductMetric, bool) {
	switch ProductMetric(s) {
	case MetricRevenue, MetricQuantity:
		return ProductMetric(s), true
	case "":
		return MetricRevenue, true
	}
	return "", false
}

// ProductStat aggregates one product across the view.
type ProductStat struct {
	Product  string  `json:"nombre_producto"`
	Revenue  float64 `json:"revenue"`
	Quantity float64 `json:"quantity"`
}

// TopProducts returns the n products ranked by the chosen metric, descending.
// Rows whose product did not resolve in the join are not attributable and are
// skipped.
func TopProducts(records []model.ConsolidatedRecord, n int, metric ProductMetric) []ProductStat {
	byName := make(map[string]*ProductStat)
	for i := range records {
		r := &records[i]
		if !r.ProductName.Valid {
			continue
		}
		st, ok := byName[r.ProductName.Value]
		if !ok {
			st = &ProductStat{Product: r.ProductName.Value}
			byName[r.ProductName.Value] = st
		}
		st.Revenue += r.Amount.Or(0)
		st.Quantity += r.Quantity.Or(0)
	}

	out := make([]ProductStat, 0, len(byName))
	for _, st := range byName {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if metric == MetricQuantity {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity > out[j].Quantity
			}
		} else if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Product < out[j].Product
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// CityStat aggregates one city across the view. Transactions is the line
// count and Units the quantity sum, matching the city table of the dashboard.
type CityStat struct {
	City          string  `json:"ciudad"`
	Revenue       float64 `json:"revenue"`
	Transactions  int     `json:"transactions"`
	Units         float64 `json:"units"`
	AverageTicket float64 `json:"average_ticket"`
}

// CityStats returns per-city aggregates ordered by revenue, descending.
func CityStats(records []model.ConsolidatedRecord) []CityStat {
	byCity := make(map[string]*CityStat)
	for i := range records {
		r := &records[i]
		if !r.City.Valid {
			continue
		}
		st, ok := byCity[r.City.Value]
		if !ok {
			st = &CityStat{City: r.City.Value}
			byCity[r.City.Value] = st
		}
		st.Revenue += r.Amount.Or(0)
		st.Transactions++
		st.Units += r.Quantity.Or(0)
	}

	out := make([]CityStat, 0, len(byCity))
	for _, st := range byCity {
		if st.Transactions > 0 {
			st.AverageTicket = st.Revenue / float64(st.Transactions)
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].City < out[j].City
	})
	return out
}

// CategoryStat aggregates one category across the view. Transactions counts
// distinct sales, Share is the category's part of the view's revenue.
type CategoryStat struct {
	Category      string  `json:"categoria"`
	Revenue       float64 `json:"revenue"`
	Transactions  int     `json:"transactions"`
	AverageTicket float64 `json:"average_ticket"`
	Share         float64 `json:"share_pct"`
}

// CategoryStats returns per-category aggregates ordered by revenue,
// descending.
func CategoryStats(records []model.ConsolidatedRecord) []CategoryStat {
	type agg struct {
		stat  CategoryStat
		sales map[string]bool
	}
	byCategory := make(map[string]*agg)
	var total float64
	for i := range records {
		r := &records[i]
		if !r.Category.Valid {
			continue
		}
		a, ok := byCategory[r.Category.Value]
		if !ok {
			a = &agg{stat: CategoryStat{Category: r.Category.Value}, sales: make(map[string]bool)}
			byCategory[r.Category.Value] = a
		}
		a.stat.Revenue += r.Amount.Or(0)
		a.sales[r.SaleID] = true
		total += r.Amount.Or(0)
	}

	out := make([]CategoryStat, 0, len(byCategory))
	for _, a := range byCategory {
		a.stat.Transactions = len(a.sales)
		if a.stat.Transactions > 0 {
			a.stat.AverageTicket = a.stat.Revenue / float64(a.stat.Transactions)
		}
		if total > 0 {
			a.stat.Share = a.stat.Revenue / total * 100
		}
		out = append(out, a.stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// PaymentStat counts sales per payment method.
type PaymentStat struct {
	Method string `json:"medio_pago"`
	Count  int    `json:"count"`
}

// PaymentStats counts payment methods over the sales table restricted to the
// date range. City and category predicates do not apply here, the payment
// view is sale-level.
func PaymentStats(sales []model.Sale, from, to time.Time) []PaymentStat {
	f := model.Filter{From: from, To: to}
	byMethod := make(map[string]int)
	for _, s := range sales {
		rec := model.ConsolidatedRecord{Date: s.Date}
		if !f.Match(&rec) {
			continue
		}
		byMethod[s.PaymentMethod]++
	}

	out := make([]PaymentStat, 0, len(byMethod))
	for method, count := range byMethod {
		out = append(out, PaymentStat{Method: method, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Method < out[j].Method
	})
	return out
}
