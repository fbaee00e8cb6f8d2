package analytics

import "minimart/model"

// ComputeMetrics returns the headline KPIs for a filtered view. With no
// transactions the average ticket is defined as zero.
func ComputeMetrics(records []model.ConsolidatedRecord) model.Metrics {
	var m model.Metrics

	sales := make(map[string]bool)
	customers := make(map[string]bool)
	for i := range records {
		r := &records[i]
		m.TotalRevenue += r.Amount.Or(0)
		if r.SaleID != "" {
			sales[r.SaleID] = true
		}
		if r.CustomerID != "" {
			customers[r.CustomerID] = true
		}
	}

	m.Transactions = len(sales)
	m.ActiveCustomers = len(customers)
	if m.Transactions > 0 {
		m.AverageTicket = m.TotalRevenue / float64(m.Transactions)
	}
	return m
}
