package model

// Metrics are the headline KPIs over a filtered view.
type Metrics struct {
	TotalRevenue    float64 `json:"total_revenue"`
	Transactions    int     `json:"transactions"`
	ActiveCustomers int     `json:"active_customers"`
	// AverageTicket is revenue per transaction, zero when there are none.
	AverageTicket float64 `json:"average_ticket"`
}
