package model

import "time"

// Customer is one row of clientes.csv after dedup by id.
type Customer struct {
	ID           string    `json:"id_cliente"`
	Name         string    `json:"nombre_cliente"`
	City         string    `json:"ciudad"`
	RegisteredAt time.Time `json:"fecha_alta"`
}

// Product is one row of productos.csv after dedup by id.
type Product struct {
	ID        string    `json:"id_producto"`
	Name      string    `json:"nombre_producto"`
	Category  string    `json:"categoria"`
	UnitPrice NullFloat `json:"precio_unitario"`
}

// Sale is one row of ventas.csv after dedup by id. The denormalized
// nombre_cliente column the source file may carry is dropped on load, the
// customer table is the single source of truth for it.
type Sale struct {
	ID            string    `json:"id_venta"`
	CustomerID    string    `json:"id_cliente"`
	Date          time.Time `json:"fecha"`
	PaymentMethod string    `json:"medio_pago"`
}

// SaleLine is one row of detalle_ventas.csv. Many lines per sale.
type SaleLine struct {
	SaleID    string    `json:"id_venta"`
	ProductID string    `json:"id_producto"`
	Quantity  NullFloat `json:"cantidad"`
	Amount    NullFloat `json:"importe"`
}

// ConsolidatedRecord is one row per (sale, line) with customer and product
// attributes joined in. Joins are left-outer: a line whose sale has no
// matching customer or product still appears, with those fields null.
type ConsolidatedRecord struct {
	SaleID        string     `json:"id_venta"`
	CustomerID    string     `json:"id_cliente"`
	Date          time.Time  `json:"fecha"`
	PaymentMethod string     `json:"medio_pago"`
	CustomerName  NullString `json:"nombre_cliente"`
	City          NullString `json:"ciudad"`
	ProductID     NullString `json:"id_producto"`
	Quantity      NullFloat  `json:"cantidad"`
	Amount        NullFloat  `json:"importe"`
	ProductName   NullString `json:"nombre_producto"`
	Category      NullString `json:"categoria"`
	UnitPrice     NullFloat  `json:"precio_unitario"`
}

// Dataset holds everything the loader produces from one data directory.
// Immutable after load; downstream stages derive new views, never mutate.
type Dataset struct {
	Customers    []Customer
	Products     []Product
	Sales        []Sale
	Lines        []SaleLine
	Consolidated []ConsolidatedRecord

	// RFM over the full unfiltered dataset, as a convenience default.
	InitialRFM []RFMRow

	LoadedAt time.Time
}

// DateRange returns the min and max sale date across the consolidated view.
// ok is false when there are no rows.
func (d *Dataset) DateRange() (min, max time.Time, ok bool) {
	for _, r := range d.Consolidated {
		if !ok || r.Date.Before(min) {
			min = r.Date
		}
		if !ok || r.Date.After(max) {
			max = r.Date
		}
		ok = true
	}
	return min, max, ok
}
