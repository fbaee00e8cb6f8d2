package store

import (
	"path/filepath"
	"time"

	"minimart/model"
	"minimart/rfm"

	log "github.com/sirupsen/logrus"
)

// Raw source files and their column contracts. The loader depends on these
// exact names.
const (
	CustomersFile = "clientes.csv"
	ProductsFile  = "productos.csv"
	SalesFile     = "ventas.csv"
	LinesFile     = "detalle_ventas.csv"
)

var (
	customerColumns = []string{"id_cliente", "nombre_cliente", "ciudad", "fecha_alta"}
	productColumns  = []string{"id_producto", "nombre_producto", "categoria", "precio_unitario"}
	saleColumns     = []string{"id_venta", "id_cliente", "fecha", "medio_pago"}
	lineColumns     = []string{"id_venta", "id_producto", "cantidad", "importe"}
)

// Load reads the four raw sources from dir, coerces and deduplicates them,
// and builds the consolidated left-outer join plus the initial RFM table.
// Any missing or malformed source yields a *LoadError.
func Load(dir string) (*model.Dataset, error) {
	customers, err := loadCustomers(filepath.Join(dir, CustomersFile))
	if err != nil {
		return nil, err
	}
	products, err := loadProducts(filepath.Join(dir, ProductsFile))
	if err != nil {
		return nil, err
	}
	sales, err := loadSales(filepath.Join(dir, SalesFile))
	if err != nil {
		return nil, err
	}
	lines, err := loadLines(filepath.Join(dir, LinesFile))
	if err != nil {
		return nil, err
	}

	ds := &model.Dataset{
		Customers: customers,
		Products:  products,
		Sales:     sales,
		Lines:     lines,
		LoadedAt:  time.Now().UTC(),
	}
	ds.Consolidated = consolidate(ds)
	ds.InitialRFM = rfm.Compute(ds.Consolidated).Rows

	log.WithFields(log.Fields{
		"dir":          dir,
		"customers":    len(customers),
		"products":     len(products),
		"sales":        len(sales),
		"lines":        len(lines),
		"consolidated": len(ds.Consolidated),
	}).Info("Dataset loaded.")
	return ds, nil
}

func loadCustomers(path string) ([]model.Customer, error) {
	t, err := readTable(path, customerColumns)
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0, len(t.rows))
	seen := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		id := t.get(row, "id_cliente")
		if seen[id] {
			continue
		}
		seen[id] = true

		registeredAt, err := t.parseDate(row, "fecha_alta")
		if err != nil {
			return nil, err
		}
		customers = append(customers, model.Customer{
			ID:           id,
			Name:         t.get(row, "nombre_cliente"),
			City:         t.get(row, "ciudad"),
			RegisteredAt: registeredAt,
		})
	}
	return customers, nil
}

func loadProducts(path string) ([]model.Product, error) {
	t, err := readTable(path, productColumns)
	if err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(t.rows))
	seen := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		id := t.get(row, "id_producto")
		if seen[id] {
			continue
		}
		seen[id] = true

		products = append(products, model.Product{
			ID:        id,
			Name:      t.get(row, "nombre_producto"),
			Category:  t.get(row, "categoria"),
			UnitPrice: model.ParseFloat(t.get(row, "precio_unitario")),
		})
	}
	return products, nil
}

func loadSales(path string) ([]model.Sale, error) {
	t, err := readTable(path, saleColumns)
	if err != nil {
		return nil, err
	}

	// A denormalized nombre_cliente column on the sales export is ignored
	// here so the customer table stays the single source of truth.
	if t.has("nombre_cliente") {
		log.WithField("source", t.source).
			Debug("Dropping denormalized nombre_cliente column from sales.")
	}

	sales := make([]model.Sale, 0, len(t.rows))
	seen := make(map[string]bool, len(t.rows))
	for _, row := range t.rows {
		id := t.get(row, "id_venta")
		if seen[id] {
			continue
		}
		seen[id] = true

		date, err := t.parseDate(row, "fecha")
		if err != nil {
			return nil, err
		}
		sales = append(sales, model.Sale{
			ID:            id,
			CustomerID:    t.get(row, "id_cliente"),
			Date:          date,
			PaymentMethod: t.get(row, "medio_pago"),
		})
	}
	return sales, nil
}

func loadLines(path string) ([]model.SaleLine, error) {
	t, err := readTable(path, lineColumns)
	if err != nil {
		return nil, err
	}

	lines := make([]model.SaleLine, 0, len(t.rows))
	for _, row := range t.rows {
		lines = append(lines, model.SaleLine{
			SaleID:    t.get(row, "id_venta"),
			ProductID: t.get(row, "id_producto"),
			Quantity:  model.ParseFloat(t.get(row, "cantidad")),
			Amount:    model.ParseFloat(t.get(row, "importe")),
		})
	}
	return lines, nil
}

// consolidate joins lines against sales, customers and products. Left-outer
// throughout: the result has exactly one row per sale line, missing matches
// leave the joined fields null.
func consolidate(ds *model.Dataset) []model.ConsolidatedRecord {
	customerByID := make(map[string]*model.Customer, len(ds.Customers))
	for i := range ds.Customers {
		customerByID[ds.Customers[i].ID] = &ds.Customers[i]
	}
	productByID := make(map[string]*model.Product, len(ds.Products))
	for i := range ds.Products {
		productByID[ds.Products[i].ID] = &ds.Products[i]
	}
	saleByID := make(map[string]*model.Sale, len(ds.Sales))
	for i := range ds.Sales {
		saleByID[ds.Sales[i].ID] = &ds.Sales[i]
	}

	records := make([]model.ConsolidatedRecord, 0, len(ds.Lines))
	for _, line := range ds.Lines {
		rec := model.ConsolidatedRecord{
			SaleID:    line.SaleID,
			ProductID: model.NewString(line.ProductID),
			Quantity:  line.Quantity,
			Amount:    line.Amount,
		}
		if sale, ok := saleByID[line.SaleID]; ok {
			rec.CustomerID = sale.CustomerID
			rec.Date = sale.Date
			rec.PaymentMethod = sale.PaymentMethod
			if customer, ok := customerByID[sale.CustomerID]; ok {
				rec.CustomerName = model.NewString(customer.Name)
				rec.City = model.NewString(customer.City)
			}
		}
		if product, ok := productByID[line.ProductID]; ok {
			rec.ProductName = model.NewString(product.Name)
			rec.Category = model.NewString(product.Category)
			rec.UnitPrice = product.UnitPrice
		}
		records = append(records, rec)
	}
	return records
}
