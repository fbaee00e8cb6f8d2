// Package export renders any of the six dashboard tables as a CSV or XLSX
// download, full content, never truncated.
package export

import (
	"strconv"
	"strings"
	"time"

	"minimart/model"

	"github.com/pkg/errors"
)

// Table is a fully materialized export: display name, header and rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Filename derives the download name from the table's display name.
func (t Table) Filename(format Format) string {
	name := strings.ToLower(strings.ReplaceAll(t.Name, " ", "_"))
	return name + "." + string(format)
}

// Format is the download encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a request parameter, defaulting to CSV.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatCSV, FormatXLSX:
		return Format(s), true
	case "":
		return FormatCSV, true
	}
	return "", false
}

// Build materializes the named table. filtered and scored are the currently
// filtered consolidated view and its segmented RFM result; the rest comes
// from the immutable dataset.
func Build(name string, ds *model.Dataset, filtered []model.ConsolidatedRecord, scored []model.ScoredRFM) (Table, error) {
	switch name {
	case "consolidated":
		return consolidatedTable(filtered), nil
	case "rfm":
		return rfmTable(scored), nil
	case "customers":
		return customersTable(ds.Customers), nil
	case "products":
		return productsTable(ds.Products), nil
	case "sales":
		return salesTable(ds.Sales), nil
	case "lines":
		return linesTable(ds.Lines), nil
	}
	return Table{}, errors.Errorf("unknown export table %q", name)
}

func consolidatedTable(records []model.ConsolidatedRecord) Table {
	t := Table{
		Name: "Datos Consolidados (Filtrados)",
		Header: []string{"id_venta", "fecha", "id_cliente", "nombre_cliente", "ciudad",
			"medio_pago", "id_producto", "nombre_producto", "categoria",
			"precio_unitario", "cantidad", "importe"},
	}
	for i := range records {
		r := &records[i]
		t.Rows = append(t.Rows, []string{
			r.SaleID, formatDate(r.Date), r.CustomerID, r.CustomerName.String(),
			r.City.String(), r.PaymentMethod, r.ProductID.String(),
			r.ProductName.String(), r.Category.String(),
			formatFloat(r.UnitPrice), formatFloat(r.Quantity), formatFloat(r.Amount),
		})
	}
	return t
}

func rfmTable(scored []model.ScoredRFM) Table {
	t := Table{
		Name: "RFM Segmentado",
		Header: []string{"id_cliente", "nombre_cliente", "ciudad", "recencia",
			"frecuencia", "monetario", "r_score", "f_score", "m_score",
			"rfm_score", "segmento"},
	}
	for _, s := range scored {
		t.Rows = append(t.Rows, []string{
			s.CustomerID, s.CustomerName.String(), s.City.String(),
			strconv.Itoa(s.Recency), strconv.Itoa(s.Frequency),
			formatRaw(s.Monetary), strconv.Itoa(s.RScore), strconv.Itoa(s.FScore),
			strconv.Itoa(s.MScore), formatRaw(s.Score), s.Segment,
		})
	}
	return t
}

func customersTable(customers []model.Customer) Table {
	t := Table{
		Name:   "Clientes",
		Header: []string{"id_cliente", "nombre_cliente", "ciudad", "fecha_alta"},
	}
	for _, c := range customers {
		t.Rows = append(t.Rows, []string{c.ID, c.Name, c.City, formatDate(c.RegisteredAt)})
	}
	return t
}

func productsTable(products []model.Product) Table {
	t := Table{
		Name:   "Productos",
		Header: []string{"id_producto", "nombre_producto", "categoria", "precio_unitario"},
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{p.ID, p.Name, p.Category, formatFloat(p.UnitPrice)})
	}
	return t
}

func salesTable(sales []model.Sale) Table {
	t := Table{
		Name:   "Ventas",
		Header: []string{"id_venta", "id_cliente", "fecha", "medio_pago"},
	}
	for _, s := range sales {
		t.Rows = append(t.Rows, []string{s.ID, s.CustomerID, formatDate(s.Date), s.PaymentMethod})
	}
	return t
}

func linesTable(lines []model.SaleLine) Table {
	t := Table{
		Name:   "Detalle Ventas",
		Header: []string{"id_venta", "id_producto", "cantidad", "importe"},
	}
	for _, l := range lines {
		t.Rows = append(t.Rows, []string{l.SaleID, l.ProductID, formatFloat(l.Quantity), formatFloat(l.Amount)})
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatFloat(f model.NullFloat) string {
	if !f.Valid {
		return ""
	}
	return formatRaw(f.Value)
}

func formatRaw(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
