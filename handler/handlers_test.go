package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	C "minimart/config"
	"minimart/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var router *gin.Engine

var fixtures = map[string]string{
	store.CustomersFile: `id_cliente,nombre_cliente,ciudad,fecha_alta
C1,Ana Pérez,Córdoba,2023-01-10
C2,Juan Gómez,Rosario,2023-02-20
`,
	store.ProductsFile: `id_producto,nombre_producto,categoria,precio_unitario
P1,Yerba,Almacén,1500
P2,Gaseosa,Bebidas,900
`,
	store.SalesFile: `id_venta,id_cliente,fecha,medio_pago
V1,C1,2024-05-01,Efectivo
V2,C2,2024-05-03,Tarjeta
V3,C1,2024-05-10,Efectivo
`,
	store.LinesFile: `id_venta,id_producto,cantidad,importe
V1,P1,2,3000
V1,P2,1,900
V2,P1,1,1500
V3,P2,2,1800
`,
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "minimart-handler-test")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	for name, content := range fixtures {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			panic(err)
		}
	}

	config, err := C.FromEnv()
	if err != nil {
		panic(err)
	}
	config.DataDir = dir
	if err := C.Init(config); err != nil {
		panic(err)
	}

	router = gin.New()
	InitRoutes(router)

	os.Exit(m.Run())
}

func doGET(t *testing.T, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	assert.NoError(t, err)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Code == http.StatusOK && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestHealthHandler(t *testing.T) {
	w, _ := doGET(t, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestGetFilterOptionsHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/filters")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.ElementsMatch(t, []interface{}{"Córdoba", "Rosario"}, body["cities"])
	assert.ElementsMatch(t, []interface{}{"Almacén", "Bebidas"}, body["categories"])
	assert.Equal(t, "2024-05-01", body["date_min"])
	assert.Equal(t, "2024-05-10", body["date_max"])
}

func TestGetKPIsHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/kpis")
	assert.Equal(t, http.StatusOK, w.Code)

	metrics := body["metrics"].(map[string]interface{})
	assert.InDelta(t, 7200.0, metrics["total_revenue"], 1e-9)
	assert.EqualValues(t, 3, metrics["transactions"])
	assert.EqualValues(t, 2, metrics["active_customers"])
	assert.EqualValues(t, 4, body["rows"])
	assert.NotContains(t, body, "message")
}

func TestGetKPIsHandlerFiltered(t *testing.T) {
	w, body := doGET(t, "/dashboard/kpis?city=Rosario")
	assert.Equal(t, http.StatusOK, w.Code)

	metrics := body["metrics"].(map[string]interface{})
	assert.InDelta(t, 1500.0, metrics["total_revenue"], 1e-9)
	assert.EqualValues(t, 1, metrics["transactions"])
}

func TestGetKPIsHandlerEmptyView(t *testing.T) {
	w, body := doGET(t, "/dashboard/kpis?from=2030-01-01")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, emptyViewMessage, body["message"])
	assert.EqualValues(t, 0, body["rows"])
}

func TestBadDateParam(t *testing.T) {
	w, _ := doGET(t, "/dashboard/kpis?from=01-05-2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTimeseriesHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/timeseries?granularity=day")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "day", body["granularity"])
	assert.Len(t, body["series"], 3)
}

func TestGetTimeseriesHandlerBadGranularity(t *testing.T) {
	w, _ := doGET(t, "/dashboard/timeseries?granularity=hour")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTopProductsHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/products/top?n=1&metric=revenue")
	assert.Equal(t, http.StatusOK, w.Code)

	products := body["products"].([]interface{})
	assert.Len(t, products, 1)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Yerba", first["nombre_producto"])
	assert.InDelta(t, 4500.0, first["revenue"], 1e-9)
}

func TestGetTopProductsHandlerBadN(t *testing.T) {
	w, _ := doGET(t, "/dashboard/products/top?n=-3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCityStatsHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/cities")
	assert.Equal(t, http.StatusOK, w.Code)

	cities := body["cities"].([]interface{})
	assert.Len(t, cities, 2)
	first := cities[0].(map[string]interface{})
	assert.Equal(t, "Córdoba", first["ciudad"], "ordered by revenue")
}

func TestGetPaymentStatsHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/payments")
	assert.Equal(t, http.StatusOK, w.Code)

	payments := body["payments"].([]interface{})
	assert.Len(t, payments, 2)
	first := payments[0].(map[string]interface{})
	assert.Equal(t, "Efectivo", first["medio_pago"])
	assert.EqualValues(t, 2, first["count"])
}

func TestGetSeasonalityHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/seasonality")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["weekdays"], 7)
	assert.Len(t, body["months"], 1)
}

func TestGetRFMHandler(t *testing.T) {
	w, body := doGET(t, "/dashboard/rfm")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "2024-05-11", body["snapshot_date"], "max date plus one day")
	assert.Len(t, body["rows"], 2)
	assert.NotEmpty(t, body["segments"])
	assert.NotEmpty(t, body["top_customers"])

	corr := body["correlation"].(map[string]interface{})
	assert.Len(t, corr["labels"], 3)
}

func TestGetRFMHandlerEmptyView(t *testing.T) {
	w, body := doGET(t, "/dashboard/rfm?city=Neuquén")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["message"], "RFM")
	assert.Empty(t, body["rows"])
}

func TestExportHandlerCSV(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/export?table=customers&format=csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="clientes.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "id_cliente,nombre_cliente,ciudad,fecha_alta")
	assert.Contains(t, w.Body.String(), "C1,Ana Pérez,Córdoba,2023-01-10")
}

func TestExportHandlerXLSX(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/export?table=rfm&format=xlsx", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Greater(t, w.Body.Len(), 0)
}

func TestExportHandlerDefaultsToFilteredConsolidated(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/export?city=Rosario", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "V2")
	assert.NotContains(t, w.Body.String(), "V1,")
}

func TestExportHandlerUnknownTable(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/export?table=nope", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidateCacheHandler(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/cache/invalidate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invalidated")
}
