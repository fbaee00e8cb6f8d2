package handler

import (
	"net/http"
	"strconv"
	"time"

	"minimart/analytics"
	C "minimart/config"
	mid "minimart/middleware"
	"minimart/model"
	"minimart/rfm"
	U "minimart/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// emptyViewMessage is surfaced whenever the active filters produce no rows.
const emptyViewMessage = "No hay datos para los filtros aplicados."

// dataset resolves the memoized dataset. A LoadError is fatal to the pass:
// it aborts with 500 and the handler must return.
func dataset(c *gin.Context) (*model.Dataset, bool) {
	ds, err := C.GetServices().Store.Dataset(C.GetConfig().DataDir)
	if err != nil {
		log.WithFields(log.Fields{
			"reqId": U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID),
		}).WithError(err).Error("Dataset load failed.")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"error": "Error al cargar los datos: " + err.Error()})
		return nil, false
	}
	return ds, true
}

// parseFilter reads from/to/city/category query params. Absent dates leave
// that bound open. Unparseable dates abort with 400.
func parseFilter(c *gin.Context) (model.Filter, bool) {
	var f model.Filter
	for _, bound := range []struct {
		param string
		dst   *time.Time
	}{
		{"from", &f.From},
		{"to", &f.To},
	} {
		raw := c.Query(bound.param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				gin.H{"error": "invalid " + bound.param + " date, want YYYY-MM-DD"})
			return model.Filter{}, false
		}
		*bound.dst = t
	}
	f.City = c.Query("city")
	f.Category = c.Query("category")
	return f, true
}

func filteredView(c *gin.Context) ([]model.ConsolidatedRecord, *model.Dataset, model.Filter, bool) {
	ds, ok := dataset(c)
	if !ok {
		return nil, nil, model.Filter{}, false
	}
	f, ok := parseFilter(c)
	if !ok {
		return nil, nil, model.Filter{}, false
	}
	return analytics.Apply(ds.Consolidated, f), ds, f, true
}

// GetFilterOptionsHandler populates the dashboard controls: available date
// range, cities and categories of the full dataset.
func GetFilterOptionsHandler(c *gin.Context) {
	ds, ok := dataset(c)
	if !ok {
		return
	}
	min, max, hasDates := ds.DateRange()
	payload := gin.H{
		"cities":     analytics.Cities(ds.Consolidated),
		"categories": analytics.Categories(ds.Consolidated),
	}
	if hasDates {
		payload["date_min"] = min.Format(dateLayout)
		payload["date_max"] = max.Format(dateLayout)
	}
	c.JSON(http.StatusOK, payload)
}

func GetKPIsHandler(c *gin.Context) {
	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}
	payload := gin.H{
		"metrics": analytics.ComputeMetrics(filtered),
		"rows":    len(filtered),
	}
	if len(filtered) == 0 {
		payload["message"] = emptyViewMessage
	}
	c.JSON(http.StatusOK, payload)
}

func GetTimeseriesHandler(c *gin.Context) {
	g, ok := model.ParseGranularity(c.Query("granularity"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "invalid granularity, want day|week|month"})
		return
	}
	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}
	payload := gin.H{
		"granularity": g,
		"series":      analytics.RevenueByPeriod(filtered, g),
	}
	if len(filtered) == 0 {
		payload["message"] = emptyViewMessage
	}
	c.JSON(http.StatusOK, payload)
}

func GetTopProductsHandler(c *gin.Context) {
	n := 10
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid n"})
			return
		}
		n = parsed
	}
	metric, ok := analytics.ParseProductMetric(c.Query("metric"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "invalid metric, want revenue|quantity"})
		return
	}

	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric":   metric,
		"products": analytics.TopProducts(filtered, n, metric),
	})
}

func GetCityStatsHandler(c *gin.Context) {
	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": analytics.CityStats(filtered)})
}

func GetCategoryStatsHandler(c *gin.Context) {
	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": analytics.CategoryStats(filtered)})
}

// GetPaymentStatsHandler works on the sales table, date-filtered only, as
// the payment view is sale-level rather than line-level.
func GetPaymentStatsHandler(c *gin.Context) {
	ds, ok := dataset(c)
	if !ok {
		return
	}
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payments": analytics.PaymentStats(ds.Sales, f.From, f.To),
	})
}

func GetSeasonalityHandler(c *gin.Context) {
	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}
	payload := gin.H{
		"weekdays": analytics.RevenueByWeekday(filtered),
		"months":   analytics.RevenueByMonth(filtered),
		"matrix":   analytics.RevenueMatrix(filtered),
	}
	if len(filtered) == 0 {
		payload["message"] = emptyViewMessage
	}
	c.JSON(http.StatusOK, payload)
}

// GetRFMHandler recomputes the full RFM pass over the currently filtered
// view: aggregation, scoring, segmentation, summary and correlations.
func GetRFMHandler(c *gin.Context) {
	filtered, _, _, ok := filteredView(c)
	if !ok {
		return
	}

	table := rfm.Compute(filtered)
	if len(table.Rows) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"rows":    []model.ScoredRFM{},
			"message": "No hay datos suficientes para calcular el análisis RFM con los filtros aplicados.",
		})
		return
	}

	rules := C.GetConfig().SegmentRules
	scored := rfm.Score(table.Rows, rules)

	payload := gin.H{
		"snapshot_date": table.Snapshot.Format(dateLayout),
		"rows":          scored,
		"segments":      rfm.Summarize(scored, rules),
		"correlation":   rfm.Correlation(table.Rows),
		"top_customers": rfm.TopCustomers(scored, 15),
	}
	if table.Warning != "" {
		payload["warning"] = table.Warning
	}
	c.JSON(http.StatusOK, payload)
}

func InvalidateCacheHandler(c *gin.Context) {
	C.GetServices().Store.Invalidate()
	c.JSON(http.StatusOK, gin.H{"status": "invalidated"})
}
