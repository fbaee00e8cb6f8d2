package handler

import (
	"bytes"
	"net/http"

	"minimart/analytics"
	C "minimart/config"
	"minimart/export"
	mid "minimart/middleware"
	"minimart/model"
	"minimart/rfm"
	U "minimart/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler streams any of the six tables as a CSV or XLSX download.
// The consolidated and RFM tables honor the active filters, the four raw
// tables are exported in full.
func ExportHandler(c *gin.Context) {
	format, ok := export.ParseFormat(c.Query("format"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			gin.H{"error": "invalid format, want csv|xlsx"})
		return
	}

	ds, ok := dataset(c)
	if !ok {
		return
	}
	f, ok := parseFilter(c)
	if !ok {
		return
	}

	filtered := analytics.Apply(ds.Consolidated, f)
	var scored []model.ScoredRFM
	table := c.DefaultQuery("table", "consolidated")
	if table == "rfm" {
		scored = rfm.Score(rfm.Compute(filtered).Rows, C.GetConfig().SegmentRules)
	}

	t, err := export.Build(table, ds, filtered, scored)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	contentType := csvContentType
	if format == export.FormatXLSX {
		contentType = xlsxContentType
		err = export.WriteXLSX(&buf, t)
	} else {
		err = export.WriteCSV(&buf, t)
	}
	if err != nil {
		log.WithFields(log.Fields{
			"reqId": U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID),
			"table": table,
		}).WithError(err).Error("Export failed.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+t.Filename(format)+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
