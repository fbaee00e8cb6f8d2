package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func InitRoutes(r *gin.Engine) {
	r.GET("/health", HealthHandler)

	r.GET("/dashboard/filters", GetFilterOptionsHandler)
	r.GET("/dashboard/kpis", GetKPIsHandler)
	r.GET("/dashboard/timeseries", GetTimeseriesHandler)
	r.GET("/dashboard/products/top", GetTopProductsHandler)
	r.GET("/dashboard/cities", GetCityStatsHandler)
	r.GET("/dashboard/categories", GetCategoryStatsHandler)
	r.GET("/dashboard/payments", GetPaymentStatsHandler)
	r.GET("/dashboard/seasonality", GetSeasonalityHandler)
	r.GET("/dashboard/rfm", GetRFMHandler)

	r.GET("/export", ExportHandler)
	r.POST("/cache/invalidate", InvalidateCacheHandler)
}

func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
