package middleware

import (
	"time"

	C "minimart/config"
	U "minimart/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SCOPE_REQ_ID is the request-scope key for the generated request id.
const SCOPE_REQ_ID = "reqId"

// CustomCors allows the local dashboard frontend in development.
func CustomCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		if C.IsDevelopment() {
			corsConfig := cors.DefaultConfig()
			corsConfig.AllowOrigins = []string{"http://localhost:8080",
				"http://localhost:3000"}
			cors.New(corsConfig)(c)
			return
		}
		c.Next()
	}
}

// RequestIdGenerator tags every request with a uuid on the request scope.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		U.SetScope(c, SCOPE_REQ_ID, uuid.New().String())
		c.Next()
	}
}

// Logger logs one line per request with latency and status.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"reqId":   U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("Request processed.")
	}
}

// Recovery converts panics into 500s instead of killing the process.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
