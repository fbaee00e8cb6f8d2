package main

import (
	"flag"
	"strconv"

	C "minimart/config"
	H "minimart/handler"
	mid "minimart/middleware"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ./app --env=development --api_http_port=8080 --data_dir=data/raw
func main() {
	defaults, err := C.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("Failed to read environment.")
		return
	}

	env := flag.String("env", defaults.Env, "")
	port := flag.Int("api_http_port", defaults.Port, "")
	dataDir := flag.String("data_dir", defaults.DataDir, "Directory with the four raw csv sources")
	cacheSize := flag.Int("cache_size", defaults.CacheSize, "Datasets kept in the load cache")
	flag.Parse()

	config := &C.Configuration{
		Env:          *env,
		Port:         *port,
		DataDir:      *dataDir,
		CacheSize:    *cacheSize,
		SegmentRules: defaults.SegmentRules,
	}

	// Initialize configs and services.
	if err := C.Init(config); err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mid.CustomCors())
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())

	H.InitRoutes(r)
	r.Run(":" + strconv.Itoa(C.GetConfig().Port))
}
