package config

import (
	"fmt"

	"minimart/model"
	"minimart/store"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

const DEVELOPMENT = "development"

var initiated bool = false

// Configuration holds everything the service needs at startup. Defaults can
// come from MINIMART_* environment variables, flags in app override them.
type Configuration struct {
	Env       string `envconfig:"ENV" default:"development"`
	Port      int    `envconfig:"PORT" default:"8080"`
	DataDir   string `envconfig:"DATA_DIR" default:"data/raw"`
	CacheSize int    `envconfig:"CACHE_SIZE" default:"4"`

	// Segment thresholds are business configuration, not fixed logic.
	SegmentRules []model.SegmentRule
}

// Services are the process-wide collaborators initialized once.
type Services struct {
	Store *store.Store
}

var configuration *Configuration = nil
var services *Services = nil

// FromEnv builds a Configuration seeded from the environment.
func FromEnv() (*Configuration, error) {
	var c Configuration
	if err := envconfig.Process("minimart", &c); err != nil {
		return nil, err
	}
	c.SegmentRules = model.DefaultSegmentRules()
	return &c, nil
}

func initLogging() {
	if configuration.Env != DEVELOPMENT {
		// Log as JSON instead of the default ASCII formatter.
		log.SetFormatter(&log.JSONFormatter{})
	}
}

func initServices() error {
	st, err := store.New(configuration.CacheSize)
	if err != nil {
		log.WithError(err).Error("Failed store initialization")
		return err
	}
	log.Info("Store service initialized")

	services = &Services{Store: st}
	return nil
}

func Init(config *Configuration) error {
	if initiated {
		return fmt.Errorf("config already initialized")
	}
	if len(config.SegmentRules) == 0 {
		config.SegmentRules = model.DefaultSegmentRules()
	}
	configuration = config

	initLogging()
	if err := initServices(); err != nil {
		return err
	}

	initiated = true
	return nil
}

func IsDevelopment() bool {
	return configuration.Env == DEVELOPMENT
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}
