package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	MongoURI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGO_DB" default:"nursery"`

	// CartScope is the key every cart operation runs against. The shop has
	// exactly one shared cart; the scope makes that a configuration value
	// rather than an implicit global.
	CartScope string `envconfig:"CART_SCOPE" default:"default"`

	// RestoreStockOnCartRemove re-credits a product's quantity when its cart
	// line is deleted. Off by default: removing a line does not return the
	// reserved stock to the pool.
	RestoreStockOnCartRemove bool `envconfig:"RESTORE_STOCK_ON_CART_REMOVE" default:"false"`

	// LowStockThreshold is the remaining quantity at which a product gets
	// flagged by the low-stock watcher after a checkout.
	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
