package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/ukaji3/cellcount-go/pkg/cellcount"
)

type Config struct {
	Service  *svcConfig
	Defaults *defaultsConfig
}

type svcConfig struct {
	Address   string `envconfig:"CELLCOUNT_ADDRESS" default:":8080"`
	LogLevel  string `envconfig:"CELLCOUNT_LOG_LEVEL" default:"info"`
	CacheSize int    `envconfig:"CELLCOUNT_CACHE_SIZE" default:"128"`
}

type defaultsConfig struct {
	SquareCount        int     `envconfig:"CELLCOUNT_DEFAULT_SQUARES" default:"4"`
	DilutionFactor     float64 `envconfig:"CELLCOUNT_DEFAULT_DILUTION" default:"2.0"`
	StockVolumeMl      float64 `envconfig:"CELLCOUNT_DEFAULT_STOCK_VOLUME" default:"5.0"`
	TargetCellsPerDish float64 `envconfig:"CELLCOUNT_DEFAULT_TARGET_CELLS" default:"500000"`
	DispenseVolumeMl   float64 `envconfig:"CELLCOUNT_DEFAULT_DISPENSE_VOLUME" default:"2.0"`
}

// New reads the configuration from the environment.
func New() (*Config, error) {
	cfg := &Config{
		Service:  new(svcConfig),
		Defaults: new(defaultsConfig),
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Inputs returns the configured input defaults.
func (c *Config) Inputs() cellcount.Defaults {
	d := cellcount.DefaultInputs()
	d.SquareCount = c.Defaults.SquareCount
	d.DilutionFactor = c.Defaults.DilutionFactor
	d.StockVolumeMl = c.Defaults.StockVolumeMl
	d.TargetCellsPerDish = c.Defaults.TargetCellsPerDish
	d.DispenseVolumeMl = c.Defaults.DispenseVolumeMl
	return d
}
