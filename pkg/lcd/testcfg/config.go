package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for LCD client acceptance tests
type Config struct {
	Address     string        `env:"LCD_TEST_ADDRESS" envDefault:"terra1dcegyrekltswvyy0xy69ydgxn9x8x32zdtapd8"`
	HTTPTimeout time.Duration `env:"LCD_TEST_HTTP_TIMEOUT" envDefault:"30s"`
	BaseURL     string        `env:"LCD_TEST_BASE_URL" envDefault:"https://pisco-lcd.terra.dev"`
}

// parseConfig wraps env.Parse to return (Config, error) for use with env.Must
func parseConfig() (Config, error) {
	var cfg Config
	err := env.Parse(&cfg)
	return cfg, err
}

// New loads test configuration from environment variables
func New() Config {
	return env.Must(parseConfig())
}
