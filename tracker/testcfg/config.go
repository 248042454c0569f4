package testcfg

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds test-specific configuration for tracker acceptance tests
// NOTE: All values are test-optimized (smaller, faster) compared to production
type Config struct {
	PollInterval      time.Duration `env:"TRACKER_TEST_POLL_INTERVAL" envDefault:"100ms"` // vs 30s in production
	HttpClientTimeout time.Duration `env:"TRACKER_TEST_HTTP_CLIENT_TIMEOUT" envDefault:"30s"`
	LCDURL            string        `env:"TRACKER_TEST_LCD_URL" envDefault:"https://pisco-lcd.terra.dev"`
	Address           string        `env:"TRACKER_TEST_ADDRESS" envDefault:"terra1dcegyrekltswvyy0xy69ydgxn9x8x32zdtapd8"`

	// Test execution timeouts
	ShutdownTimeout time.Duration `env:"TRACKER_TEST_SHUTDOWN_TIMEOUT" envDefault:"10s"`
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
