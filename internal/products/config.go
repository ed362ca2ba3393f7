package products

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config controls the catalogd process. Values come from the environment so
// the service can be pointed at a database and model directory without flags.
type Config struct {
	Addr      string `env:"CATALOGD_ADDR" envDefault:":8081"`
	DBPath    string `env:"CATALOGD_DB" envDefault:"catalogd.db"`
	ModelsDir string `env:"CATALOGD_MODELS_DIR" envDefault:"models"`
	LogLevel  string `env:"CATALOGD_LOG_LEVEL" envDefault:"info"`
	LogFile   string `env:"CATALOGD_LOG_FILE" envDefault:"logs/catalogd.log"`
	SeedFile  string `env:"CATALOGD_SEED"`
}

// LoadConfig reads catalogd configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
