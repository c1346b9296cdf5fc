package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Config holds process-level settings, sourced from the environment with an
// optional .env file for local development.
type Config struct {
	Environment string
	HTTPAddr    string
	DBPath      string
	SeedSample  bool
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from .env (when present) and the OS environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; a present but unreadable one is not.
		if _, statErr := os.Stat(".env"); statErr == nil {
			return Config{}, err
		}
	}
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_PATH", "invoice-manage.db")
	v.SetDefault("SEED_SAMPLE_DATA", false)

	return Config{
		Environment: v.GetString("ENVIRONMENT"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		DBPath:      v.GetString("DB_PATH"),
		SeedSample:  v.GetBool("SEED_SAMPLE_DATA"),
	}, nil
}

// Module provides Config to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
)
