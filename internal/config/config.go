// Package config loads the cmd/debtplan CLI's search resource limits via
// Viper, the pattern wdfday-personalfinance-be/internal/config/config.go
// uses for environment + .env-file configuration. The debtplan library
// itself never reads global config — only this CLI consumer does.
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SearchConfig mirrors debtplan.Options' resource limits so the CLI can
// override the library defaults from the environment.
type SearchConfig struct {
	MaxIterations    int
	MaxMonths        int
	MaxWallClockSecs int
	HeapCapacity     int
	EvictionMode     string // "strict", "batch", "percentage"
}

// Config is the CLI's top-level configuration.
type Config struct {
	Search SearchConfig
	Logging LoggingConfig
}

type LoggingConfig struct {
	Level string // "debug", "info", "warn"
}

// Load reads DEBTPLAN_* environment variables (and an optional .env file
// in the working directory), falling back to the §4.4/§4.7 defaults.
func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DEBTPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("debtplan: no .env file found, using environment variables and defaults")
		} else {
			log.Printf("debtplan: error reading config file: %v", err)
		}
	}

	return &Config{
		Search: SearchConfig{
			MaxIterations:    viper.GetInt("MAX_ITERATIONS"),
			MaxMonths:        viper.GetInt("MAX_MONTHS"),
			MaxWallClockSecs: viper.GetInt("MAX_WALL_CLOCK_SECS"),
			HeapCapacity:     viper.GetInt("HEAP_CAPACITY"),
			EvictionMode:     viper.GetString("EVICTION_MODE"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("MAX_ITERATIONS", 8_000_000)
	viper.SetDefault("MAX_MONTHS", 370)
	viper.SetDefault("MAX_WALL_CLOCK_SECS", 30)
	viper.SetDefault("HEAP_CAPACITY", 100_000)
	viper.SetDefault("EVICTION_MODE", "strict")
	viper.SetDefault("LOG_LEVEL", "info")
}

// WallClock returns the configured wall-clock cap as a time.Duration.
func (s SearchConfig) WallClock() time.Duration {
	return time.Duration(s.MaxWallClockSecs) * time.Second
}
