// Package config loads vocare settings from ~/.vocare/config.yaml, VOCARE_*
// environment variables and built-in defaults, in increasing precedence:
// defaults, file, environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

// Needs board sources.
const (
	NeedsSQLite   = "sqlite"
	NeedsPostgres = "postgres"
)

// Config is the full vocare configuration.
type Config struct {
	User      string          `mapstructure:"user"`
	Database  DatabaseConfig  `mapstructure:"database"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Needs     NeedsConfig     `mapstructure:"needs"`
	Weather   WeatherConfig   `mapstructure:"weather"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type NeedsConfig struct {
	Source      string `mapstructure:"source"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	SampleSize  int    `mapstructure:"sample_size"`
}

// WeatherConfig leaves the coordinates nil unless both are configured.
type WeatherConfig struct {
	Latitude  *float64      `mapstructure:"latitude"`
	Longitude *float64      `mapstructure:"longitude"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type SchedulerConfig struct {
	StaleAfter time.Duration `mapstructure:"stale_after"`
	Sweep      string        `mapstructure:"sweep"`
	Prewarm    string        `mapstructure:"prewarm"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Dir returns ~/.vocare.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".vocare"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("user", "local")
	v.SetDefault("database.path", filepath.Join(dir, "vocare.db"))
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 12*time.Second)
	v.SetDefault("needs.source", NeedsSQLite)
	v.SetDefault("needs.postgres_dsn", "")
	v.SetDefault("needs.sample_size", 3)
	v.SetDefault("weather.base_url", "")
	v.SetDefault("weather.timeout", 5*time.Second)
	v.SetDefault("weather.cache_ttl", 15*time.Minute)
	v.SetDefault("scheduler.stale_after", 24*time.Hour)
	v.SetDefault("scheduler.sweep", "@every 15m")
	v.SetDefault("scheduler.prewarm", "@every 10m")
	v.SetDefault("metrics.addr", ":9464")
	v.SetDefault("log.level", "info")
}

// Load reads configuration. An empty path means ~/.vocare/config.yaml; a
// missing default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetEnvPrefix("VOCARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without defaults are invisible to AutomaticEnv during Unmarshal.
	for _, key := range []string{"weather.latitude", "weather.longitude"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case ProviderOpenAI:
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderNone:
	default:
		return fmt.Errorf("invalid llm.provider %q: must be openai, gemini or none", c.LLM.Provider)
	}
	switch c.Needs.Source {
	case NeedsSQLite:
	case NeedsPostgres:
		if c.Needs.PostgresDSN == "" {
			return fmt.Errorf("needs.postgres_dsn is required when needs.source is postgres")
		}
	default:
		return fmt.Errorf("invalid needs.source %q: must be sqlite or postgres", c.Needs.Source)
	}
	if c.Needs.SampleSize < 0 {
		return fmt.Errorf("needs.sample_size must not be negative")
	}
	if (c.Weather.Latitude == nil) != (c.Weather.Longitude == nil) {
		return fmt.Errorf("weather.latitude and weather.longitude must be set together")
	}
	return nil
}
