// Package wire provides dependency injection for the vocare application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"database/sql"
	"io"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	cliadapter "github.com/example/vocare/internal/adapters/cli"
	"github.com/example/vocare/internal/adapters/llm"
	"github.com/example/vocare/internal/adapters/metrics"
	"github.com/example/vocare/internal/adapters/postgres"
	"github.com/example/vocare/internal/adapters/sqlite"
	"github.com/example/vocare/internal/adapters/weather"
	"github.com/example/vocare/internal/app"
	"github.com/example/vocare/internal/config"
	"github.com/example/vocare/internal/db"
	"github.com/example/vocare/internal/ports/primary"
	"github.com/example/vocare/internal/ports/secondary"
	"github.com/example/vocare/internal/scheduler"
)

var (
	cfg    = defaultConfig()
	logger = zap.NewNop()

	missionService primary.MissionService
	profileService primary.ProfileService
	needService    primary.NeedService
	weatherClient  *weather.Client
	database       *sql.DB
	registry       *prometheus.Registry
	once           sync.Once
)

func defaultConfig() *config.Config {
	return &config.Config{
		User:  "local",
		LLM:   config.LLMConfig{Provider: config.ProviderNone},
		Needs: config.NeedsConfig{Source: config.NeedsSQLite, SampleSize: 3},
	}
}

// Configure sets the configuration and logger used to build services.
// It must be called before any service accessor.
func Configure(c *config.Config, l *zap.Logger) {
	if c != nil {
		cfg = c
	}
	if l != nil {
		logger = l
	}
}

// Config returns the active configuration.
func Config() *config.Config { return cfg }

// Logger returns the process logger.
func Logger() *zap.Logger { return logger }

// MissionService returns the singleton MissionService instance.
func MissionService() primary.MissionService {
	once.Do(initServices)
	return missionService
}

// ProfileService returns the singleton ProfileService instance.
func ProfileService() primary.ProfileService {
	once.Do(initServices)
	return profileService
}

// NeedService returns the singleton NeedService instance.
func NeedService() primary.NeedService {
	once.Do(initServices)
	return needService
}

// Database returns the local SQLite database.
func Database() *sql.DB {
	once.Do(initServices)
	return database
}

// MetricsRegistry returns the registry the generation observer records into.
func MetricsRegistry() *prometheus.Registry {
	once.Do(initServices)
	return registry
}

// Scheduler builds the background job runner for `serve`.
func Scheduler() *scheduler.Scheduler {
	once.Do(initServices)
	var prewarmer scheduler.Prewarmer
	if weatherClient != nil {
		prewarmer = weatherClient
	}
	return scheduler.New(scheduler.Config{
		Sweep:   cfg.Scheduler.Sweep,
		Prewarm: cfg.Scheduler.Prewarm,
	}, missionService, prewarmer, logger)
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	database, err = db.GetDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	// Secondary adapters
	profileRepo := sqlite.NewProfileRepository(database)
	missionRepo := sqlite.NewMissionRepository(database)
	journalRepo := sqlite.NewJournalRepository(database)
	needRepo := newNeedRepository()

	registry = prometheus.NewRegistry()
	observer, err := metrics.NewObserver(registry)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	var weatherProvider secondary.WeatherProvider
	if cfg.Weather.Latitude != nil && cfg.Weather.Longitude != nil {
		weatherClient = weather.NewClient(weather.Config{
			Latitude:  cfg.Weather.Latitude,
			Longitude: cfg.Weather.Longitude,
			BaseURL:   cfg.Weather.BaseURL,
			CacheTTL:  cfg.Weather.CacheTTL,
			Timeout:   cfg.Weather.Timeout,
		}, nil, logger)
		weatherProvider = weatherClient
	}

	resolver := app.NewResolver(newGenerator(), nil, cfg.LLM.Timeout, observer, logger)

	// Services (primary ports)
	missionService = app.NewMissionService(missionRepo, profileRepo, journalRepo, needRepo, weatherProvider,
		resolver, observer, logger, app.MissionServiceOptions{
			SampleSize: cfg.Needs.SampleSize,
			StaleAfter: cfg.Scheduler.StaleAfter,
		})
	profileService = app.NewProfileService(profileRepo, logger)
	needService = app.NewNeedService(needRepo, profileRepo, logger)
}

func newNeedRepository() secondary.NeedRepository {
	if cfg.Needs.Source != config.NeedsPostgres {
		return sqlite.NewNeedRepository(database)
	}
	conn, err := postgres.Open(cfg.Needs.PostgresDSN)
	if err != nil {
		logger.Fatal("failed to open needs board", zap.Error(err))
	}
	return postgres.NewNeedRepository(conn)
}

// newGenerator returns the configured remote backend, or nil for offline mode.
func newGenerator() secondary.Generator {
	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return llm.NewOpenAIClient(llm.OpenAIConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		}, nil, logger)
	case config.ProviderGemini:
		g, err := llm.NewGeminiClient(context.Background(), llm.GeminiConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		}, logger)
		if err != nil {
			logger.Warn("gemini backend unavailable, using offline suggestions", zap.Error(err))
			return nil
		}
		return g
	}
	return nil
}

// MissionAdapter returns a new MissionAdapter writing to stdout.
func MissionAdapter() *cliadapter.MissionAdapter {
	return MissionAdapterWithOutput(os.Stdout)
}

// MissionAdapterWithOutput returns a new MissionAdapter writing to the given output.
func MissionAdapterWithOutput(out io.Writer) *cliadapter.MissionAdapter {
	once.Do(initServices)
	return cliadapter.NewMissionAdapter(missionService, out)
}

// ProfileAdapter returns a new ProfileAdapter writing to stdout.
func ProfileAdapter() *cliadapter.ProfileAdapter {
	once.Do(initServices)
	return cliadapter.NewProfileAdapter(profileService, os.Stdout)
}

// NeedAdapter returns a new NeedAdapter writing to stdout.
func NeedAdapter() *cliadapter.NeedAdapter {
	once.Do(initServices)
	return cliadapter.NewNeedAdapter(needService, os.Stdout)
}
