package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	appconfig "github.com/doeshing/weathercli/internal/application/config"
	"github.com/doeshing/weathercli/internal/application/doctor"
	"github.com/doeshing/weathercli/internal/application/forecast"
	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/infrastructure/cache"
	"github.com/doeshing/weathercli/internal/infrastructure/config"
	"github.com/doeshing/weathercli/internal/infrastructure/history"
	"github.com/doeshing/weathercli/internal/infrastructure/weatherapi"
	"github.com/doeshing/weathercli/internal/pkg/clock"
	"github.com/doeshing/weathercli/internal/pkg/logger"
	"github.com/doeshing/weathercli/internal/ports"
)

// Options controls how the dependency graph is built.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location.
	ConfigPath string
	// RequireAPIKey makes a missing API key a build error.
	RequireAPIKey bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	ConfigLoader    *config.FileLoader
	Logger          ports.Logger
	Clock           ports.Clock
	ForecastService *forecast.Service
	DoctorService   *doctor.Service
	HistoryStore    ports.HistoryRepository
	CacheStore      ports.ForecastCache
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgLoader.Path(), err)
	}
	if opts.RequireAPIKey {
		if err := appconfig.RequireAPIKey(cfg); err != nil {
			return nil, err
		}
	}

	log := logger.NewStd(opts.Verbose)
	clk := clock.System{}

	timeout, err := time.ParseDuration(cfg.API.Timeout)
	if err != nil {
		return nil, fmt.Errorf("api.timeout: %w", err)
	}
	client := weatherapi.NewClient(cfg.API.BaseURL, cfg.API.Key, timeout, clk, log)
	source := weatherapi.WithRateLimit(client, cfg.API.RateLimit, weatherapi.RateLimitOptions{
		StatePath: filepath.Join(filepath.Dir(cfg.Storage.CacheFile), domain.DefaultRateLimitFile),
		MaxWait:   timeout,
		Clock:     clk,
		Logger:    log,
	})

	cacheStore := cache.NewFileCache(cfg.Storage.CacheFile, log)
	historyStore := history.New(cfg, log)

	log.Debug("container ready", map[string]interface{}{
		"config":  cfgLoader.Path(),
		"source":  source.Name(),
		"cache":   cacheStore.Path(),
		"history": historyStore.Path(),
	})

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Clock:        clk,
		ForecastService: &forecast.Service{
			Source:  source,
			Cache:   cacheStore,
			History: historyStore,
			Clock:   clk,
			Logger:  log,
		},
		DoctorService: &doctor.Service{
			ConfigProvider: cfgLoader,
			Cache:          cacheStore,
			History:        historyStore,
			Clock:          clk,
		},
		HistoryStore: historyStore,
		CacheStore:   cacheStore,
	}, nil
}

// Close releases resources held by the history backend.
func (c *Container) Close() error {
	if closer, ok := c.HistoryStore.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
