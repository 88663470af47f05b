package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/doeshing/weathercli/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateAPI(cfg.API); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	return validateHistory(cfg.History)
}

// RequireAPIKey fails when no API key could be resolved.
func RequireAPIKey(cfg domain.Config) error {
	if strings.TrimSpace(cfg.API.Key) == "" {
		return fmt.Errorf("%s is not set: export it, add it to a .env file or set api.key in the config", cfg.API.KeyEnv)
	}
	return nil
}

func validateAPI(api domain.APISettings) error {
	u, err := url.Parse(api.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must be http or https, got %q", api.BaseURL)
	}
	if u.Host == "" {
		return errors.New("api.base_url must include a host")
	}
	timeout, err := time.ParseDuration(api.Timeout)
	if err != nil {
		return fmt.Errorf("api.timeout invalid: %w", err)
	}
	if timeout <= 0 {
		return fmt.Errorf("api.timeout must be > 0")
	}
	if api.RateLimit.RequestsPerSecond > 0 && api.RateLimit.Burst < 1 {
		return fmt.Errorf("api.rate_limit.burst must be >= 1 when rate limiting is enabled")
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	if storage.CacheFile == "" {
		return fmt.Errorf("storage.cache_file must be set")
	}
	if storage.LogFile == "" {
		return fmt.Errorf("storage.log_file must be set")
	}
	return nil
}

func validateHistory(history domain.HistorySettings) error {
	switch history.Backend {
	case domain.HistoryBackendLog:
	case domain.HistoryBackendSQLite:
		if history.Database == "" {
			return fmt.Errorf("history.database must be set for the sqlite backend")
		}
	default:
		return fmt.Errorf("history.backend must be log|sqlite, got %s", history.Backend)
	}
	return nil
}
