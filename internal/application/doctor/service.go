package doctor

import (
	"context"
	"fmt"

	appconfig "github.com/doeshing/weathercli/internal/application/config"
	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Cache          ports.ForecastCache
	History        ports.HistoryRepository
	Clock          ports.Clock
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded (format %s)", cfg.ConfigFormatVersion)))

	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", fmt.Sprintf("history backend %s", cfg.History.Backend)))
	}

	if err := appconfig.RequireAPIKey(cfg); err != nil {
		checks = append(checks, fail("API key", err.Error()))
	} else {
		checks = append(checks, ok("API key", fmt.Sprintf("resolved via %s", cfg.API.KeyEnv)))
	}

	if s.Cache != nil {
		checks = append(checks, s.cacheCheck())
	}
	if s.History != nil {
		checks = append(checks, s.historyCheck())
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) cacheCheck() domain.HealthCheck {
	record, found, err := s.Cache.Peek()
	switch {
	case err != nil:
		return fail("Cache slot", fmt.Sprintf("%s unreadable: %v", s.Cache.Path(), err))
	case !found:
		return warn("Cache slot", fmt.Sprintf("%s is empty", s.Cache.Path()))
	}

	details := fmt.Sprintf("%s fetched %s", record.Location.Name, record.FetchedOn.Format(domain.LongTimestampLayout))
	if s.Clock != nil && !record.FetchedOnDay(s.Clock.Now()) {
		return warn("Cache slot", details+" (stale)")
	}
	return ok("Cache slot", details)
}

func (s *Service) historyCheck() domain.HealthCheck {
	listing, err := s.History.Entries(domain.HistoryQuery{})
	if err != nil {
		return fail("History", fmt.Sprintf("%s unreadable: %v", s.History.Path(), err))
	}
	details := fmt.Sprintf("%d lookups in %s", len(listing.Entries), s.History.Path())
	if listing.Skipped > 0 {
		return warn("History", fmt.Sprintf("%s, %d malformed", details, listing.Skipped))
	}
	return ok("History", details)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
