package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/ports"
)

// ErrEmptyCity is returned when Lookup is called without a city.
var ErrEmptyCity = errors.New("city must not be empty")

// Result is the outcome of a single lookup.
type Result struct {
	Record    domain.ForecastRecord
	FromCache bool
}

// Service orchestrates the forecast lifecycle: cache check, history event,
// live fetch and cache refresh.
type Service struct {
	Source  ports.ForecastSource
	Cache   ports.ForecastCache
	History ports.HistoryRepository
	Clock   ports.Clock
	Logger  ports.Logger
}

// Lookup serves city from the cache slot when it is fresh and otherwise
// fetches it from the source. Exactly one history event is appended per call
// that reaches the cache decision.
func (s *Service) Lookup(ctx context.Context, city string) (Result, error) {
	if s.Source == nil || s.Cache == nil || s.History == nil || s.Clock == nil || s.Logger == nil {
		return Result{}, errors.New("forecast.Service dependencies not satisfied")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	city = strings.TrimSpace(city)
	if city == "" {
		return Result{}, ErrEmptyCity
	}

	now := s.Clock.Now()
	if record, ok := s.Cache.GetIfFresh(city, now); ok {
		s.record(domain.LookupEvent{Timestamp: now, City: city, Outcome: domain.LookupHit})
		s.Logger.Debug("cache hit", map[string]interface{}{"city": city, "cache": s.Cache.Path()})
		return Result{Record: record, FromCache: true}, nil
	}

	s.record(domain.LookupEvent{Timestamp: now, City: city, Outcome: domain.LookupMiss})
	s.Logger.Debug("cache miss, calling source", map[string]interface{}{
		"city":   city,
		"source": s.Source.Name(),
	})

	record, err := s.Source.Fetch(ctx, city)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %q: %w", city, err)
	}
	if record.HasError() {
		return Result{}, &domain.APIError{Message: record.Error}
	}

	if err := s.Cache.Put(record); err != nil {
		s.Logger.Warn("cache write failed", map[string]interface{}{
			"cache": s.Cache.Path(),
			"error": err.Error(),
		})
	}
	return Result{Record: record}, nil
}

func (s *Service) record(event domain.LookupEvent) {
	if err := s.History.Append(event); err != nil {
		s.Logger.Warn("history append failed", map[string]interface{}{
			"history": s.History.Path(),
			"error":   err.Error(),
		})
	}
}
