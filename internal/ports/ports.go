// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (internal/application) depends only on these
// interfaces; concrete adapters live in internal/infrastructure and are wired
// together by internal/app.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., ForecastSource, ForecastCache)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"
	"time"

	"github.com/doeshing/weathercli/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.weathercli/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ForecastSource fetches a live forecast for a city.
// Failures are reported with the error kinds declared in the domain package.
type ForecastSource interface {
	Name() string
	Fetch(ctx context.Context, city string) (domain.ForecastRecord, error)
}

// ForecastCache is the single-slot store of the last successful forecast.
type ForecastCache interface {
	// GetIfFresh returns the cached record only when it is usable for city at now.
	GetIfFresh(city string, now time.Time) (domain.ForecastRecord, bool)
	// Put replaces the slot.
	Put(record domain.ForecastRecord) error
	// Peek returns whatever the slot holds, without freshness checks.
	Peek() (domain.ForecastRecord, bool, error)
	Path() string
}

// HistoryRepository appends lookup events and reconstructs them for display.
type HistoryRepository interface {
	Append(event domain.LookupEvent) error
	Entries(query domain.HistoryQuery) (domain.HistoryListing, error)
	Path() string
}

// Clock abstracts time for freshness checks.
type Clock interface {
	Now() time.Time
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
