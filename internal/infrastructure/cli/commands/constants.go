package commands

import (
	"context"

	"github.com/doeshing/weathercli/internal/app"
)

// ContainerProvider builds the dependency graph on demand. Commands that
// talk to the weather API or read history ask for the API key to be present.
type ContainerProvider func(ctx context.Context, requireAPIKey bool) (*app.Container, error)

// Usage hints shown after the command path.
const (
	ArgsForecast = "CITY..."
	ArgsNone     = ""
)

// Error messages
const (
	ErrMissingCity = "Missing argument 'CITY'."
)
