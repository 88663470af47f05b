package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/weathercli/internal/infrastructure/cli/helpers"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/render"
)

// NewForecastCommand creates the forecast command
func NewForecastCommand(provide ContainerProvider) *cobra.Command {
	var chart bool

	cmd := &cobra.Command{
		Use:         "forecast CITY...",
		Short:       "Get the weather forecast for a city",
		Long:        "Show current conditions and the next days for CITY. A forecast fetched earlier today for the same city is served from the local cache.",
		Annotations: map[string]string{helpers.AnnotationArgs: ArgsForecast},
		Args: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(strings.Join(args, " ")) == "" {
				return helpers.NewUsageError(cmd, ErrMissingCity)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			container, err := provide(ctx, true)
			if err != nil {
				return err
			}
			defer container.Close()

			city := strings.Join(args, " ")
			spinner := helpers.StartSpinner(cmd.ErrOrStderr())
			result, err := container.ForecastService.Lookup(ctx, city)
			spinner.Stop()

			out := render.New(cmd.OutOrStdout())
			if err != nil {
				if out.LookupError(err) {
					container.Logger.Debug("forecast lookup failed", map[string]interface{}{
						"city":  city,
						"error": err.Error(),
					})
					return nil
				}
				return fmt.Errorf("forecast %s: %w", city, err)
			}

			out.Forecast(result.Record, container.Clock.Now(), render.ForecastOptions{
				Chart:     chart || container.Config.Display.Chart,
				FromCache: result.FromCache,
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&chart, "chart", false, "Plot max/min temperatures for the upcoming days")
	return cmd
}
