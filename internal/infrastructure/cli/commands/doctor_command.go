package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/weathercli/internal/infrastructure/cli/helpers"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/render"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(provide ContainerProvider) *cobra.Command {
	return &cobra.Command{
		Use:         "doctor",
		Short:       "Diagnose configuration and storage",
		Annotations: map[string]string{helpers.AnnotationArgs: ArgsNone},
		Args:        noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := provide(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer container.Close()

			report, err := container.DoctorService.Run(cmd.Context())

			// display report even if there were errors
			render.New(cmd.OutOrStdout()).HealthReport(report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if report.Failed() {
				return fmt.Errorf("diagnostics found problems")
			}
			return nil
		},
	}
}
