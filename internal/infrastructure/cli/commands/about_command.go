package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/weathercli/internal/infrastructure/cli/helpers"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/render"
)

// NewAboutCommand creates the about command
func NewAboutCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "about",
		Short:       "Shows information about the CLI",
		Annotations: map[string]string{helpers.AnnotationArgs: ArgsNone},
		Args:        noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			render.New(cmd.OutOrStdout()).About()
			return nil
		},
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return helpers.NewUsageError(cmd, "Got unexpected extra argument (%s)", args[0])
	}
	return nil
}
