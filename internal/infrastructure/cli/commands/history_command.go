package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/weathercli/internal/domain"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/helpers"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/render"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand(provide ContainerProvider) *cobra.Command {
	var (
		limit  int
		strict bool
	)

	cmd := &cobra.Command{
		Use:         "history",
		Short:       "See history of forecast lookups",
		Annotations: map[string]string{helpers.AnnotationArgs: ArgsNone},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return helpers.NewUsageError(cmd, "Got unexpected extra argument (%s)", args[0])
			}
			if limit < 0 {
				return helpers.NewUsageError(cmd, "--limit must be >= 0")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := provide(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer container.Close()

			listing, err := container.HistoryStore.Entries(domain.HistoryQuery{
				Limit:  limit,
				Strict: strict || container.Config.History.Strict,
			})
			if err != nil {
				return err
			}
			render.New(cmd.OutOrStdout()).History(listing)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to show (0 shows all)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first malformed history line instead of skipping it")
	return cmd
}
