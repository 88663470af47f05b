package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/weathercli/internal/app"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/commands"
	"github.com/doeshing/weathercli/internal/infrastructure/cli/helpers"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location.
	ConfigPath string
	Stdout     io.Writer
	Stderr     io.Writer
}

// NewRootCmd wires the cobra root command. Dependencies are built lazily by
// the commands that need them, so usage errors never touch configuration.
func NewRootCmd(opts Options) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:         "weathercli",
		Short:       "Easy to use weather data fetcher and forecaster within your terminal",
		Long:        "weathercli shows current weather and a multi-day forecast for a city, caches the last result for the day and keeps a history of lookups.",
		Annotations: map[string]string{helpers.AnnotationArgs: "COMMAND [ARGS]..."},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return helpers.NewUsageError(cmd, "No such command '%s'.", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return helpers.NewUsageError(cmd, "Missing command.")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &helpers.UsageError{Cmd: cmd, Message: err.Error()}
	})
	// only --help prints help; "help" behaves like any other unknown command
	root.SetHelpCommand(&cobra.Command{
		Use:                "help",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return helpers.NewUsageError(cmd.Root(), "No such command '%s'.", cmd.Name())
		},
	})

	provide := func(ctx context.Context, requireAPIKey bool) (*app.Container, error) {
		return app.BuildContainer(ctx, app.Options{
			Verbose:       opts.Verbose || verbose,
			ConfigPath:    opts.ConfigPath,
			RequireAPIKey: requireAPIKey,
		})
	}

	root.AddCommand(
		commands.NewForecastCommand(provide),
		commands.NewHistoryCommand(provide),
		commands.NewAboutCommand(),
		commands.NewDoctorCommand(provide),
		commands.NewVersionCommand(),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit status.
func Execute(ctx context.Context, args []string, opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	root := NewRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	err := root.ExecuteContext(ctx)
	var usage *helpers.UsageError
	switch {
	case errors.As(err, &usage):
		helpers.PrintUsageError(opts.Stderr, usage)
	case err != nil:
		fmt.Fprintln(opts.Stderr, "Error:", err)
	}
	return helpers.ExitCode(err)
}
