package helpers

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// AnnotationArgs holds the argument hint shown in usage lines.
const AnnotationArgs = "weathercli/args"

// UsageError reports a malformed invocation. It maps to exit status 2.
type UsageError struct {
	Cmd     *cobra.Command
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewUsageError builds a UsageError for cmd.
func NewUsageError(cmd *cobra.Command, format string, args ...interface{}) *UsageError {
	return &UsageError{Cmd: cmd, Message: fmt.Sprintf(format, args...)}
}

// Exit statuses.
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// ExitCode maps an error returned by command execution to a process status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitFatal
}

// UsageLine renders "Usage: weathercli forecast [OPTIONS] CITY..." for cmd.
func UsageLine(cmd *cobra.Command) string {
	line := "Usage: " + cmd.CommandPath() + " [OPTIONS]"
	if hint := cmd.Annotations[AnnotationArgs]; hint != "" {
		line += " " + hint
	}
	return line
}

// PrintUsageError writes the usage banner, a help hint and the message.
func PrintUsageError(w io.Writer, err *UsageError) {
	if err.Cmd != nil {
		fmt.Fprintln(w, UsageLine(err.Cmd))
		fmt.Fprintf(w, "Try '%s --help' for help.\n\n", err.Cmd.CommandPath())
	}
	fmt.Fprintf(w, "Error: %s\n", err.Message)
}
