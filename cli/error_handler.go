package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/file-preview/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	fpErr, isTyped := errors.AsError(err)

	switch errors.GetCode(err) {
	case errors.ErrCodeDaemonRunning:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Run 'file-preview stop' first, or use the running instance.\n")

	case errors.ErrCodeWatchUnavailable:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Set backend = \"fsnotify\" in the config file to use the portable watcher.\n")

	case errors.ErrCodeCommandNotFound:
		if isTyped {
			fmt.Fprintf(h.Out, "Error: required program '%v' is not installed\n", fpErr.Details["command"])
		} else {
			fmt.Fprintf(h.Out, "Error: %v\n", err)
		}

	case errors.ErrCodeInvalidInput:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
		fmt.Fprintf(h.Out, "Run 'file-preview --help' for usage.\n")

	default:
		fmt.Fprintf(h.Out, "Error: %v\n", err)
	}

	if h.Verbose && isTyped {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", fpErr.ToJSON())
	}
	return err
}
