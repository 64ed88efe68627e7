package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/taskdeck/types"
)

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
// With --verbose the underlying technical error is printed instead.
func PrintError(userMsg string, technicalErr error) {
	if isVerbose() && technicalErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
	} else {
		fmt.Fprintln(os.Stderr, userMsg)
	}
}

func isVerbose() bool {
	if appConfig != nil {
		return appConfig.Verbose
	}
	v, _ := rootCmd.PersistentFlags().GetBool("verbose")
	return v
}

// userMessage turns err into a short message for the terminal.
func userMessage(err error) string {
	var (
		verr *types.ValidationError
		serr *types.StorageError
	)
	switch {
	case errors.As(err, &verr):
		return "Error: " + capitalize(verr.Reason) + "."
	case errors.Is(err, types.ErrNotFound):
		return "Error: " + capitalize(err.Error()) + "."
	case errors.As(err, &serr) && serr.Op == types.StorageOpWrite:
		return fmt.Sprintf("Error: could not save tasks to %s.", serr.Path)
	default:
		return "Error: " + capitalize(err.Error())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
