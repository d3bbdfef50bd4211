package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/whosfree/internal/logger"
)

var (
	// ErrNotInitialized is returned when a store is used before init/load
	ErrNotInitialized = stderrors.New("storage not initialized, run 'whosfree init' first")
	// ErrNotFound is returned when a requested document does not exist
	ErrNotFound = stderrors.New("not found")
	// ErrWatchUnsupported is returned by stores without live updates
	ErrWatchUnsupported = stderrors.New("store does not support live updates")
)

// InputError reports missing or malformed query parameters supplied by the
// caller. Its message is meant to be shown to the user as-is.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewInputError creates an InputError for the given field.
func NewInputError(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is, or wraps, an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return stderrors.As(err, &ie)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
