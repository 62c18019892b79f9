package errors

import (
	"errors"
	"fmt"
)

// Common error types for the CollegeOps client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionCorrupt   = errors.New("stored session is corrupt")
	ErrAuthInFlight     = errors.New("authentication already in progress")

	// Storage errors
	ErrEntryNotFound = errors.New("storage entry not found")

	// Routing errors
	ErrUnknownScreen = errors.New("unknown screen")
	ErrRedirectCycle = errors.New("redirect limit exceeded")

	// General errors
	ErrNotFound    = errors.New("not found")
	ErrInternal    = errors.New("internal error")
	ErrUnsupported = errors.New("unsupported operation")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
