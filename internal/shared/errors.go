package shared

import "fmt"

var (
	// Lookup errors
	ErrNotFound          = fmt.Errorf("not found")
	ErrOwnershipMismatch = fmt.Errorf("ownership mismatch")

	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	ErrServiceUnavailable = fmt.Errorf("service unavailable")
)
