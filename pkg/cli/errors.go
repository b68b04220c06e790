package cli

import "fmt"

// FlagError represents an invalid command-line flag value.
type FlagError struct {
	Flag    string
	Message string
}

func (e *FlagError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s", e.Flag, e.Message)
}

// NewFlagError creates a new FlagError.
func NewFlagError(flag, message string) *FlagError {
	return &FlagError{
		Flag:    flag,
		Message: message,
	}
}
