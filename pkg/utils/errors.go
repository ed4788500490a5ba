package utils

import (
	"fmt"
)

// MakeError wraps a sentinel error with formatted details, preserving the
// sentinel for errors.Is checks.
func MakeError(err error, detailsBody string, args ...any) error {
	return fmt.Errorf("%w: "+detailsBody, append([]any{err}, args...)...)
}
