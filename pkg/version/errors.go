package version

import (
	"errors"
	"fmt"
)

var ErrInitialVersion = errors.New("no previous version for initial version")
var ErrInvalidVersion = errors.New("invalid version")

// InitialVersionError is returned when a predecessor of an initial
// version is requested. Mapping functions are expected to check
// IsInitial before decrementing, so this denotes a programming error.
type InitialVersionError struct {
	Version Version
}

func (e *InitialVersionError) Error() string {
	return fmt.Sprintf("cannot decrement %s: %s", e.Version, ErrInitialVersion)
}

func (e *InitialVersionError) Unwrap() error {
	return ErrInitialVersion
}
