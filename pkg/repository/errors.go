package repository

import (
	"fmt"

	"github.com/mandelsoft/coevolution/pkg/version"
)

var ErrCascadeDepthExceeded = fmt.Errorf("propagation cascade depth exceeded")

// MappingError reports a failed mapping function. The
// propagation cascade is aborted, artifacts stored
// before the failure are kept.
type MappingError struct {
	Transformation version.Version
	Input          version.Version
	Err            error
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("transformation %s failed for %s: %s", e.Transformation, e.Input, e.Err)
}

func (e *MappingError) Unwrap() error {
	return e.Err
}
