package coevolution

import (
	"errors"
	"fmt"

	"github.com/mandelsoft/coevolution/pkg/version"
)

var ErrDanglingMetamodel = errors.New("metamodel version not found")

// DanglingMetamodelError is returned by migrations, which would
// produce an artifact referring to a metamodel revision not
// available in the repository.
type DanglingMetamodelError struct {
	Artifact  version.Version
	Metamodel version.Version
}

func (e *DanglingMetamodelError) Error() string {
	return fmt.Sprintf("cannot migrate %s: %s: %s", e.Artifact, ErrDanglingMetamodel, e.Metamodel)
}

func (e *DanglingMetamodelError) Unwrap() error {
	return ErrDanglingMetamodel
}
