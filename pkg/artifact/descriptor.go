package artifact

import (
	"github.com/mandelsoft/coevolution/pkg/utils"
	"github.com/mandelsoft/coevolution/pkg/version"
)

// Descriptor is the serializable view of an artifact.
// Mappings cannot be serialized and are therefore not described.
type Descriptor struct {
	Kind            Kind              `json:"kind"`
	Version         version.Version   `json:"version"`
	Metamodels      []version.Version `json:"metamodels,omitempty"`
	Dependencies    []version.Version `json:"dependencies,omitempty"`
	ChangedArtifact *version.Version  `json:"changedArtifact,omitempty"`
}

func Describe(a Artifact) Descriptor {
	f := a.fields()
	d := Descriptor{
		Kind:         a.Kind(),
		Version:      f.version,
		Metamodels:   version.Sorted(f.metamodels),
		Dependencies: version.Sorted(f.dependencies),
	}
	if c, ok := a.AsCoEvolutionModel(); ok {
		v := c.changed
		d.ChangedArtifact = &v
	}
	return d
}

// Digest provides a content hash for the described fields of an artifact.
func Digest(a Artifact) string {
	return utils.HashData(Describe(a))
}
