package artifact

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/coevolution/pkg/version"
)

type Kind string

const (
	KIND_PLAIN             Kind = "Plain"
	KIND_TRANSFORMATION    Kind = "Transformation"
	KIND_COEVOLUTION_MODEL Kind = "CoEvolutionModel"
)

// Mapping is the function carried by a Transformation.
// A nil result without error means the transformation is not
// applicable to the given input. Mappings must be pure, total and
// fast. This is not checked: a mapping must guard itself against
// being re-triggered by its own results, otherwise a propagation
// cascade does not terminate.
type Mapping func(in Artifact) (Artifact, error)

// Artifact is the closed set of artifact shapes:
// *Plain, *Transformation and *CoEvolutionModel.
// Artifacts are immutable, the set accessors always
// return copies.
type Artifact interface {
	GetVersion() version.Version
	GetMetamodels() sets.Set[version.Version]
	GetDependencies() sets.Set[version.Version]
	HasMetamodel(v version.Version) bool
	HasDependency(v version.Version) bool

	Kind() Kind

	// AsTransformation never fails, it just reports
	// whether the artifact is a transformation.
	AsTransformation() (*Transformation, bool)
	AsCoEvolutionModel() (*CoEvolutionModel, bool)

	String() string

	fields() *common
}

type common struct {
	version      version.Version
	metamodels   sets.Set[version.Version]
	dependencies sets.Set[version.Version]
}

func (c *common) fields() *common {
	return c
}

func (c *common) GetVersion() version.Version {
	return c.version
}

func (c *common) GetMetamodels() sets.Set[version.Version] {
	return c.metamodels.Clone()
}

func (c *common) GetDependencies() sets.Set[version.Version] {
	return c.dependencies.Clone()
}

func (c *common) HasMetamodel(v version.Version) bool {
	return c.metamodels.Has(v)
}

func (c *common) HasDependency(v version.Version) bool {
	return c.dependencies.Has(v)
}

func (c *common) AsTransformation() (*Transformation, bool) {
	return nil, false
}

func (c *common) AsCoEvolutionModel() (*CoEvolutionModel, bool) {
	return nil, false
}

func (c *common) describe(k Kind) string {
	return fmt.Sprintf("%s[%s] metamodels=[%s] dependencies=[%s]", c.version, k, version.Join(c.metamodels), version.Join(c.dependencies))
}

////////////////////////////////////////////////////////////////////////////////

// Plain is a model or metamodel without additional payload.
type Plain struct {
	common
}

var _ Artifact = (*Plain)(nil)

func (p *Plain) Kind() Kind {
	return KIND_PLAIN
}

func (p *Plain) String() string {
	return p.describe(KIND_PLAIN)
}

////////////////////////////////////////////////////////////////////////////////

// Transformation is an artifact carrying a mapping, which is
// triggered for artifacts conforming to one of its dependencies.
type Transformation struct {
	common
	mapping Mapping
}

var _ Artifact = (*Transformation)(nil)

func (t *Transformation) Kind() Kind {
	return KIND_TRANSFORMATION
}

func (t *Transformation) AsTransformation() (*Transformation, bool) {
	return t, true
}

func (t *Transformation) GetMapping() Mapping {
	return t.mapping
}

// Apply executes the mapping for the given input.
func (t *Transformation) Apply(in Artifact) (Artifact, error) {
	return t.mapping(in)
}

func (t *Transformation) String() string {
	return t.describe(KIND_TRANSFORMATION)
}

////////////////////////////////////////////////////////////////////////////////

// CoEvolutionModel records the change of the artifact revision
// it refers to.
type CoEvolutionModel struct {
	common
	changed version.Version
}

var _ Artifact = (*CoEvolutionModel)(nil)

func (c *CoEvolutionModel) Kind() Kind {
	return KIND_COEVOLUTION_MODEL
}

func (c *CoEvolutionModel) AsCoEvolutionModel() (*CoEvolutionModel, bool) {
	return c, true
}

func (c *CoEvolutionModel) GetChangedArtifact() version.Version {
	return c.changed
}

func (c *CoEvolutionModel) String() string {
	return fmt.Sprintf("%s changed=%s", c.describe(KIND_COEVOLUTION_MODEL), c.changed)
}
