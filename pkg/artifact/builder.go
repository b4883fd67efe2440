package artifact

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/coevolution/pkg/version"
)

// Builder collects the fields of an artifact of a dedicated kind.
// Build creates an immutable artifact, the builder may be reused
// afterwards without affecting already built artifacts.
type Builder struct {
	kind         Kind
	version      version.Version
	metamodels   sets.Set[version.Version]
	dependencies sets.Set[version.Version]
	mapping      Mapping
	changed      *version.Version
}

func NewBuilder(kind Kind, v version.Version) *Builder {
	return &Builder{
		kind:         kind,
		version:      v,
		metamodels:   sets.New[version.Version](),
		dependencies: sets.New[version.Version](),
	}
}

// NewPlain starts a plain artifact with the initial revision of the given name.
func NewPlain(name string) *Builder {
	return NewBuilder(KIND_PLAIN, version.New(name))
}

func NewTransformation(name string) *Builder {
	return NewBuilder(KIND_TRANSFORMATION, version.New(name))
}

func NewCoEvolutionModel(name string) *Builder {
	return NewBuilder(KIND_COEVOLUTION_MODEL, version.New(name))
}

func (b *Builder) Kind() Kind {
	return b.kind
}

func (b *Builder) WithVersion(v version.Version) *Builder {
	b.version = v
	return b
}

func (b *Builder) WithMetamodel(vs ...version.Version) *Builder {
	b.metamodels.Insert(vs...)
	return b
}

func (b *Builder) WithDependency(vs ...version.Version) *Builder {
	b.dependencies.Insert(vs...)
	return b
}

func (b *Builder) WithMapping(m Mapping) *Builder {
	b.mapping = m
	return b
}

func (b *Builder) WithChangedArtifact(v version.Version) *Builder {
	b.changed = &v
	return b
}

// UpdateMetamodel replaces the predecessor of the given version in
// the metamodel set. If the predecessor is not contained, the set
// is left unchanged.
func (b *Builder) UpdateMetamodel(v version.Version) *Builder {
	replace(b.metamodels, v)
	return b
}

// UpdateDependency replaces the predecessor of the given version in
// the dependency set. If the predecessor is not contained, the set
// is left unchanged.
func (b *Builder) UpdateDependency(v version.Version) *Builder {
	replace(b.dependencies, v)
	return b
}

func replace(s sets.Set[version.Version], v version.Version) {
	if v.IsInitial() {
		return
	}
	p, _ := v.Decrement()
	if s.Has(p) {
		s.Delete(p)
		s.Insert(v)
	}
}

func (b *Builder) Build() (Artifact, error) {
	if b.version.Name == "" {
		return nil, ErrNoIdentity
	}
	c := common{
		version:      b.version,
		metamodels:   b.metamodels.Clone(),
		dependencies: b.dependencies.Clone(),
	}
	switch b.kind {
	case KIND_PLAIN:
		if err := b.noPayload(true, true); err != nil {
			return nil, err
		}
		return &Plain{c}, nil
	case KIND_TRANSFORMATION:
		if err := b.noPayload(false, true); err != nil {
			return nil, err
		}
		if b.mapping == nil {
			return nil, fmt.Errorf("%s: %w", b.version, ErrNoMapping)
		}
		return &Transformation{c, b.mapping}, nil
	case KIND_COEVOLUTION_MODEL:
		if err := b.noPayload(true, false); err != nil {
			return nil, err
		}
		var changed version.Version
		if b.changed != nil {
			changed = *b.changed
		}
		return &CoEvolutionModel{c, changed}, nil
	default:
		return nil, fmt.Errorf("unknown artifact kind %q", b.kind)
	}
}

func (b *Builder) noPayload(mapping, changed bool) error {
	if mapping && b.mapping != nil {
		return fmt.Errorf("%s: %w: mapping for %s", b.version, ErrInvalidPayload, b.kind)
	}
	if changed && b.changed != nil {
		return fmt.Errorf("%s: %w: changed artifact for %s", b.version, ErrInvalidPayload, b.kind)
	}
	return nil
}

// MustBuild is Build for statically known artifact definitions.
func (b *Builder) MustBuild() Artifact {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

// Evolve provides a builder of the same kind prefilled with all
// fields of the given artifact. The artifact itself is not affected
// by any modification of the builder.
func Evolve(a Artifact) *Builder {
	f := a.fields()
	b := &Builder{
		version:      f.version,
		metamodels:   f.metamodels.Clone(),
		dependencies: f.dependencies.Clone(),
	}
	switch o := a.(type) {
	case *Plain:
		b.kind = KIND_PLAIN
	case *Transformation:
		b.kind = KIND_TRANSFORMATION
		b.mapping = o.mapping
	case *CoEvolutionModel:
		b.kind = KIND_COEVOLUTION_MODEL
		b.WithChangedArtifact(o.changed)
	}
	return b
}
