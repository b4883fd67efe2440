package repository

import (
	"slices"

	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/events"
	"github.com/mandelsoft/coevolution/pkg/version"
)

// Repository is the append-only store of all artifacts of an
// ecosystem. Every insertion synchronously propagates the change
// to the interested transformations.
// A Repository is intended for a single writer, it is not
// safe for concurrent use.
type Repository struct {
	artifacts map[version.Version]artifact.Artifact
	order     []version.Version
	history   []Event

	handlers  events.HandlerRegistry[Event]
	observers []Observer
	maxDepth  int

	run *cascade
}

var _ events.HandlerRegistration[Event] = (*Repository)(nil)

func New(opts ...Option) *Repository {
	r := &Repository{
		artifacts: map[version.Version]artifact.Artifact{},
		handlers:  events.NewHandlerRegistry[Event](),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Repository) RegisterHandler(h EventHandler) {
	r.handlers.RegisterHandler(h)
}

func (r *Repository) UnregisterHandler(h EventHandler) {
	r.handlers.UnregisterHandler(h)
}

// GetInstances provides all artifacts conforming to the given
// metamodel version in insertion order.
func (r *Repository) GetInstances(v version.Version) []artifact.Artifact {
	var result []artifact.Artifact
	for _, k := range r.order {
		if a := r.artifacts[k]; a.HasMetamodel(v) {
			result = append(result, a)
		}
	}
	return result
}

// GetDependingTransformations provides all transformations depending on
// the given version in insertion order.
func (r *Repository) GetDependingTransformations(v version.Version) []*artifact.Transformation {
	var result []*artifact.Transformation
	for _, k := range r.order {
		if t, ok := r.artifacts[k].AsTransformation(); ok && t.HasDependency(v) {
			result = append(result, t)
		}
	}
	return result
}

func (r *Repository) GetByVersion(v version.Version) (artifact.Artifact, bool) {
	a, ok := r.artifacts[v]
	return a, ok
}

func (r *Repository) ContainsByVersion(v version.Version) bool {
	_, ok := r.artifacts[v]
	return ok
}

// GetNextVersion provides the successor revision of the given artifact, if stored.
func (r *Repository) GetNextVersion(a artifact.Artifact) (artifact.Artifact, bool) {
	return r.GetByVersion(a.GetVersion().Increment())
}

// GetLatest provides the stored artifact with the highest revision
// for the given name.
func (r *Repository) GetLatest(name string) (artifact.Artifact, bool) {
	list := r.Versions(name)
	if len(list) == 0 {
		return nil, false
	}
	return r.GetByVersion(list[len(list)-1])
}

// Versions provides all stored revisions of the given name.
func (r *Repository) Versions(name string) []version.Version {
	var result []version.Version
	for _, k := range r.order {
		if k.Name == name {
			result = append(result, k)
		}
	}
	slices.SortFunc(result, version.Compare)
	return result
}

func (r *Repository) Len() int {
	return len(r.order)
}

// List provides all stored artifacts in insertion order.
func (r *Repository) List() []artifact.Artifact {
	result := make([]artifact.Artifact, 0, len(r.order))
	for _, k := range r.order {
		result = append(result, r.artifacts[k])
	}
	return result
}

// History provides the insertion events in insertion order.
func (r *Repository) History() []Event {
	return slices.Clone(r.history)
}

// Snapshot describes all stored artifacts in insertion order.
func (r *Repository) Snapshot() []artifact.Descriptor {
	result := make([]artifact.Descriptor, 0, len(r.order))
	for _, k := range r.order {
		result = append(result, artifact.Describe(r.artifacts[k]))
	}
	return result
}
