package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/version"
)

type cascade struct {
	id       string
	added    int
	maxDepth int

	// depth and cause of insertions done by the
	// currently executed mapping function.
	depth int
	cause *artifact.Transformation
}

// AddArtifact stores the given artifact and propagates the change
// to all interested transformations before returning. If the
// identity is already taken, the artifact is stored as the next free
// revision of its name, all other fields are kept.
// Mapping failures abort the cascade and are returned as *MappingError.
func (r *Repository) AddArtifact(a artifact.Artifact) error {
	if r.run != nil {
		// called from a mapping function, join the active cascade
		return r.add(a, r.run.cause, r.run.depth)
	}

	r.run = &cascade{id: uuid.NewString()}
	run := r.run
	defer func() { r.run = nil }()

	err := r.add(a, nil, 0)
	if err != nil {
		log.LogError(err, "propagation failed for {{artifact}}", "artifact", a.GetVersion(), "runid", run.id)
	}
	for _, o := range r.observers {
		o.CascadeFinished(run.id, run.added, run.maxDepth, err)
	}
	return err
}

// AddArtifacts adds the given artifacts in order. Every artifact
// sees the complete propagation of its predecessors.
// It stops at the first failure.
func (r *Repository) AddArtifacts(list ...artifact.Artifact) error {
	for _, a := range list {
		if err := r.AddArtifact(a); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) add(a artifact.Artifact, cause *artifact.Transformation, depth int) error {
	if r.maxDepth > 0 && depth > r.maxDepth {
		return fmt.Errorf("%w: %d steps reached for %s", ErrCascadeDepthExceeded, r.maxDepth, a.GetVersion())
	}

	requested := a.GetVersion()
	stored := a
	if r.ContainsByVersion(requested) {
		v := requested.Increment()
		for r.ContainsByVersion(v) {
			v = v.Increment()
		}
		n, err := artifact.Evolve(a).WithVersion(v).Build()
		if err != nil {
			return err
		}
		log.Debug("{{requested}} already present, storing as {{version}}", "requested", requested, "version", v, "runid", r.run.id)
		stored = n
	}

	v := stored.GetVersion()
	r.artifacts[v] = stored
	r.order = append(r.order, v)

	e := Event{
		RunId:     r.run.id,
		Seq:       len(r.history),
		Depth:     depth,
		Requested: requested,
		Artifact:  stored,
	}
	if cause != nil {
		c := cause.GetVersion()
		e.Cause = &c
	}
	r.history = append(r.history, e)
	r.run.added++
	if depth > r.run.maxDepth {
		r.run.maxDepth = depth
	}

	log.Debug("added {{artifact}}", "artifact", stored, "depth", depth, "runid", r.run.id)
	for _, o := range r.observers {
		o.ArtifactAdded(e)
	}
	r.handlers.TriggerEvent(e)

	return r.propagate(stored, depth)
}

// propagate wakes up the transformations depending on a metamodel of
// the artifact and, for a transformation, executes it for all
// instances of its dependencies. Every result is added recursively,
// depth first. The query results are taken before executing mappings,
// so artifacts added by the cascade are not visited by the same loop.
func (r *Repository) propagate(a artifact.Artifact, depth int) error {
	for _, m := range version.Sorted(a.GetMetamodels()) {
		for _, t := range r.GetDependingTransformations(m) {
			if err := r.apply(t, a, depth); err != nil {
				return err
			}
		}
	}

	t, ok := a.AsTransformation()
	if !ok {
		return nil
	}
	for _, d := range version.Sorted(t.GetDependencies()) {
		for _, inst := range r.GetInstances(d) {
			if err := r.apply(t, inst, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Repository) apply(t *artifact.Transformation, in artifact.Artifact, depth int) error {
	log.Debug("applying {{transformation}} to {{input}}", "transformation", t.GetVersion(), "input", in.GetVersion(), "runid", r.run.id)
	out, err := r.call(t, in, depth+1)
	if reflect2.IsNil(out) {
		out = nil
	}
	for _, o := range r.observers {
		o.MappingApplied(t, in, out, err)
	}
	if err != nil {
		return &MappingError{Transformation: t.GetVersion(), Input: in.GetVersion(), Err: err}
	}
	if out == nil {
		log.Trace("{{transformation}} not applicable to {{input}}", "transformation", t.GetVersion(), "input", in.GetVersion())
		return nil
	}
	return r.add(out, t, depth+1)
}

func (r *Repository) call(t *artifact.Transformation, in artifact.Artifact, depth int) (artifact.Artifact, error) {
	prevDepth, prevCause := r.run.depth, r.run.cause
	r.run.depth, r.run.cause = depth, t
	defer func() {
		r.run.depth, r.run.cause = prevDepth, prevCause
	}()
	return t.Apply(in)
}
