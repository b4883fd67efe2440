package repository

import (
	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/events"
	"github.com/mandelsoft/coevolution/pkg/version"
)

// Event describes the insertion of an artifact.
type Event struct {
	// RunId identifies the cascade started by a caller insertion.
	RunId string
	// Seq is the position in the repository history.
	Seq int
	// Depth is 0 for caller insertions and increases
	// with every transformation step.
	Depth int
	// Requested is the identity of the artifact as handed to AddArtifact.
	Requested version.Version
	// Artifact is the stored artifact.
	Artifact artifact.Artifact
	// Cause is the transformation producing the artifact.
	// It is nil for caller insertions.
	Cause *version.Version
}

// Rekeyed reports whether the requested identity was already
// taken and the artifact has been stored under a newer revision.
func (e Event) Rekeyed() bool {
	return e.Requested != e.Artifact.GetVersion()
}

func (e Event) IsDerived() bool {
	return e.Cause != nil
}

type EventHandler = events.EventHandler[Event]

// Observer gets informed about the activities of a repository.
type Observer interface {
	ArtifactAdded(e Event)
	MappingApplied(t *artifact.Transformation, in artifact.Artifact, out artifact.Artifact, err error)
	CascadeFinished(runid string, added int, depth int, err error)
}

type Option func(r *Repository)

func WithObserver(o Observer) Option {
	return func(r *Repository) {
		r.observers = append(r.observers, o)
	}
}

// WithMaxCascadeDepth limits the number of transformation steps
// of a single cascade. The default 0 means unlimited, termination
// is then up to the guards of the used mapping functions.
func WithMaxCascadeDepth(n int) Option {
	return func(r *Repository) {
		r.maxDepth = n
	}
}

func WithHandler(h EventHandler) Option {
	return func(r *Repository) {
		r.handlers.RegisterHandler(h)
	}
}
