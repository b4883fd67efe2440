package app

import (
	"strconv"
	"strings"

	"github.com/mandelsoft/coevolution/pkg/artifact"
	"github.com/mandelsoft/coevolution/pkg/repository"
	"github.com/mandelsoft/coevolution/pkg/version"
)

// Entry is the serializable form of a repository event.
type Entry struct {
	Seq       int              `json:"seq"`
	Depth     int              `json:"depth"`
	Requested version.Version  `json:"requested"`
	Version   version.Version  `json:"version"`
	Kind      artifact.Kind    `json:"kind"`
	Cause     *version.Version `json:"cause,omitempty"`
}

// Report describes the result of a scenario run.
type Report struct {
	Scenario  string                `json:"scenario"`
	Seed      *int64                `json:"seed,omitempty"`
	Artifacts []artifact.Descriptor `json:"artifacts"`
	History   []Entry               `json:"history"`
}

func NewReport(scenario string, repo *repository.Repository) *Report {
	r := &Report{
		Scenario:  scenario,
		Artifacts: repo.Snapshot(),
	}
	for _, e := range repo.History() {
		n := Entry{
			Seq:       e.Seq,
			Depth:     e.Depth,
			Requested: e.Requested,
			Version:   e.Artifact.GetVersion(),
			Kind:      e.Artifact.Kind(),
			Cause:     e.Cause,
		}
		r.History = append(r.History, n)
	}
	return r
}

// Table provides the history as table.
func (r *Report) Table() ([]string, [][]string) {
	descs := map[version.Version]artifact.Descriptor{}
	for _, d := range r.Artifacts {
		descs[d.Version] = d
	}

	var fields [][]string
	for _, e := range r.History {
		d := descs[e.Version]
		cause := ""
		if e.Cause != nil {
			cause = e.Cause.String()
		}
		fields = append(fields, []string{
			strconv.Itoa(e.Seq), strconv.Itoa(e.Depth), e.Version.String(), string(e.Kind),
			join(d.Metamodels), join(d.Dependencies), cause,
		})
	}
	return []string{"SEQ", "DEPTH", "ARTIFACT", "KIND", "METAMODELS", "DEPENDENCIES", "CAUSE"}, fields
}

func join(list []version.Version) string {
	s := make([]string, len(list))
	for i, v := range list {
		s[i] = v.String()
	}
	return strings.Join(s, ",")
}
