package version

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Version is the identity of an artifact revision.
// It is a pure value type usable as map key.
type Version struct {
	Name     string `json:"name"`
	Revision int    `json:"revision"`
}

// New provides a version for the given name. Without an explicit
// revision the initial revision 0 is used.
func New(name string, revision ...int) Version {
	v := Version{Name: name}
	if len(revision) > 0 {
		v.Revision = revision[0]
	}
	return v
}

func (v Version) Increment() Version {
	return Version{v.Name, v.Revision + 1}
}

// Decrement provides the previous revision.
// The initial revision has no predecessor and results in
// an *InitialVersionError.
func (v Version) Decrement() (Version, error) {
	if v.IsInitial() {
		return v, &InitialVersionError{v}
	}
	return Version{v.Name, v.Revision - 1}, nil
}

func (v Version) IsInitial() bool {
	return v.Revision == 0
}

func (v Version) IsZero() bool {
	return v.Name == "" && v.Revision == 0
}

func (v Version) String() string {
	return fmt.Sprintf("%s@%d", v.Name, v.Revision)
}

// Parse parses the notation <name>[@<revision>].
func Parse(s string) (Version, error) {
	name, rev, found := strings.Cut(strings.TrimSpace(s), "@")
	if name == "" {
		return Version{}, fmt.Errorf("%w: empty name in %q", ErrInvalidVersion, s)
	}
	if !found {
		return New(name), nil
	}
	r, err := strconv.Atoi(rev)
	if err != nil {
		return Version{}, fmt.Errorf("%w: revision of %q: %s", ErrInvalidVersion, s, err)
	}
	if r < 0 {
		return Version{}, fmt.Errorf("%w: negative revision in %q", ErrInvalidVersion, s)
	}
	return New(name, r), nil
}

func Compare(a, b Version) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.Revision, b.Revision)
}

// Sorted returns the elements of a version set in Compare order.
func Sorted(s sets.Set[Version]) []Version {
	list := s.UnsortedList()
	slices.SortFunc(list, Compare)
	return list
}

// Join renders a version set in Compare order.
func Join(s sets.Set[Version], seps ...string) string {
	sep := ", "
	if len(seps) > 0 {
		sep = seps[0]
	}
	var parts []string
	for _, v := range Sorted(s) {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, sep)
}
