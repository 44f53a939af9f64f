package baseline

import (
	"context"
	"maps"
	"strings"

	"github.com/matzehuels/tabs/pkg/tracker"
	"github.com/matzehuels/tabs/pkg/version"
)

// Baseline maps package names to their last recorded version.
type Baseline map[string]string

// Lookup returns the recorded version for name.
func (b Baseline) Lookup(name string) (string, bool) {
	v, ok := b[name]
	return v, ok
}

func identifier(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// Store loads and persists a Baseline.
type Store interface {
	Load(ctx context.Context) (Baseline, error)
	Save(ctx context.Context, b Baseline) error
}

// identifierKeyed is implemented by stores backed by shell variables,
// whose keys cannot hold "-" or ".".
type identifierKeyed interface {
	identifierKeys()
}

// LoadFor loads the baseline of s for the named packages. For stores backed
// by shell variables, a name without an exact entry is matched through its
// identifier form (xdg-utils -> xdg_utils). Every other store is keyed by
// exact name.
func LoadFor(ctx context.Context, s Store, names []string) (Baseline, error) {
	b, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := s.(identifierKeyed); !ok {
		return b, nil
	}
	out := maps.Clone(b)
	for _, name := range names {
		if _, ok := out[name]; ok {
			continue
		}
		if v, ok := b[identifier(name)]; ok {
			out[name] = v
		}
	}
	return out, nil
}

// Kind classifies a package's outcome against the baseline.
type Kind int

const (
	KindFailed Kind = iota
	KindNew
	KindChanged
	KindUnchanged
)

func (k Kind) String() string {
	switch k {
	case KindNew:
		return "new"
	case KindChanged:
		return "changed"
	case KindUnchanged:
		return "unchanged"
	}
	return "failed"
}

// Result is the classification of one package.
type Result struct {
	Name      string
	Kind      Kind
	Old       string            // Baseline version (changed, unchanged)
	New       string            // Resolved version (new, changed, unchanged)
	Direction version.Direction // Set for changed results
	Err       error             // Set for failed results
}

// Diff classifies outcome against base.
func Diff(outcome tracker.Outcome, base Baseline) Result {
	r := Result{Name: outcome.Name}
	if !outcome.Resolved() {
		r.Kind = KindFailed
		r.Err = outcome.Err
		return r
	}

	r.New = outcome.Version
	old, ok := base.Lookup(outcome.Name)
	switch {
	case !ok:
		r.Kind = KindNew
	case old != outcome.Version:
		r.Kind = KindChanged
		r.Old = old
		r.Direction = version.Compare(old, outcome.Version)
	default:
		r.Kind = KindUnchanged
		r.Old = old
	}
	return r
}

// DiffAll classifies every outcome, preserving order.
func DiffAll(outcomes []tracker.Outcome, base Baseline) []Result {
	out := make([]Result, len(outcomes))
	for i, o := range outcomes {
		out[i] = Diff(o, base)
	}
	return out
}

// Apply returns the baseline to persist after a run: one entry per
// package that resolved, holding its new version. Failed packages and
// packages absent from results are dropped. base is not modified.
func Apply(base Baseline, results []Result) Baseline {
	next := make(Baseline, len(results))
	for _, r := range results {
		if r.Kind != KindFailed {
			next[r.Name] = r.New
		}
	}
	return next
}
