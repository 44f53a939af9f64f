package tracker

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tabs/pkg/selector"
)

const (
	// DefaultAttempts is the fetch budget per package.
	DefaultAttempts = 7

	// DefaultDelay is the fixed wait between attempts.
	DefaultDelay = 1337 * time.Millisecond
)

// Package describes one tracked package.
type Package struct {
	Name     string // Baseline key; also stripped from the extracted text
	Upstream string // Releases page URL
	Selector string // Optional CSS query overriding the rule table
}

// Outcome is the result of resolving one package. Exactly one of Version
// and Err is set.
type Outcome struct {
	Name     string
	Version  string
	Err      error
	Attempts int           // Fetch attempts made
	Elapsed  time.Duration // Wall time including retry delays
}

// Resolved reports whether the package resolved to a version.
func (o Outcome) Resolved() bool { return o.Err == nil }

// Fetcher retrieves the HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options tunes a Tracker. Zero values select the defaults.
type Options struct {
	Attempts int           // Max fetch attempts per package (default 7)
	Delay    time.Duration // Wait between attempts (default 1337ms)
	Workers  int           // Max packages in flight; 0 means one goroutine per package
	Logger   *log.Logger   // Per-attempt diagnostics; nil discards them
}

// WithDefaults returns a copy of o with zero fields set to their defaults.
func (o Options) WithDefaults() Options {
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Delay <= 0 {
		o.Delay = DefaultDelay
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Tracker resolves packages against a fetcher and a selector table.
// It holds no per-run state and is safe for concurrent use.
type Tracker struct {
	fetcher Fetcher
	rules   *selector.Table
	opts    Options
	sleep   func(context.Context, time.Duration) error
}

// New creates a Tracker. A nil rules table selects [selector.Default].
func New(f Fetcher, rules *selector.Table, opts Options) *Tracker {
	if rules == nil {
		rules = selector.Default()
	}
	return &Tracker{
		fetcher: f,
		rules:   rules,
		opts:    opts.WithDefaults(),
		sleep:   sleepCtx,
	}
}

// Attempts returns the per-package attempt budget.
func (t *Tracker) Attempts() int { return t.opts.Attempts }

// ResolveAll resolves every package concurrently and returns one outcome
// per distinct package name, in the order names first appear in pkgs.
// Later entries reusing a name are skipped.
func (t *Tracker) ResolveAll(ctx context.Context, pkgs []Package) []Outcome {
	unique := make([]Package, 0, len(pkgs))
	seen := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		if seen[p.Name] {
			t.opts.Logger.Warn("duplicate package skipped", "pkg", p.Name, "url", p.Upstream)
			continue
		}
		seen[p.Name] = true
		unique = append(unique, p)
	}

	var g errgroup.Group
	if t.opts.Workers > 0 {
		g.SetLimit(t.opts.Workers)
	}
	results := newCollector()
	for _, p := range unique {
		g.Go(func() error {
			results.add(t.ResolvePackage(ctx, p))
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Outcome, 0, len(unique))
	for _, p := range unique {
		out = append(out, results.get(p.Name))
	}
	return out
}

type collector struct {
	mu       sync.Mutex
	outcomes map[string]Outcome
}

func newCollector() *collector {
	return &collector{outcomes: make(map[string]Outcome)}
}

func (c *collector) add(o Outcome) {
	c.mu.Lock()
	c.outcomes[o.Name] = o
	c.mu.Unlock()
}

func (c *collector) get(name string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcomes[name]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
