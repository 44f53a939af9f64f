package tracker

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabs/pkg/cache"
	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/extract"
	"github.com/matzehuels/tabs/pkg/observability"
	"github.com/matzehuels/tabs/pkg/version"
)

type state int

const (
	stateStart state = iota
	stateAttempt
	stateRetry
	stateResolved
	stateFailed
)

// run is the mutable state of one package's pipeline.
type run struct {
	pkg     Package
	log     *log.Logger
	attempt int
	raw     string
	version string
	err     error
}

// ResolvePackage resolves a single package. It never returns a nil-error
// outcome without a version.
func (t *Tracker) ResolvePackage(ctx context.Context, pkg Package) Outcome {
	start := time.Now()
	r := &run{pkg: pkg, log: t.opts.Logger.With("pkg", pkg.Name)}

	st := stateStart
	for st != stateResolved && st != stateFailed {
		switch st {
		case stateStart:
			st = t.start(r)
		case stateAttempt:
			st = t.attempt(ctx, r)
		case stateRetry:
			st = t.retry(ctx, r)
		}
	}

	out := Outcome{Name: pkg.Name, Attempts: r.attempt, Elapsed: time.Since(start)}
	if st == stateResolved {
		out.Version = r.version
		r.log.Debug("resolved", "version", r.version, "attempts", r.attempt)
		observability.Resolve().OnResolved(ctx, pkg.Name, r.version, r.attempt, out.Elapsed)
	} else {
		out.Err = r.err
		r.log.Debug("failed", "err", r.err)
		observability.Resolve().OnFailed(ctx, pkg.Name, r.err)
	}
	return out
}

func (t *Tracker) start(r *run) state {
	if r.pkg.Upstream == "" {
		r.err = errors.New(errors.ErrCodeEmptyUpstream, "%s has no upstream url", r.pkg.Name)
		return stateFailed
	}
	return stateAttempt
}

func (t *Tracker) attempt(ctx context.Context, r *run) state {
	if err := ctx.Err(); err != nil {
		r.err = err
		return stateFailed
	}

	r.attempt++
	r.raw = ""
	observability.Resolve().OnAttempt(ctx, r.pkg.Name, r.attempt)

	// A retry must see the page as it is now, not a cached incomplete copy.
	fetchCtx := ctx
	if r.attempt > 1 {
		fetchCtx = cache.WithRefresh(ctx)
	}
	page, err := t.fetcher.Fetch(fetchCtx, r.pkg.Upstream)
	if err != nil {
		return r.fail(err)
	}

	query, err := t.rules.Resolve(r.pkg.Upstream, r.pkg.Selector)
	if err != nil {
		return r.fail(err)
	}

	r.raw, err = extract.Extract(page, query)
	if err != nil {
		return r.fail(err)
	}

	r.version, err = version.Normalize(r.raw, r.pkg.Name)
	if err != nil {
		return r.fail(err)
	}
	return stateResolved
}

// fail records err and picks the next state from its code.
func (r *run) fail(err error) state {
	r.err = err
	if errors.Retryable(err) {
		return stateRetry
	}
	return stateFailed
}

func (t *Tracker) retry(ctx context.Context, r *run) state {
	kv := []any{"attempt", r.attempt, "of", t.opts.Attempts, "err", r.err}
	if errors.Is(r.err, errors.ErrCodeVersionNotFound) {
		kv = append(kv, "raw", r.raw)
	}
	r.log.Warn("attempt failed", kv...)
	observability.Resolve().OnAttemptFailed(ctx, r.pkg.Name, r.attempt, r.err)

	if r.attempt >= t.opts.Attempts {
		r.err = errors.Wrap(errors.ErrCodeGenericFailure, r.err, "gave up on %s after %d attempts", r.pkg.Name, r.attempt)
		return stateFailed
	}
	if err := t.sleep(ctx, t.opts.Delay); err != nil {
		r.err = err
		return stateFailed
	}
	return stateAttempt
}
