package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabs/pkg/baseline"
	"github.com/matzehuels/tabs/pkg/buildinfo"
	"github.com/matzehuels/tabs/pkg/httputil"
	tabsio "github.com/matzehuels/tabs/pkg/io"
	"github.com/matzehuels/tabs/pkg/selector"
	"github.com/matzehuels/tabs/pkg/tracker"
)

// runFlags are the output options shared by check and compare.
type runFlags struct {
	tui    bool
	report string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.tui, "tui", false, "show live progress")
	cmd.Flags().StringVar(&f.report, "json", "", "write a JSON report to this path")
}

// track resolves every package in the configured list and classifies the
// outcomes against the baseline loaded from store. Results are printed and,
// if requested, exported as a JSON report. The loaded baseline is returned
// so callers can write back an updated copy. A cancelled run returns the
// context's error and no results.
func (c *CLI) track(cmd *cobra.Command, cfg config, store baseline.Store, flags runFlags) ([]baseline.Result, baseline.Baseline, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	pkgs, err := tabsio.ImportPackages(cfg.Packages)
	if err != nil {
		return nil, nil, err
	}
	rules, err := loadRules(cfg)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
	}
	base, err := baseline.LoadFor(ctx, store, names)
	if err != nil {
		return nil, nil, err
	}

	backend, err := openCache(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	defer backend.Close()

	client := httputil.NewClient(backend, cfg.CacheTTL,
		httputil.WithUserAgent(buildinfo.UserAgent()),
		httputil.WithTimeout(cfg.Timeout),
	)
	opts := tracker.Options{
		Attempts: cfg.Attempts,
		Delay:    cfg.Delay,
		Workers:  cfg.Workers,
		Logger:   logger,
	}

	logger.Debug("tracking", "packages", len(pkgs), "rules", rules.Len(), "baseline", len(base))
	prog := newProgress(logger)

	var outcomes []tracker.Outcome
	if flags.tui {
		opts.Logger = log.New(io.Discard)
		outcomes, err = runTUI(ctx, tracker.New(client, rules, opts), pkgs, cmd.ErrOrStderr())
		if err != nil {
			return nil, nil, err
		}
	} else {
		outcomes = resolveWithSpinner(ctx, tracker.New(client, rules, opts), pkgs, cmd.ErrOrStderr())
	}
	// Outcomes of an interrupted run are partial; nothing may be written back.
	if err := ctx.Err(); err != nil {
		logger.Warn("interrupted, baseline left untouched")
		return nil, nil, err
	}

	results := baseline.DiffAll(outcomes, base)
	sum := summarize(results)
	prog.done("Resolved " + sum.String())
	printResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results)
	if sum.failed > 0 {
		printWarning(cmd.ErrOrStderr(), "%d of %d packages failed", sum.failed, len(results))
	}

	if flags.report != "" {
		runID, _ := runIDFromContext(ctx)
		if err := tabsio.ExportReport(flags.report, tabsio.NewReport(runID, results)); err != nil {
			return nil, nil, err
		}
		printFile(cmd.OutOrStdout(), flags.report)
	}
	return results, base, nil
}

func loadRules(cfg config) (*selector.Table, error) {
	if cfg.Rules == "" {
		return selector.Default(), nil
	}
	return selector.LoadFile(cfg.Rules, selector.Default())
}

// resolveWithSpinner runs t over pkgs, animating a spinner on w when w is a
// terminal.
func resolveWithSpinner(ctx context.Context, t *tracker.Tracker, pkgs []tracker.Package, w io.Writer) []tracker.Outcome {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return t.ResolveAll(ctx, pkgs)
	}
	s := newSpinner(ctx, w, fmt.Sprintf("Resolving %d packages...", len(pkgs)))
	s.Start()
	defer s.Stop()
	return t.ResolveAll(ctx, pkgs)
}
