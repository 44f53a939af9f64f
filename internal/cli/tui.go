package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/observability"
	"github.com/matzehuels/tabs/pkg/tracker"
)

var (
	tuiNameStyle    = lipgloss.NewStyle().Foreground(colorWhite).Width(nameWidth + 2)
	tuiPendingStyle = lipgloss.NewStyle().Foreground(colorDim)
	tuiRetryStyle   = lipgloss.NewStyle().Foreground(colorYellow)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// =============================================================================
// Messages
// =============================================================================

type (
	attemptMsg struct {
		name    string
		attempt int
	}
	attemptFailedMsg struct {
		name    string
		attempt int
		err     error
	}
	resolvedMsg struct {
		name     string
		version  string
		attempts int
		took     time.Duration
	}
	failedMsg struct {
		name string
		err  error
	}
	doneMsg struct{}
	tickMsg struct{}
)

// tuiHooks forwards resolve events into a running program.
type tuiHooks struct {
	send func(tea.Msg)
}

func (h *tuiHooks) OnAttempt(_ context.Context, pkg string, attempt int) {
	h.send(attemptMsg{name: pkg, attempt: attempt})
}

func (h *tuiHooks) OnAttemptFailed(_ context.Context, pkg string, attempt int, err error) {
	h.send(attemptFailedMsg{name: pkg, attempt: attempt, err: err})
}

func (h *tuiHooks) OnResolved(_ context.Context, pkg, version string, attempts int, took time.Duration) {
	h.send(resolvedMsg{name: pkg, version: version, attempts: attempts, took: took})
}

func (h *tuiHooks) OnFailed(_ context.Context, pkg string, err error) {
	h.send(failedMsg{name: pkg, err: err})
}

// =============================================================================
// ProgressModel
// =============================================================================

type rowState int

const (
	rowPending rowState = iota
	rowFetching
	rowRetrying
	rowResolved
	rowFailed
)

type progressRow struct {
	state   rowState
	attempt int
	version string
	err     error
}

// ProgressModel is the bubbletea model for live resolution progress.
type ProgressModel struct {
	Names    []string
	Attempts int

	rows     map[string]*progressRow
	frame    int
	finished int
	done     bool
	aborted  bool
}

// NewProgressModel creates a model with one pending row per package.
func NewProgressModel(pkgs []tracker.Package, attempts int) ProgressModel {
	m := ProgressModel{Attempts: attempts, rows: make(map[string]*progressRow, len(pkgs))}
	for _, p := range pkgs {
		if _, dup := m.rows[p.Name]; dup {
			continue
		}
		m.Names = append(m.Names, p.Name)
		m.rows[p.Name] = &progressRow{}
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case tickMsg:
		m.frame++
		if m.done {
			return m, nil
		}
		return m, tick()
	case attemptMsg:
		if r := m.rows[msg.name]; r != nil {
			r.state, r.attempt = rowFetching, msg.attempt
		}
	case attemptFailedMsg:
		if r := m.rows[msg.name]; r != nil {
			r.state, r.attempt, r.err = rowRetrying, msg.attempt, msg.err
		}
	case resolvedMsg:
		if r := m.rows[msg.name]; r != nil {
			r.state, r.attempt, r.version, r.err = rowResolved, msg.attempts, msg.version, nil
			m.finished++
		}
	case failedMsg:
		if r := m.rows[msg.name]; r != nil {
			r.state, r.err = rowFailed, msg.err
			m.finished++
		}
	case doneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Tracking %d packages", len(m.Names))))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.finished, len(m.Names))))
	b.WriteString("\n\n")

	frame := styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	for _, name := range m.Names {
		r := m.rows[name]
		var icon, status string
		switch r.state {
		case rowPending:
			icon, status = tuiPendingStyle.Render("·"), tuiPendingStyle.Render("waiting")
		case rowFetching:
			icon, status = frame, StyleDim.Render(fmt.Sprintf("attempt %d/%d", r.attempt, m.Attempts))
		case rowRetrying:
			icon = styleIconWarning.Render(iconWarning)
			status = tuiRetryStyle.Render(fmt.Sprintf("retrying after attempt %d: %s", r.attempt, errors.GetCode(r.err)))
		case rowResolved:
			icon, status = styleIconSuccess.Render(iconSuccess), StyleValue.Render(r.version)
		case rowFailed:
			icon, status = styleIconError.Render(iconError), styleIconError.Render(string(errors.GetCode(r.err)))
		}
		b.WriteString(icon + " " + tuiNameStyle.Render(name) + status + "\n")
	}

	if !m.done {
		b.WriteString("\n" + StyleDim.Render("q quit"))
	}
	return b.String() + "\n"
}

// runTUI resolves pkgs while rendering a ProgressModel to w. Quitting the
// view cancels resolution and returns context.Canceled.
func runTUI(ctx context.Context, t *tracker.Tracker, pkgs []tracker.Package, w io.Writer) ([]tracker.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(pkgs, t.Attempts()), tea.WithContext(ctx), tea.WithOutput(w))
	observability.SetResolveHooks(&tuiHooks{send: p.Send})
	defer observability.SetResolveHooks(nil)

	result := make(chan []tracker.Outcome, 1)
	go func() {
		outcomes := t.ResolveAll(ctx, pkgs)
		p.Send(doneMsg{})
		result <- outcomes
	}()

	final, err := p.Run()
	aborted := false
	if m, ok := final.(ProgressModel); ok && m.aborted {
		aborted = true
		cancel()
	}
	outcomes := <-result
	if aborted {
		return nil, context.Canceled
	}
	if err != nil && ctx.Err() == nil {
		return outcomes, errors.Wrap(errors.ErrCodeInternal, err, "run progress view")
	}
	return outcomes, nil
}
