package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tabs/pkg/baseline"
	"github.com/matzehuels/tabs/pkg/errors"
	"github.com/matzehuels/tabs/pkg/version"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, upgrades
	colorYellow = lipgloss.Color("220") // Amber - warnings, retries
	colorRed    = lipgloss.Color("167") // Soft red - errors, old versions
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleOld       = lipgloss.NewStyle().Foreground(colorRed)
	styleNew       = lipgloss.NewStyle().Foreground(colorRed)
	styleUpgrade   = lipgloss.NewStyle().Foreground(colorGreen)
	styleDowngrade = lipgloss.NewStyle().Foreground(colorYellow)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// nameWidth pads package names so versions line up.
const nameWidth = 16

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Results
// =============================================================================

// formatResult renders one resolved package:
//
//	bash             = 5.2.21
//	zstd             = 1.5.5 -> 1.5.6
//	foot             = 1.17.2 (new)
//
// Failed results render as an error line.
func formatResult(r baseline.Result) string {
	name := fmt.Sprintf("%-*s", nameWidth, r.Name)
	switch r.Kind {
	case baseline.KindNew:
		return name + " = " + r.New + " " + styleNew.Render("(new)")
	case baseline.KindChanged:
		return name + " = " + styleOld.Render(r.Old) + " -> " + directionStyle(r.Direction).Render(r.New)
	case baseline.KindUnchanged:
		return name + " = " + r.New
	}
	return fmt.Sprintf("%s %s: %s", styleIconError.Render(iconError), r.Name, errors.UserMessage(r.Err))
}

func directionStyle(d version.Direction) lipgloss.Style {
	switch d {
	case version.Upgrade:
		return styleUpgrade
	case version.Downgrade:
		return styleDowngrade
	}
	return lipgloss.NewStyle()
}

// printResults writes resolved packages to out and failures to errOut.
func printResults(out, errOut io.Writer, results []baseline.Result) {
	for _, r := range results {
		if r.Kind == baseline.KindFailed {
			fmt.Fprintln(errOut, formatResult(r))
			continue
		}
		fmt.Fprintln(out, formatResult(r))
	}
}

// summary counts results per kind.
type summary struct {
	changed, added, unchanged, failed int
}

func summarize(results []baseline.Result) summary {
	var s summary
	for _, r := range results {
		switch r.Kind {
		case baseline.KindChanged:
			s.changed++
		case baseline.KindNew:
			s.added++
		case baseline.KindUnchanged:
			s.unchanged++
		default:
			s.failed++
		}
	}
	return s
}

func (s summary) String() string {
	return fmt.Sprintf("%d changed, %d new, %d unchanged, %d failed", s.changed, s.added, s.unchanged, s.failed)
}
