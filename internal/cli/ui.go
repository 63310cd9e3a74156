package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/connline/pkg/scene"
)

// stdout receives all status output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary
	colorGreen  = lipgloss.Color("35")  // success, cache hits
	colorYellow = lipgloss.Color("220") // warnings, missing regions
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // labels
	colorDim    = lipgloss.Color("240") // muted text, borders
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleSide     = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey      = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

func printLine(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(stdout, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printLine(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printLine(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printLine(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printLine(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Run Summaries
// =============================================================================

// runStats summarises one layout or render run.
type runStats struct {
	connectors    int
	regionsWanted int
	regionsFound  int
	elapsed       time.Duration
	cached        bool
}

// String renders the stats as "2 connectors · 3/4 regions · 12ms · fresh".
func (s runStats) String() string {
	var parts []string
	if s.connectors > 0 {
		parts = append(parts, StyleDim.Render(plural(s.connectors, "connector")))
	}
	if s.regionsWanted > 0 {
		regions := fmt.Sprintf("%d/%d regions", s.regionsFound, s.regionsWanted)
		if s.regionsFound < s.regionsWanted {
			parts = append(parts, StyleWarning.Render(regions))
		} else {
			parts = append(parts, StyleDim.Render(regions))
		}
	}
	if s.elapsed > 0 {
		parts = append(parts, StyleDim.Render(s.elapsed.Round(time.Millisecond).String()))
	}
	if s.cached {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(s runStats) {
	fmt.Fprintln(stdout, "  "+s.String())
}

// connectorSummary renders "a-b  #a right → left #b".
func connectorSummary(l scene.Laid) string {
	return fmt.Sprintf("%s  %s %s %s %s %s",
		StyleValue.Render(l.Connector.ID),
		l.Connector.From,
		styleSide.Render(l.Result.FromDirection.String()),
		StyleDim.Render(iconArrow),
		styleSide.Render(l.Result.ToDirection.String()),
		l.Connector.To)
}

// printConnectors lists each laid connector with its chosen sides.
func printConnectors(laid []scene.Laid) {
	for _, l := range laid {
		fmt.Fprintln(stdout, "  "+connectorSummary(l))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
