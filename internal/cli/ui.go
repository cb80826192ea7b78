package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/spacegrid/escape"
	"github.com/katalvlaran/spacegrid/grid"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary
	colorGreen  = lipgloss.Color("35")  // Green - stations, success
	colorYellow = lipgloss.Color("220") // Amber - relays, warnings
	colorRed    = lipgloss.Color("167") // Soft red - singularities, errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleStation     = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleNode        = lipgloss.NewStyle().Foreground(colorYellow)
	styleSingularity = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess     = "✓"
	iconWarning     = "!"
	iconInfo        = "›"
	iconArrow       = "→"
	iconCached      = "cached"
	iconFresh       = "fresh"
	iconUnreachable = "·"
	iconSingularity = "#"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints grid statistics on a single line.
func printStats(w io.Writer, res *escape.Result, cached bool) {
	g := res.Grid()
	parts := []string{
		fmt.Sprintf("%dx%d", g.Rows(), g.Cols()),
		fmt.Sprintf("%d stations", g.Count(grid.Station)),
		fmt.Sprintf("%d relays", g.Count(grid.Node)),
		fmt.Sprintf("%d-bit distances", res.Distances().Width()),
	}
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Fprintln(w, line+StyleDim.Render(" · ")+statusStyle.Render(status))
}

// =============================================================================
// Maps
// =============================================================================

// printDistances prints the distance map as right-aligned columns.
// Unreachable cells show a dot, singularities a hash.
func printDistances(w io.Writer, res *escape.Result) {
	g, dist := res.Grid(), res.Distances()
	width := len(strconv.FormatInt(dist.Max(), 10))

	for r := 0; r < g.Rows(); r++ {
		cells := make([]string, g.Cols())
		for c := range cells {
			at := grid.Coord{Row: r, Col: c}
			d := dist.At(at)
			text := strconv.FormatInt(d, 10)
			if d == escape.Unreachable {
				text = iconUnreachable
			}
			if g.At(at) == grid.Singularity {
				text = iconSingularity
			}
			cells[c] = styleFor(g.At(at), d).Render(fmt.Sprintf("%*s", width, text))
		}
		fmt.Fprintln(w, "  "+strings.Join(cells, " "))
	}
}

// printDirections prints the direction map one symbol per cell.
func printDirections(w io.Writer, res *escape.Result) {
	g, dirs := res.Grid(), res.Directions()
	for r := 0; r < g.Rows(); r++ {
		var sb strings.Builder
		for c := 0; c < g.Cols(); c++ {
			at := grid.Coord{Row: r, Col: c}
			sym := string(dirs.At(at).Symbol())
			switch {
			case g.At(at) == grid.Singularity:
				sym = iconSingularity
			case dirs.At(at) == escape.None:
				sym = iconUnreachable
			}
			sb.WriteString(styleFor(g.At(at), res.Distances().At(at)).Render(sym))
		}
		fmt.Fprintln(w, "  "+sb.String())
	}
}

func styleFor(kind grid.CellKind, d int64) lipgloss.Style {
	switch {
	case kind == grid.Station:
		return styleStation
	case kind == grid.Node:
		return styleNode
	case kind == grid.Singularity:
		return styleSingularity
	case d == escape.Unreachable:
		return StyleDim
	default:
		return StyleValue
	}
}
