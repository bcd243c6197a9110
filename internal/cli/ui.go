package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/splitgrid/pkg/grid"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
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
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleHorizontal = lipgloss.NewStyle().Foreground(colorBlue)
	styleVertical   = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints grid statistics on a single line.
func printStats(regions, dividers, drags int) {
	parts := []string{
		fmt.Sprintf("%d regions", regions),
		fmt.Sprintf("%d dividers", dividers),
	}
	if drags > 0 {
		parts = append(parts, fmt.Sprintf("%d drags", drags))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return cellStyle
		})
}

// regionTable renders one row per region in ascending label order.
func regionTable(g *grid.Grid) string {
	t := newTable("Label", "Element", "X", "Y", "Width", "Height")
	for _, r := range g.Regions() {
		pos, size := r.Position(), r.Size()
		t.Row(strconv.Itoa(r.Label()), r.ElementID(), num(pos.X), num(pos.Y), num(size.W), num(size.H))
	}
	return t.Render()
}

// dividerTable renders one row per divider, -2 first.
func dividerTable(g *grid.Grid) string {
	t := newTable("ID", "Orientation", "X", "Y", "Length", "Before", "After")
	for _, d := range g.Dividers() {
		pos := d.Position()
		orient := d.Orientation().String()
		if d.Orientation() == grid.Horizontal {
			orient = styleHorizontal.Render(orient)
		} else {
			orient = styleVertical.Render(orient)
		}
		t.Row(strconv.Itoa(d.ID()), orient, num(pos.X), num(pos.Y), num(d.Length()), labels(d.Before()), labels(d.After()))
	}
	return t.Render()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func labels(ls []int) string {
	s := ""
	for i, l := range ls {
		if i > 0 {
			s += ","
		}
		s += strconv.Itoa(l)
	}
	return s
}
