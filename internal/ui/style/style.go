// Package style holds the palette and glyphs shared by the TUI and the
// pretty log handler, so both surfaces speak the same visual language.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Clay   = lipgloss.Color("#C2410C")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
)
