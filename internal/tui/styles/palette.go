package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Theme names.
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

// BuiltinThemes returns the names of the bundled themes.
func BuiltinThemes() []string {
	return []string{ThemeDefault, ThemeMono}
}

// IsValidTheme reports whether name is a bundled theme.
func IsValidTheme(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// ColorPalette defines the color scheme for a theme.
type ColorPalette struct {
	// Primary accent color (titles, indicators)
	Primary lipgloss.Color
	// Secondary accent color (help keys, success)
	Secondary lipgloss.Color
	// Warning color (manual load hint)
	Warning lipgloss.Color
	// Error color (load failures)
	Error lipgloss.Color
	// Muted color (de-emphasized text)
	Muted lipgloss.Color
	// Text color (primary text)
	Text lipgloss.Color
	// Border color (pane borders)
	Border lipgloss.Color
}

// DefaultPalette returns the purple/green dark palette.
func DefaultPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#A78BFA"), // Purple (violet-400)
		Secondary: lipgloss.Color("#10B981"), // Green
		Warning:   lipgloss.Color("#F59E0B"), // Amber
		Error:     lipgloss.Color("#F87171"), // Red (red-400)
		Muted:     lipgloss.Color("#9CA3AF"), // Gray
		Text:      lipgloss.Color("#F9FAFB"), // Light text
		Border:    lipgloss.Color("#6B7280"), // Gray-500
	}
}

// MonoPalette returns a grayscale palette for terminals with poor color support.
func MonoPalette() *ColorPalette {
	return &ColorPalette{
		Primary:   lipgloss.Color("#FFFFFF"),
		Secondary: lipgloss.Color("#D4D4D4"),
		Warning:   lipgloss.Color("#E5E5E5"),
		Error:     lipgloss.Color("#FFFFFF"),
		Muted:     lipgloss.Color("#A3A3A3"),
		Text:      lipgloss.Color("#F5F5F5"),
		Border:    lipgloss.Color("#737373"),
	}
}

// PaletteFor returns the palette for a theme name, falling back to the default.
func PaletteFor(name string) *ColorPalette {
	switch name {
	case ThemeMono:
		return MonoPalette()
	default:
		return DefaultPalette()
	}
}
