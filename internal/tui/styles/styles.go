// Package styles holds the lipgloss styles used by the lazyfeed TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles is the set of styles derived from one palette.
type Styles struct {
	Palette *ColorPalette

	Title     lipgloss.Style
	Item      lipgloss.Style
	ItemID    lipgloss.Style
	Author    lipgloss.Style
	Muted     lipgloss.Style
	ErrorMsg  lipgloss.Style
	Hint      lipgloss.Style
	Indicator lipgloss.Style
	Spinner   lipgloss.Style
	Pane      lipgloss.Style
	Document  lipgloss.Style
	StatusBar lipgloss.Style
}

// New builds the styles for a palette. A nil palette uses DefaultPalette.
func New(p *ColorPalette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	return &Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Item: lipgloss.NewStyle().
			Foreground(p.Text),

		ItemID: lipgloss.NewStyle().
			Foreground(p.Muted).
			Width(6).
			Align(lipgloss.Right).
			MarginRight(2),

		Author: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(p.Muted),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true),

		Hint: lipgloss.NewStyle().
			Foreground(p.Warning),

		Indicator: lipgloss.NewStyle().
			Foreground(p.Secondary).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(p.Primary),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),

		Document: lipgloss.NewStyle(),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Muted),
	}
}

// ForTheme builds the styles for a theme name.
func ForTheme(name string) *Styles {
	return New(PaletteFor(name))
}
