// Package styles holds the palette and lipgloss styles shared by the
// filing browser views.
package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette names the colours the browser draws with.
type Palette struct {
	Accent  lipgloss.Color // headings and the selected row
	Heading lipgloss.Color // table column headings
	Text    lipgloss.Color
	Dim     lipgloss.Color // hints, counts and empty states
	Figure  lipgloss.Color // market values and totals
	Alert   lipgloss.Color
	Rule    lipgloss.Color // borders and separators
	Bar     lipgloss.Color // status bar background
}

// DefaultPalette is the palette used when none is given.
func DefaultPalette() Palette {
	return Palette{
		Accent:  lipgloss.Color("#2563EB"),
		Heading: lipgloss.Color("#10B981"),
		Text:    lipgloss.Color("#E5E7EB"),
		Dim:     lipgloss.Color("#6B7280"),
		Figure:  lipgloss.Color("#34D399"),
		Alert:   lipgloss.Color("#F87171"),
		Rule:    lipgloss.Color("#374151"),
		Bar:     lipgloss.Color("#181825"),
	}
}

// Styles are the rendered styles for one palette.
type Styles struct {
	Title      lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Figure     lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style

	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style
}

// NewStyles renders p into styles.
func NewStyles(p Palette) *Styles {
	text := lipgloss.NewStyle().Foreground(p.Text)
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Normal: text,
		Muted:  lipgloss.NewStyle().Foreground(p.Dim),
		Error:  lipgloss.NewStyle().Foreground(p.Alert),
		Figure: lipgloss.NewStyle().Bold(true).Foreground(p.Figure),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Rule).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.Bar).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Heading).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Rule).
			BorderBottom(true).
			Padding(0, 1),
		TableCell:     text.Padding(0, 1),
		TableSelected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent),
	}
}

// DefaultStyles renders the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Table adapts the styles for a bubbles table.
func (s *Styles) Table() table.Styles {
	return table.Styles{
		Header:   s.TableHeader,
		Cell:     s.TableCell,
		Selected: s.TableSelected,
	}
}
