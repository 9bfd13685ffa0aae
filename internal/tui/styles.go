package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/rota/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a palette.
type Styles struct {
	palette *theme.Palette

	// Title bar
	TitleStyle      lipgloss.Style
	ViewTabStyle    lipgloss.Style
	ViewActiveStyle lipgloss.Style

	// Day header
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	DayHeaderMutedStyle lipgloss.Style // weekends

	// Resource label column
	LabelStyle       lipgloss.Style
	LabelTargetStyle lipgloss.Style // drop target row while dragging

	// Grid cells
	EmptyCellStyle  lipgloss.Style
	TodayCellStyle  lipgloss.Style
	TargetCellStyle lipgloss.Style

	// Event bars; colors are filled in per event
	EventStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	GhostStyle    lipgloss.Style // drag preview
	OriginStyle   lipgloss.Style // event left behind while dragging

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style
	HintStyle   lipgloss.Style
}

// NewStyles creates a new Styles instance from a palette.
func NewStyles(p *theme.Palette) *Styles {
	s := &Styles{palette: p}

	base := lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.Bg)

	s.TitleStyle = base.
		Bold(true).
		Foreground(p.Accent)

	s.ViewTabStyle = base.
		Foreground(p.FgMuted).
		Padding(0, 1)

	s.ViewActiveStyle = s.ViewTabStyle.
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true)

	s.DayHeaderStyle = base.
		Bold(true).
		Align(lipgloss.Center)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Background(p.Today).
		Foreground(p.TextOnToday)

	s.DayHeaderMutedStyle = s.DayHeaderStyle.
		Foreground(p.FgMuted).
		Bold(false)

	s.LabelStyle = base.
		Foreground(p.Accent).
		Background(p.BgHighlight)

	s.LabelTargetStyle = s.LabelStyle.
		Background(p.BgSelection).
		Bold(true)

	s.EmptyCellStyle = base.
		Foreground(p.FgMuted)

	s.TodayCellStyle = s.EmptyCellStyle.
		Background(p.BgHighlight)

	s.TargetCellStyle = s.EmptyCellStyle.
		Background(p.BgSelection)

	s.EventStyle = lipgloss.NewStyle().
		Bold(true)

	s.SelectedStyle = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.TextOnAccent).
		Bold(true)

	s.GhostStyle = lipgloss.NewStyle().
		Background(p.Drag).
		Foreground(p.TextOnDrag).
		Bold(true)

	s.OriginStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.FgMuted).
		Italic(true)

	s.StatusStyle = base.
		Foreground(p.Accent)

	s.ErrorStyle = base.
		Foreground(lipgloss.Color(p.EventHex("red"))).
		Bold(true)

	s.HelpStyle = base.
		Foreground(p.FgMuted)

	s.PromptStyle = lipgloss.NewStyle().
		Background(p.BgSelection).
		Foreground(p.Fg)

	s.HintStyle = s.HelpStyle.
		Italic(true)

	return s
}

// Event returns the bar style for an event color. Past events are muted,
// and alt picks the alternate shade used to separate neighbours.
func (s *Styles) Event(color string, past, alt bool) lipgloss.Style {
	fill := s.palette.Event(color)
	if past {
		fill = s.palette.PastEvent(color)
	}
	bg := fill.Bg
	if alt {
		bg = fill.BgAlt
	}
	return s.EventStyle.
		Background(bg).
		Foreground(fill.Fg)
}
