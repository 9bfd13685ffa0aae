// Package tui provides the terminal user interface for rota.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/tui/commands"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt      // go-to-date prompt is focused
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   calendar.Repository
	config *config.Config
	loc    *time.Location
	now    func() time.Time

	// Theme and styles
	palette *theme.Palette
	styles  *Styles

	// Calendar engine
	nav  *calendar.Navigator
	drag *calendar.DragController
	vm   *calendar.ViewModel

	// Loaded data
	resources []calendar.Resource
	events    []calendar.RawEvent
	loadStart time.Time // range requested by the last LoadPage
	loadEnd   time.Time
	loading   bool

	// State
	mode     Mode
	selected string // selected event id

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLocation sets the zone used to resolve event dates.
func WithLocation(loc *time.Location) ModelOption {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// New creates a new TUI model.
func New(repo calendar.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Placeholder = "today, next-monday, 2024-03-01"
	ti.Prompt = "go to: "
	ti.CharLimit = 32

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	palette := theme.NewPalette(t)

	m := Model{
		repo:    repo,
		config:  cfg,
		loc:     time.Local,
		now:     time.Now,
		palette: palette,
		styles:  NewStyles(palette),
		vm:      calendar.NewViewModel(calendar.DefaultCacheSize),
		mode:    ModeNormal,
		prompt:  ti,
	}
	if loc, err := cfg.Location(); err == nil {
		m.loc = loc
	}
	for _, opt := range opts {
		opt(&m)
	}

	today := m.now().In(m.loc)
	m.nav = calendar.NewNavigator(today, cfg.View(), calendar.WithClock(func() time.Time {
		return m.now().In(m.loc)
	}))
	m.drag = calendar.NewDragController(calendar.WithOnReschedule(LogReschedule))
	m.loadStart, m.loadEnd = m.pageRange()
	m.loading = repo != nil

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.repo == nil {
		return nil
	}
	return commands.LoadPage(m.repo, m.loadStart, m.loadEnd)
}

// sections returns the sections of the current view.
func (m Model) sections() []calendar.Section {
	return m.vm.Partition(m.nav.Active(), m.nav.View())
}

// section returns the section on screen: the one holding the active day.
func (m Model) section() (calendar.Section, bool) {
	sections := m.sections()
	if len(sections) == 0 {
		return calendar.Section{}, false
	}
	active := m.nav.Active()
	for _, s := range sections {
		if s.Contains(active) {
			return s, true
		}
	}
	return sections[0], true
}

// pageRange returns the day range covered by all sections of the view, so
// paging through a year does not hit the database.
func (m Model) pageRange() (time.Time, time.Time) {
	sections := m.sections()
	if len(sections) == 0 {
		day := m.nav.Active()
		return day, day.AddDate(0, 0, 1)
	}
	return sections[0].Start, sections[len(sections)-1].End
}

// positioned returns the events placed on the visible section.
func (m Model) positioned() []calendar.PositionedEvent {
	section, ok := m.section()
	if !ok {
		return nil
	}
	canonical := m.vm.Normalize(m.events, m.loc)
	return m.vm.Project(section, m.resources, canonical)
}

// Run starts the TUI.
func Run(repo calendar.Repository, cfg *config.Config) error {
	if repo == nil {
		return fmt.Errorf("no repository")
	}
	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
