package calendar

import (
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// Navigator holds the active date and view of a calendar page.
type Navigator struct {
	active time.Time
	view   View
	now    func() time.Time
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithClock overrides the clock used by GoToday.
func WithClock(now func() time.Time) NavigatorOption {
	return func(n *Navigator) {
		n.now = now
	}
}

// NewNavigator creates a navigator at active in the given view.
// An invalid view falls back to week.
func NewNavigator(active time.Time, view View, opts ...NavigatorOption) *Navigator {
	n := &Navigator{active: dateutil.StartOfDay(active), now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	n.SetView(view)
	return n
}

// Active returns the active calendar day.
func (n *Navigator) Active() time.Time {
	return n.active
}

// View returns the current view.
func (n *Navigator) View() View {
	return n.view
}

// SetView switches granularity, keeping the active date.
func (n *Navigator) SetView(v View) {
	if _, err := ParseView(string(v)); err != nil {
		v = ViewWeek
	}
	n.view = v
}

// SetActive jumps to the calendar day of t.
func (n *Navigator) SetActive(t time.Time) {
	n.active = dateutil.StartOfDay(t)
}

// GoPrev moves back one view unit.
func (n *Navigator) GoPrev() {
	n.active = Step(n.active, n.view, -1)
}

// GoNext moves forward one view unit.
func (n *Navigator) GoNext() {
	n.active = Step(n.active, n.view, 1)
}

// GoToday resets the active date to the current day.
func (n *Navigator) GoToday() {
	n.active = dateutil.StartOfDay(n.now())
}

// Sections partitions the current page.
func (n *Navigator) Sections() []Section {
	return Partition(n.active, n.view)
}
