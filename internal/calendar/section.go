package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// ErrUnknownView is returned by ParseView for unrecognized names.
var ErrUnknownView = errors.New("view must be 'day', 'week', 'month' or 'year'")

// View is the granularity of the calendar page.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// Views lists all views in display order.
func Views() []View {
	return []View{ViewDay, ViewWeek, ViewMonth, ViewYear}
}

// ParseView parses a view name, case-insensitively.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Section is a contiguous run of calendar days rendered as one grid page.
// End is exclusive: it is the day after the last entry in Days.
type Section struct {
	Key   string
	Title string
	Start time.Time
	End   time.Time
	Days  []time.Time
}

// Contains reports whether day t falls inside the section.
func (s Section) Contains(t time.Time) bool {
	d := dateutil.StartOfDay(t)
	return !d.Before(s.Start) && d.Before(s.End)
}

// Column returns the zero-based day column of t, or -1 if t is outside.
func (s Section) Column(t time.Time) int {
	if !s.Contains(t) {
		return -1
	}
	return dateutil.DiffDays(t, s.Start)
}

// Partition splits the view containing active into sections.
// Day, week and month views produce one section; year produces twelve,
// one per month. An unknown view produces none.
func Partition(active time.Time, view View) []Section {
	day := dateutil.StartOfDay(active)

	switch view {
	case ViewDay:
		return []Section{newSection(view, day, day)}
	case ViewWeek:
		monday, sunday := dateutil.WeekRange(day)
		return []Section{newSection(view, monday, sunday)}
	case ViewMonth:
		first, last := dateutil.MonthRange(day)
		return []Section{newSection(view, first, last)}
	case ViewYear:
		sections := make([]Section, 0, 12)
		for m := time.January; m <= time.December; m++ {
			first, last := dateutil.MonthRange(time.Date(day.Year(), m, 1, 0, 0, 0, 0, day.Location()))
			sections = append(sections, newSection(view, first, last))
		}
		return sections
	default:
		return nil
	}
}

func newSection(view View, first, last time.Time) Section {
	days := make([]time.Time, 0, dateutil.DiffDays(last, first)+1)
	for d := first; !d.After(last); d = dateutil.AddDays(d, 1) {
		days = append(days, d)
	}
	return Section{
		Key:   sectionKey(view, first),
		Title: sectionTitle(view, first, last),
		Start: first,
		End:   dateutil.AddDays(last, 1),
		Days:  days,
	}
}

func sectionKey(view View, start time.Time) string {
	switch view {
	case ViewDay:
		return start.Format("2006-01-02")
	case ViewWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return start.Format("2006-01")
	}
}

func sectionTitle(view View, first, last time.Time) string {
	switch view {
	case ViewDay:
		return first.Format("Mon Jan 2, 2006")
	case ViewWeek:
		if first.Year() != last.Year() {
			return first.Format("Jan 2, 2006") + " – " + last.Format("Jan 2, 2006")
		}
		return first.Format("Jan 2") + " – " + last.Format("Jan 2, 2006")
	default:
		return first.Format("January 2006")
	}
}

// Step moves active by n view units: days, weeks, months or years.
// Month and year steps follow time.AddDate rollover, so Jan 31 + 1 month
// lands in March.
func Step(active time.Time, view View, n int) time.Time {
	switch view {
	case ViewDay:
		return dateutil.AddDays(active, n)
	case ViewWeek:
		return dateutil.AddDays(active, 7*n)
	case ViewMonth:
		return dateutil.AddMonths(active, n)
	case ViewYear:
		return dateutil.AddYears(active, n)
	default:
		return active
	}
}
