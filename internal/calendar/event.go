// Package calendar implements the view model of a resource-scheduling calendar:
// partitioning an active date into day sections, normalizing events into
// half-open day ranges, projecting them onto a resource grid, and turning
// pointer drags into reschedule intents.
//
// Nothing in this package performs I/O or returns errors. Malformed input
// degrades to a defined default instead.
package calendar

import (
	"strings"
	"time"

	"github.com/javiermolinar/rota/internal/dateutil"
)

// dateLayouts are the textual forms accepted by DateValue, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// DateValue is an event boundary given either as a time.Time or as text.
// The zero value means "absent".
type DateValue struct {
	t    time.Time
	text string
}

// At wraps a time value.
func At(t time.Time) DateValue {
	return DateValue{t: t}
}

// Text wraps a textual date such as "2024-01-10" or "2024-01-10T14:00".
func Text(s string) DateValue {
	return DateValue{text: strings.TrimSpace(s)}
}

// IsZero reports whether the value is absent.
func (d DateValue) IsZero() bool {
	return d.t.IsZero() && d.text == ""
}

// Time resolves the value to a time in loc. Textual values without an offset
// are read as wall-clock time in loc. ok is false for absent or unparseable
// values.
func (d DateValue) Time(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	if !d.t.IsZero() {
		return d.t.In(loc), true
	}
	if d.text == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, d.text); err == nil {
		return t.In(loc), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, d.text, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// String returns the textual form. Midnight times render as a bare date.
func (d DateValue) String() string {
	if d.t.IsZero() {
		return d.text
	}
	if dateutil.IsMidnight(d.t) {
		return d.t.Format("2006-01-02")
	}
	return d.t.Format(time.RFC3339Nano)
}

// RawEvent is an event as supplied by the caller.
type RawEvent struct {
	ID         string // optional; required for dragging
	Title      string
	Start      DateValue
	End        DateValue // optional
	ResourceID string    // optional; unassigned events are never shown
	Color      string    // optional
}

// CanonicalEvent is a RawEvent reduced to whole local days.
// Start is inclusive, End is exclusive, and End is always after Start.
type CanonicalEvent struct {
	ID         string
	Title      string
	Start      time.Time
	End        time.Time
	ResourceID string
	Color      string

	// Source is a copy of the record this event was normalized from.
	Source RawEvent
}

// Days returns the number of calendar days the event covers.
func (e CanonicalEvent) Days() int {
	return dateutil.DiffDays(e.End, e.Start)
}

// Normalize converts raw events to canonical form, one for one, in order.
func Normalize(events []RawEvent, loc *time.Location) []CanonicalEvent {
	out := make([]CanonicalEvent, len(events))
	for i, ev := range events {
		out[i] = NormalizeEvent(ev, loc)
	}
	return out
}

// NormalizeEvent converts a single raw event.
//
// The start is floored to midnight. A missing or unparseable end gives a
// one-day event. An end with a time of day means "ends during that day" and
// rounds up to the following midnight. An end at or before the start is
// replaced by start + 1 day.
//
// An unparseable start resolves to the zero time, which no section contains.
func NormalizeEvent(raw RawEvent, loc *time.Location) CanonicalEvent {
	startAt, _ := raw.Start.Time(loc)
	start := dateutil.StartOfDay(startAt)
	end := dateutil.AddDays(start, 1)

	if endAt, ok := raw.End.Time(loc); ok {
		e := dateutil.StartOfDay(endAt)
		if !dateutil.IsMidnight(endAt) {
			e = dateutil.AddDays(e, 1)
		}
		if e.After(start) {
			end = e
		}
	}

	return CanonicalEvent{
		ID:         raw.ID,
		Title:      raw.Title,
		Start:      start,
		End:        end,
		ResourceID: raw.ResourceID,
		Color:      raw.Color,
		Source:     raw,
	}
}

// Shift returns the event's source record moved by days and reassigned to
// resourceID. The new bounds are computed from the canonical dates, so an
// irregular original end comes back as a whole-day boundary.
func Shift(ev CanonicalEvent, days int, resourceID string) RawEvent {
	out := ev.Source
	out.Start = At(dateutil.AddDays(ev.Start, days))
	out.End = At(dateutil.AddDays(ev.End, days))
	out.ResourceID = resourceID
	return out
}
