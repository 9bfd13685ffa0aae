// Package ics converts between iCalendar files and calendar events.
//
// Resources have no native iCalendar property, so the resource of an event is
// carried in an X-ROTA-RESOURCE property. Imports without it fall back to a
// caller-supplied resource.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"

	"github.com/javiermolinar/rota/internal/calendar"
)

const (
	// PropertyResource holds the resource id of an exported event.
	PropertyResource ical.ComponentProperty = "X-ROTA-RESOURCE"

	propertyColor ical.ComponentProperty = "COLOR"
)

const productID = "-//rota//resource calendar//EN"

// ErrMissingStart is reported for a VEVENT without a usable DTSTART.
var ErrMissingStart = errors.New("missing DTSTART")

// DecodeOptions tune how VEVENTs map to events.
type DecodeOptions struct {
	// Resource is assigned to events without an X-ROTA-RESOURCE property.
	Resource string
}

// Decode reads every VEVENT in r. Events that cannot be converted are
// skipped and logged; the returned slice keeps file order.
func Decode(r io.Reader, opts DecodeOptions) ([]calendar.RawEvent, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var events []calendar.RawEvent
	for _, ve := range cal.Events() {
		ev, err := decodeEvent(ve, opts)
		if err != nil {
			log.Warn().Err(err).Str("uid", ev.ID).Msg("skipping vevent")
			continue
		}
		events = append(events, ev)
	}

	log.Debug().Int("event_count", len(events)).Msg("ics decode completed")
	return events, nil
}

func decodeEvent(ve *ical.VEvent, opts DecodeOptions) (calendar.RawEvent, error) {
	ev := calendar.RawEvent{ResourceID: opts.Resource}
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		ev.ID = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if p := ve.GetProperty(propertyColor); p != nil {
		ev.Color = p.Value
	}
	if p := ve.GetProperty(PropertyResource); p != nil && strings.TrimSpace(p.Value) != "" {
		ev.ResourceID = strings.TrimSpace(p.Value)
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return ev, ErrMissingStart
	}
	start, err := dateValue(startProp, ve.GetStartAt)
	if err != nil {
		return ev, fmt.Errorf("%w: %v", ErrMissingStart, err)
	}
	ev.Start = start

	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		end, err := dateValue(endProp, ve.GetEndAt)
		if err != nil {
			log.Debug().Err(err).Str("uid", ev.ID).Msg("ignoring unreadable DTEND")
		} else {
			ev.End = end
		}
	}

	return ev, nil
}

// dateValue converts a DTSTART or DTEND property. Date-only values keep
// their calendar date as text so they stay midnight in any zone; date-times
// go through the library so TZID parameters are honoured.
func dateValue(p *ical.IANAProperty, timed func() (time.Time, error)) (calendar.DateValue, error) {
	if isAllDay(p) {
		d, err := time.Parse("20060102", strings.TrimSpace(p.Value))
		if err != nil {
			return calendar.DateValue{}, err
		}
		return calendar.Text(d.Format("2006-01-02")), nil
	}
	t, err := timed()
	if err != nil {
		return calendar.DateValue{}, err
	}
	return calendar.At(t), nil
}

func isAllDay(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// Encode writes events as all-day VEVENTs. Canonical ranges are already
// half-open whole days, which is exactly the iCalendar DATE semantics for
// DTSTART/DTEND. stamp is used for DTSTAMP.
func Encode(w io.Writer, events []calendar.CanonicalEvent, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, ev := range events {
		if ev.ID == "" {
			continue
		}
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(stamp)
		ve.SetAllDayStartAt(ev.Start)
		ve.SetAllDayEndAt(ev.End)
		if ev.Title != "" {
			ve.SetSummary(ev.Title)
		}
		if ev.Color != "" {
			ve.SetProperty(propertyColor, ev.Color)
		}
		if ev.ResourceID != "" {
			ve.SetProperty(PropertyResource, ev.ResourceID)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
