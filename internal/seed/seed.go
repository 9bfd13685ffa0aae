// Package seed loads resources and events from fixture files into a
// calendar repository.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/ics"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor iCalendar.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Fixture is the YAML document layout.
//
//	resources:
//	  - id: r1
//	    title: Room 1
//	events:
//	  - id: e1
//	    title: Inspection
//	    start: 2024-01-10
//	    end: 2024-01-11T15:00
//	    resource: r1
//	    color: teal
type Fixture struct {
	Resources []ResourceDoc `yaml:"resources"`
	Events    []EventDoc    `yaml:"events"`
}

// ResourceDoc is a resource entry in a fixture.
type ResourceDoc struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// EventDoc is an event entry in a fixture. Dates stay text so any form
// accepted by calendar.Text can be used.
type EventDoc struct {
	ID       string `yaml:"id,omitempty"`
	Title    string `yaml:"title"`
	Start    string `yaml:"start"`
	End      string `yaml:"end,omitempty"`
	Resource string `yaml:"resource,omitempty"`
	Color    string `yaml:"color,omitempty"`
}

// RawEvent converts the entry.
func (d EventDoc) RawEvent() calendar.RawEvent {
	ev := calendar.RawEvent{
		ID:         d.ID,
		Title:      d.Title,
		Start:      calendar.Text(d.Start),
		ResourceID: d.Resource,
		Color:      d.Color,
	}
	if strings.TrimSpace(d.End) != "" {
		ev.End = calendar.Text(d.End)
	}
	return ev
}

// FromEvent builds an entry from a stored event.
func FromEvent(ev calendar.RawEvent) EventDoc {
	return EventDoc{
		ID:       ev.ID,
		Title:    ev.Title,
		Start:    ev.Start.String(),
		End:      ev.End.String(),
		Resource: ev.ResourceID,
		Color:    ev.Color,
	}
}

// Options tune loading.
type Options struct {
	// Resource is the fallback resource for iCalendar events.
	Resource string
}

// LoadFile reads a fixture, choosing the decoder from the file extension.
func LoadFile(path string, opts Options) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Decode(bytes.NewReader(data))
	case ".ics", ".ical":
		events, err := ics.Decode(bytes.NewReader(data), ics.DecodeOptions{Resource: opts.Resource})
		if err != nil {
			return nil, err
		}
		f := &Fixture{}
		for _, ev := range events {
			f.Events = append(f.Events, FromEvent(ev))
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode parses a YAML fixture.
func Decode(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

// Encode writes a YAML fixture.
func Encode(w io.Writer, f *Fixture) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	return enc.Close()
}

// Result counts what Apply stored.
type Result struct {
	Resources        int
	Events           int
	SkippedResources int
}

// Apply stores the fixture. Resources that already exist are kept as they
// are; any other failure stops the import.
func Apply(ctx context.Context, repo calendar.Repository, f *Fixture) (Result, error) {
	var res Result
	for _, r := range f.Resources {
		err := repo.CreateResource(ctx, calendar.Resource{ID: r.ID, Title: r.Title})
		if errors.Is(err, calendar.ErrDuplicateResource) {
			log.Debug().Str("resource", r.ID).Msg("resource exists, skipping")
			res.SkippedResources++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("creating resource %q: %w", r.ID, err)
		}
		res.Resources++
	}

	for i, doc := range f.Events {
		ev := doc.RawEvent()
		if err := repo.CreateEvent(ctx, &ev); err != nil {
			return res, fmt.Errorf("creating event %d (%s): %w", i+1, doc.Title, err)
		}
		res.Events++
	}

	log.Debug().
		Int("resources", res.Resources).
		Int("events", res.Events).
		Msg("fixture applied")
	return res, nil
}
