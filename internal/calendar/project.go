package calendar

import (
	"github.com/javiermolinar/rota/internal/dateutil"
)

// PositionedEvent is an event placed on a section grid.
// Columns are zero-based day offsets from the section start; EndColumn is
// exclusive and always greater than StartColumn.
type PositionedEvent struct {
	Event       CanonicalEvent
	StartColumn int
	EndColumn   int
	RowIndex    int
}

// Span returns the number of columns the event occupies.
func (p PositionedEvent) Span() int {
	return p.EndColumn - p.StartColumn
}

// Project returns the events visible in section, clipped to its bounds and
// mapped to grid coordinates. Events without a known resource are skipped.
// Output follows input order.
func Project(section Section, resources []Resource, events []CanonicalEvent) []PositionedEvent {
	rows := indexResources(resources)
	out := make([]PositionedEvent, 0, len(events))

	for _, ev := range events {
		if ev.ResourceID == "" {
			continue
		}
		// Open interval: touching the section boundary is not an overlap.
		if !ev.End.After(section.Start) || !ev.Start.Before(section.End) {
			continue
		}
		row, ok := rows[ev.ResourceID]
		if !ok {
			continue
		}

		clippedStart := ev.Start
		if section.Start.After(clippedStart) {
			clippedStart = section.Start
		}
		clippedEnd := ev.End
		if section.End.Before(clippedEnd) {
			clippedEnd = section.End
		}

		startCol := dateutil.DiffDays(clippedStart, section.Start)
		endCol := max(startCol+1, dateutil.DiffDays(clippedEnd, section.Start))

		out = append(out, PositionedEvent{
			Event:       ev,
			StartColumn: startCol,
			EndColumn:   endCol,
			RowIndex:    row,
		})
	}

	return out
}

// Draggable reports whether ev can be picked up: it needs an id and a
// resource that exists in resources.
func Draggable(ev CanonicalEvent, resources []Resource) bool {
	return ev.ID != "" && ResourceIndex(resources, ev.ResourceID) >= 0
}
