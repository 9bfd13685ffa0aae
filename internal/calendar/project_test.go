package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testResources = []Resource{
	{ID: "r1", Title: "Room 1"},
	{ID: "r2", Title: "Room 2"},
	{ID: "r3", Title: "Room 3"},
}

func canon(id, resource string, start, end time.Time) CanonicalEvent {
	return NormalizeEvent(RawEvent{ID: id, Title: id, Start: At(start), End: At(end), ResourceID: resource}, time.UTC)
}

func TestProject_BoundaryExclusion(t *testing.T) {
	section := Partition(day(2024, 1, 10), ViewWeek)[0] // Jan 8 .. Jan 15 (exclusive)

	events := []CanonicalEvent{
		canon("ends-at-start", "r1", day(2024, 1, 5), day(2024, 1, 8)),
		canon("starts-at-end", "r1", day(2024, 1, 15), day(2024, 1, 16)),
		canon("first-day", "r1", day(2024, 1, 8), day(2024, 1, 9)),
		canon("last-day", "r1", day(2024, 1, 14), day(2024, 1, 15)),
	}

	got := Project(section, testResources, events)
	require.Len(t, got, 2)
	assert.Equal(t, "first-day", got[0].Event.ID)
	assert.Equal(t, 0, got[0].StartColumn)
	assert.Equal(t, 1, got[0].EndColumn)
	assert.Equal(t, "last-day", got[1].Event.ID)
	assert.Equal(t, 6, got[1].StartColumn)
	assert.Equal(t, 7, got[1].EndColumn)
}

func TestProject_ClipsToSection(t *testing.T) {
	section := Partition(day(2024, 1, 10), ViewDay)[0]
	ev := canon("long", "r2", day(2024, 1, 8), day(2024, 1, 13))
	require.Equal(t, 5, ev.Days())

	got := Project(section, testResources, []CanonicalEvent{ev})
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].StartColumn)
	assert.Equal(t, 1, got[0].EndColumn)
	assert.Equal(t, 1, got[0].Span())
	assert.Equal(t, 1, got[0].RowIndex)
	// The projected event keeps its full canonical range.
	assert.True(t, got[0].Event.Start.Equal(day(2024, 1, 8)))
}

func TestProject_PartialOverlap(t *testing.T) {
	section := Partition(day(2024, 1, 10), ViewWeek)[0]
	events := []CanonicalEvent{
		canon("left", "r1", day(2024, 1, 6), day(2024, 1, 10)),
		canon("right", "r3", day(2024, 1, 12), day(2024, 1, 20)),
	}

	got := Project(section, testResources, events)
	require.Len(t, got, 2)
	assert.Equal(t, PositionedEvent{Event: events[0], StartColumn: 0, EndColumn: 2, RowIndex: 0}, got[0])
	assert.Equal(t, PositionedEvent{Event: events[1], StartColumn: 4, EndColumn: 7, RowIndex: 2}, got[1])
}

func TestProject_SkipsUnassignedAndUnknownResources(t *testing.T) {
	section := Partition(day(2024, 1, 10), ViewWeek)[0]
	events := []CanonicalEvent{
		canon("none", "", day(2024, 1, 10), day(2024, 1, 11)),
		canon("ghost", "r9", day(2024, 1, 10), day(2024, 1, 11)),
		canon("ok", "r3", day(2024, 1, 10), day(2024, 1, 11)),
	}

	got := Project(section, testResources, events)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Event.ID)
	assert.Equal(t, 2, got[0].RowIndex)

	assert.Empty(t, Project(section, nil, events))
}

func TestProject_FollowsInputOrder(t *testing.T) {
	section := Partition(day(2024, 1, 10), ViewMonth)[0]
	events := []CanonicalEvent{
		canon("c", "r3", day(2024, 1, 20), day(2024, 1, 21)),
		canon("a", "r1", day(2024, 1, 2), day(2024, 1, 3)),
		canon("b", "r2", day(2024, 1, 10), day(2024, 1, 11)),
	}
	got := Project(section, testResources, events)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].Event.ID, got[1].Event.ID, got[2].Event.ID})
	assert.Equal(t, 19, got[0].StartColumn)
}

func TestProject_YearSections(t *testing.T) {
	ev := canon("span", "r1", day(2024, 1, 30), day(2024, 2, 3))
	var hits []PositionedEvent
	for _, s := range Partition(day(2024, 1, 1), ViewYear) {
		hits = append(hits, Project(s, testResources, []CanonicalEvent{ev})...)
	}
	require.Len(t, hits, 2)
	assert.Equal(t, 29, hits[0].StartColumn)
	assert.Equal(t, 31, hits[0].EndColumn)
	assert.Equal(t, 0, hits[1].StartColumn)
	assert.Equal(t, 2, hits[1].EndColumn)
}

func TestResourceIndex(t *testing.T) {
	assert.Equal(t, 0, ResourceIndex(testResources, "r1"))
	assert.Equal(t, 2, ResourceIndex(testResources, "r3"))
	assert.Equal(t, -1, ResourceIndex(testResources, "r4"))
	assert.Equal(t, -1, ResourceIndex(testResources, ""))

	dup := append([]Resource{}, testResources...)
	dup = append(dup, Resource{ID: "r1", Title: "Again"})
	assert.Equal(t, 0, ResourceIndex(dup, "r1"))

	section := Partition(day(2024, 1, 10), ViewDay)[0]
	got := Project(section, dup, []CanonicalEvent{canon("x", "r1", day(2024, 1, 10), day(2024, 1, 11))})
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].RowIndex)
}

func TestDraggable(t *testing.T) {
	assert.True(t, Draggable(canon("a", "r1", day(2024, 1, 1), day(2024, 1, 2)), testResources))
	assert.False(t, Draggable(canon("", "r1", day(2024, 1, 1), day(2024, 1, 2)), testResources))
	assert.False(t, Draggable(canon("a", "", day(2024, 1, 1), day(2024, 1, 2)), testResources))
	assert.False(t, Draggable(canon("a", "r7", day(2024, 1, 1), day(2024, 1, 2)), testResources))
}
