package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/rota/internal/calendar"
)

func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

var sample = crlf(
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//test//EN",
	"BEGIN:VEVENT",
	"UID:all-day",
	"DTSTAMP:20240101T000000Z",
	"SUMMARY:Inspection",
	"DTSTART;VALUE=DATE:20240110",
	"DTEND;VALUE=DATE:20240112",
	"X-ROTA-RESOURCE:r2",
	"COLOR:teal",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:timed",
	"DTSTAMP:20240101T000000Z",
	"SUMMARY:Handover",
	"DTSTART:20240110T093000Z",
	"DTEND:20240111T100000Z",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:no-start",
	"DTSTAMP:20240101T000000Z",
	"SUMMARY:Broken",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:open-ended",
	"DTSTAMP:20240101T000000Z",
	"DTSTART;VALUE=DATE:20240115",
	"END:VEVENT",
	"END:VCALENDAR",
)

func TestDecode(t *testing.T) {
	events, err := Decode(strings.NewReader(sample), DecodeOptions{Resource: "r1"})
	require.NoError(t, err)
	require.Len(t, events, 3, "the event without DTSTART is skipped")

	allDay := events[0]
	assert.Equal(t, "all-day", allDay.ID)
	assert.Equal(t, "Inspection", allDay.Title)
	assert.Equal(t, "r2", allDay.ResourceID)
	assert.Equal(t, "teal", allDay.Color)
	assert.Equal(t, "2024-01-10", allDay.Start.String())
	assert.Equal(t, "2024-01-12", allDay.End.String())

	timed := events[1]
	assert.Equal(t, "timed", timed.ID)
	assert.Equal(t, "r1", timed.ResourceID, "falls back to the default resource")
	start, ok := timed.Start.Time(time.UTC)
	require.True(t, ok)
	assert.True(t, start.Equal(time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)))

	c := calendar.NormalizeEvent(timed, time.UTC)
	assert.True(t, c.Start.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.End.Equal(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)))

	open := events[2]
	assert.True(t, open.End.IsZero())
	assert.Equal(t, 1, calendar.NormalizeEvent(open, time.UTC).Days())
}

func TestDecode_AllDayIsZoneIndependent(t *testing.T) {
	events, err := Decode(strings.NewReader(sample), DecodeOptions{})
	require.NoError(t, err)

	tokyo := time.FixedZone("JST", 9*60*60)
	c := calendar.NormalizeEvent(events[0], tokyo)
	assert.Equal(t, 10, c.Start.Day())
	assert.Equal(t, 2, c.Days())
}

func TestEncode(t *testing.T) {
	raws := []calendar.RawEvent{
		{ID: "e1", Title: "Inspection", Start: calendar.Text("2024-01-10"), End: calendar.Text("2024-01-11T15:00"), ResourceID: "r3", Color: "amber"},
		{ID: "", Title: "Anonymous", Start: calendar.Text("2024-01-10")},
	}
	events := calendar.Normalize(raws, time.UTC)

	var buf bytes.Buffer
	stamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Encode(&buf, events, stamp))

	out := buf.String()
	assert.Contains(t, out, "UID:e1")
	assert.Contains(t, out, "20240110")
	assert.Contains(t, out, "20240112")
	assert.Contains(t, out, "X-ROTA-RESOURCE:r3")
	assert.NotContains(t, out, "Anonymous", "events without an id cannot be exported")

	back, err := Decode(strings.NewReader(out), DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "Inspection", back[0].Title)
	assert.Equal(t, "r3", back[0].ResourceID)
	assert.Equal(t, "amber", back[0].Color)
	assert.Equal(t, "2024-01-10", back[0].Start.String())
	assert.Equal(t, "2024-01-12", back[0].End.String())
}
