package seed

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/db"
)

const fixtureYAML = `
resources:
  - id: r1
    title: Room 1
  - id: r2
    title: Room 2
events:
  - id: e1
    title: Inspection
    start: 2024-01-10
    end: 2024-01-11T15:00
    resource: r1
    color: teal
  - title: Cleaning
    start: 2024-01-12
    resource: r2
`

func newRepo(t *testing.T) *db.SQLite {
	t.Helper()
	repo, err := db.New(filepath.Join(t.TempDir(), "seed.db"), db.WithLocation(time.UTC))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, f.Resources, 2)
	require.Len(t, f.Events, 2)

	ev := f.Events[0].RawEvent()
	assert.Equal(t, "e1", ev.ID)
	assert.Equal(t, "2024-01-10", ev.Start.String())
	assert.Equal(t, "2024-01-11T15:00", ev.End.String())
	assert.Equal(t, "r1", ev.ResourceID)

	c := calendar.NormalizeEvent(ev, time.UTC)
	assert.Equal(t, 2, c.Days())

	assert.True(t, f.Events[1].RawEvent().End.IsZero())
}

func TestDecode_Empty(t *testing.T) {
	f, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Events)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(strings.NewReader("resources: [oops"))
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.CreateResource(ctx, calendar.Resource{ID: "r2", Title: "Existing"}))

	f, err := Decode(strings.NewReader(fixtureYAML))
	require.NoError(t, err)

	res, err := Apply(ctx, repo, f)
	require.NoError(t, err)
	assert.Equal(t, Result{Resources: 1, Events: 2, SkippedResources: 1}, res)

	resources, err := repo.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "r2", resources[0].ID)
	assert.Equal(t, "Existing", resources[0].Title)

	events, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.NotEmpty(t, events[1].ID)
}

func TestApply_UnknownResource(t *testing.T) {
	repo := newRepo(t)
	f := &Fixture{Events: []EventDoc{{Title: "Orphan", Start: "2024-01-10", Resource: "nope"}}}

	_, err := Apply(context.Background(), repo, f)
	assert.ErrorIs(t, err, calendar.ErrResourceNotFound)
}

func TestLoadFile(t *testing.T) {
	f, err := LoadFile(writeFile(t, "rota.yml", fixtureYAML), Options{})
	require.NoError(t, err)
	assert.Len(t, f.Events, 2)

	ical := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:x1",
		"DTSTAMP:20240101T000000Z",
		"SUMMARY:Audit",
		"DTSTART;VALUE=DATE:20240110",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n") + "\r\n"
	f, err = LoadFile(writeFile(t, "cal.ics", ical), Options{Resource: "r1"})
	require.NoError(t, err)
	require.Len(t, f.Events, 1)
	assert.Equal(t, "r1", f.Events[0].Resource)
	assert.Equal(t, "2024-01-10", f.Events[0].Start)

	_, err = LoadFile(writeFile(t, "data.csv", "a,b"), Options{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), Options{})
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	f := &Fixture{
		Resources: []ResourceDoc{{ID: "r1", Title: "Room 1"}},
		Events: []EventDoc{FromEvent(calendar.RawEvent{
			ID: "e1", Title: "Inspection", Start: calendar.Text("2024-01-10"), ResourceID: "r1",
		})},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f))
	assert.NotContains(t, buf.String(), "end:", "absent end is omitted")

	back, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}
