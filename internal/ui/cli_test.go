package ui

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/db"
)

type testEnv struct {
	repo *db.SQLite
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	DisableColor()

	dir := t.TempDir()
	repo, err := db.New(filepath.Join(dir, "rota.db"), db.WithLocation(time.UTC))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	cfg := config.Default()
	cfg.Calendar.Timezone = "UTC"
	cfg.Storage.DBPath = filepath.Join(dir, "rota.db")
	return &testEnv{repo: repo, cfg: cfg}
}

// run executes one command line on a fresh command tree so flag values do
// not leak between calls.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := NewApp(e.repo, e.cfg)
	t.Cleanup(func() { _ = app.Close() })

	var out bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&out)
	app.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func (e *testEnv) seed(t *testing.T) {
	t.Helper()
	e.mustRun(t, "resource", "add", "room-1", "Room 1")
	e.mustRun(t, "resource", "add", "room-2", "Room 2")
	e.mustRun(t, "event", "add", "Inspection", "--id", "e1", "--start", "2025-01-10", "--end", "2025-01-12", "--resource", "room-1", "--color", "teal")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "version")
	assert.Contains(t, out, "rota dev")
}

func TestResourceCommands(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun(t, "resource", "add", "room-1", "Room 1")
	assert.Contains(t, out, "Created resource room-1: Room 1")

	out = env.mustRun(t, "resource", "add", "bay")
	assert.Contains(t, out, "Created resource bay: bay")

	_, err := env.run(t, "resource", "add", "room-1", "Again")
	assert.ErrorIs(t, err, calendar.ErrDuplicateResource)

	out = env.mustRun(t, "resource", "list")
	assert.Contains(t, out, "Room 1")
	assert.Contains(t, out, "bay")
	assert.Less(t, bytes.Index([]byte(out), []byte("room-1")), bytes.Index([]byte(out), []byte("bay")))
}

func TestResourceList_Empty(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "resource", "list")
	assert.Contains(t, out, "No resources found.")
}

func TestEventAddAndList(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "resource", "add", "room-1", "Room 1")

	out := env.mustRun(t, "event", "add", "Inspection", "--id", "e1", "--start", "2025-01-10", "--end", "2025-01-12", "--resource", "room-1")
	assert.Contains(t, out, "Created event e1: Inspection Fri 2025-01-10 → Sat 2025-01-11 (2d)")

	_, err := env.run(t, "event", "add", "Orphan", "--start", "2025-01-10", "--resource", "nope")
	assert.ErrorIs(t, err, calendar.ErrResourceNotFound)

	_, err = env.run(t, "event", "add", "No resource", "--start", "2025-01-10")
	assert.Error(t, err, "--resource is required")

	out = env.mustRun(t, "event", "list", "--start", "2025-01-11")
	assert.Contains(t, out, "Inspection")
	assert.Contains(t, out, "Room 1")

	out = env.mustRun(t, "event", "list", "--start", "2025-01-12")
	assert.Contains(t, out, "No events found")

	out = env.mustRun(t, "event", "list", "--all")
	assert.Contains(t, out, "e1")
}

func TestEventMove(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	out := env.mustRun(t, "event", "move", "e1", "--days", "-3", "--resource", "room-2")
	assert.Contains(t, out, "Moved Inspection")

	stored, err := env.repo.GetEvent(context.Background(), "e1")
	require.NoError(t, err)
	got := calendar.NormalizeEvent(stored, time.UTC)
	assert.Equal(t, "room-2", got.ResourceID)
	assert.True(t, got.Start.Equal(time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)), "start = %s", got.Start)
	assert.Equal(t, 2, got.Days())
	assert.Equal(t, "teal", stored.Color)

	_, err = env.run(t, "event", "move", "e1")
	assert.ErrorContains(t, err, "nothing to move")

	_, err = env.run(t, "event", "move", "e1", "--resource", "nope")
	assert.ErrorIs(t, err, calendar.ErrResourceNotFound)

	_, err = env.run(t, "event", "move", "missing", "--days", "1")
	assert.ErrorIs(t, err, calendar.ErrEventNotFound)
}

func TestEventDelete(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	out := env.mustRun(t, "event", "delete", "e1")
	assert.Contains(t, out, "Deleted event e1")

	_, err := env.run(t, "event", "rm", "e1")
	assert.ErrorIs(t, err, calendar.ErrEventNotFound)
}

func TestImportExport(t *testing.T) {
	env := newTestEnv(t)
	dir := t.TempDir()

	fixturePath := filepath.Join(dir, "fixture.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(`
resources:
  - id: room-1
    title: Room 1
events:
  - id: e1
    title: Inspection
    start: 2025-01-10
    resource: room-1
`), 0o644))

	out := env.mustRun(t, "import", fixturePath)
	assert.Contains(t, out, "Imported 1 resources and 1 events")

	_, err := env.run(t, "import", filepath.Join(dir, "nothing.yaml"))
	assert.Error(t, err)

	out = env.mustRun(t, "export", "-")
	assert.Contains(t, out, "title: Inspection")
	assert.Contains(t, out, "resource: room-1")

	icsPath := filepath.Join(dir, "out.ics")
	out = env.mustRun(t, "export", icsPath)
	assert.Contains(t, out, "Exported 1 resources and 1 events")
	data, err := os.ReadFile(icsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VEVENT")
	assert.Contains(t, string(data), "SUMMARY:Inspection")

	_, err = env.run(t, "export", filepath.Join(dir, "out.csv"))
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	out := env.mustRun(t, "show", "--view", "week", "--date", "2025-01-10", "--width", "84", "--no-color")
	assert.Contains(t, out, "Jan 6 – Jan 12, 2025")
	assert.Contains(t, out, "Room 1")
	assert.Contains(t, out, "Room 2")
	assert.Contains(t, out, "Inspection")
	assert.Contains(t, out, "Fri 10")

	out = env.mustRun(t, "show", "--view", "year", "--date", "2025-06-01", "--width", "200", "--no-color")
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "December 2025")

	_, err := env.run(t, "show", "--view", "decade")
	assert.ErrorIs(t, err, calendar.ErrUnknownView)
}

func TestShow_NoResources(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "show", "--width", "80")
	assert.Contains(t, out, "No resources yet")
}
