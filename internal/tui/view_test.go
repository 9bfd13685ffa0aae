package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/rota/internal/calendar"
)

func TestLayout_Geometry(t *testing.T) {
	m := withData(newTestModel(t, nil))
	l := m.layout()

	if l.labelWidth != 14 || l.cellWidth != 10 || l.rowHeight != 2 {
		t.Fatalf("layout = %+v", l)
	}
	if l.days != 7 || l.visibleRows != 2 {
		t.Errorf("days = %d, visibleRows = %d", l.days, l.visibleRows)
	}

	tests := []struct {
		name     string
		x, y     int
		row, col int
		ok       bool
	}{
		{name: "label column", x: 5, y: 2},
		{name: "header", x: 20, y: 1},
		{name: "first cell", x: 14, y: 2, row: 0, col: 0, ok: true},
		{name: "second line of row", x: 24, y: 3, row: 0, col: 1, ok: true},
		{name: "second row", x: 83, y: 4, row: 1, col: 6, ok: true},
		{name: "below rows", x: 20, y: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := l.cellAt(tt.x, tt.y)
			if ok != tt.ok || row != tt.row || col != tt.col {
				t.Errorf("cellAt(%d, %d) = (%d, %d, %v), want (%d, %d, %v)",
					tt.x, tt.y, row, col, ok, tt.row, tt.col, tt.ok)
			}
		})
	}

	metrics := l.metrics()
	if metrics.RowAt(4) != 1 || metrics.RowAt(100) != 1 {
		t.Errorf("RowAt should map and clamp rows")
	}
	if p := l.pointer(34, 2); p.X != 20 || p.Y != 2 {
		t.Errorf("pointer = %+v", p)
	}
}

func TestLayout_NarrowTerminalKeepsMinimumCell(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	m, _ = update(t, m, key("m"))

	l := m.layout()
	if l.labelWidth != 14 {
		t.Errorf("labelWidth = %d, want 14", l.labelWidth)
	}
	if l.cellWidth != int(calendar.MinCellWidth) {
		t.Errorf("cellWidth = %d, want %d", l.cellWidth, int(calendar.MinCellWidth))
	}
}

func TestView_RendersGrid(t *testing.T) {
	m := withData(newTestModel(t, nil))
	out := m.View()

	for _, want := range []string{"Jan 8 – Jan 14, 2024", "Mon Jan 8", "Room 1", "Room 2", "Audit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("view has %d lines, want 20", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 84 {
			t.Errorf("line %d width = %d, want 84", i, w)
		}
	}
}

func TestView_ShowsDragPreview(t *testing.T) {
	m := withData(newTestModel(t, nil))
	m, _ = update(t, m, mouse(tea.MouseActionPress, 35, 2))
	m, _ = update(t, m, mouse(tea.MouseActionMotion, 55, 4))

	out := m.View()
	if !strings.Contains(out, `Moving "Audit" +2 days to Room 2`) {
		t.Errorf("status should describe the drag:\n%s", out)
	}
	if strings.Count(out, "Audit") < 2 {
		t.Error("origin and preview should both be drawn")
	}
}

func TestView_EmptyCalendar(t *testing.T) {
	m := newTestModel(t, nil)
	if out := m.View(); !strings.Contains(out, "rota resource add") {
		t.Errorf("empty view should hint at adding resources:\n%s", out)
	}
}

func TestView_BeforeWindowSize(t *testing.T) {
	m := New(nil, nil)
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q", got)
	}
}

func TestDayLabel(t *testing.T) {
	m := newTestModel(t, nil)
	section, _ := m.section()
	day := section.Days[0]

	tests := []struct {
		width int
		want  string
	}{
		{12, "Mon Jan 8"},
		{6, "Mon 8"},
		{4, "8"},
	}
	for _, tt := range tests {
		if got := dayLabel(day, tt.width); got != tt.want {
			t.Errorf("dayLabel(%d) = %q, want %q", tt.width, got, tt.want)
		}
	}
}
