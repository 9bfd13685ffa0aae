package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/dateutil"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Faint(true)
)

// renderTable draws rows under headers with rounded borders.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		BorderRow(false).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
	return t.Render()
}

// resourceRows lists resources in display order.
func resourceRows(resources []calendar.Resource) [][]string {
	rows := make([][]string, len(resources))
	for i, r := range resources {
		rows[i] = []string{fmt.Sprintf("%d", i+1), r.ID, r.Title}
	}
	return rows
}

// eventRows lists events with their normalized day range.
func eventRows(events []calendar.RawEvent, resources []calendar.Resource, loc *time.Location) [][]string {
	titles := make(map[string]string, len(resources))
	for _, r := range resources {
		titles[r.ID] = r.Title
	}

	rows := make([][]string, len(events))
	for i, ev := range events {
		c := calendar.NormalizeEvent(ev, loc)
		resource := titles[ev.ResourceID]
		if resource == "" {
			resource = ev.ResourceID
		}
		rows[i] = []string{ev.ID, ev.Title, formatDays(c), resource, ev.Color}
	}
	return rows
}

// formatDays renders the inclusive day span of an event.
func formatDays(ev calendar.CanonicalEvent) string {
	last := dateutil.AddDays(ev.End, -1)
	if dateutil.SameDay(ev.Start, last) {
		return ev.Start.Format("Mon 2006-01-02")
	}
	return fmt.Sprintf("%s → %s (%dd)", ev.Start.Format("Mon 2006-01-02"), last.Format("Mon 2006-01-02"), ev.Days())
}

// gridOpts configures printGrid.
type gridOpts struct {
	LabelWidth int
	CellWidth  int
	Today      time.Time
}

// printGrid draws one section as text: a header of days, then one line per
// resource with each event drawn across the columns it occupies.
func printGrid(w io.Writer, section calendar.Section, resources []calendar.Resource, placed []calendar.PositionedEvent, opts gridOpts) {
	fmt.Fprintf(w, "%s\n", formatHeader(section.Title))

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", opts.LabelWidth))
	for _, day := range section.Days {
		label := fitText(day.Format("Mon 2"), opts.CellWidth)
		if opts.CellWidth < 6 {
			label = fitText(day.Format("2"), opts.CellWidth)
		}
		if dateutil.SameDay(day, opts.Today) {
			label = formatAccent(label)
		} else if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			label = formatMuted(label)
		}
		header.WriteString(label)
	}
	fmt.Fprintln(w, header.String())

	byRow := make([][]calendar.PositionedEvent, len(resources))
	for _, p := range placed {
		byRow[p.RowIndex] = append(byRow[p.RowIndex], p)
	}

	for row, r := range resources {
		var line strings.Builder
		line.WriteString(fitText(r.Title, opts.LabelWidth))

		owner := make([]int, len(section.Days))
		for i := range owner {
			owner[i] = -1
		}
		for i, p := range byRow[row] {
			for col := p.StartColumn; col < p.EndColumn && col < len(owner); col++ {
				owner[col] = i
			}
		}

		for col := 0; col < len(owner); {
			if owner[col] < 0 {
				line.WriteString(formatMuted(fitText("·", opts.CellWidth)))
				col++
				continue
			}
			p := byRow[row][owner[col]]
			end := col + 1
			for end < len(owner) && owner[end] == owner[col] {
				end++
			}
			text := fitText(p.Event.Title, (end-col)*opts.CellWidth)
			line.WriteString(formatEvent(text, p.Event.Color))
			col = end
		}
		fmt.Fprintln(w, line.String())
	}
}

// fitText pads or truncates s to exactly width runes.
func fitText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > width {
		if width == 1 {
			return "…"
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}
