package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/dateutil"
)

func (a *App) showCmd() *cobra.Command {
	var (
		viewName string
		date     string
		width    int
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resource grid",
		Long: `Print the calendar page containing a date as a text grid, one line
per resource. The year view prints all twelve months.

Dates accept YYYY-MM-DD or keywords such as today, tomorrow or next-monday.`,
		Example: `  rota show
  rota show --view month --date 2024-03-01
  rota show --view year --no-color`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureRepo(); err != nil {
				return err
			}

			loc, err := a.config.Location()
			if err != nil {
				return err
			}
			view := a.config.View()
			if viewName != "" {
				if view, err = calendar.ParseView(viewName); err != nil {
					return err
				}
			}
			now := time.Now().In(loc)
			active, err := dateutil.ParseRelativeDate(date, now)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = termWidth()
			}

			return a.printPage(cmd, active, view, loc, width, now)
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "", "View: day, week, month or year (default from config)")
	cmd.Flags().StringVar(&date, "date", "", "Date inside the page to show (default: today)")
	cmd.Flags().IntVar(&width, "width", 0, "Output width in columns (default: terminal width)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) printPage(cmd *cobra.Command, active time.Time, view calendar.View, loc *time.Location, width int, now time.Time) error {
	ctx := context.Background()
	sections := calendar.Partition(active, view)
	if len(sections) == 0 {
		return fmt.Errorf("nothing to show for view %q", view)
	}

	resources, err := a.repo.ListResources(ctx)
	if err != nil {
		return fmt.Errorf("listing resources: %w", err)
	}
	if len(resources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No resources yet. Add one with: rota resource add <id> <title>")
		return nil
	}

	raw, err := a.repo.ListEventsBetween(ctx, sections[0].Start, sections[len(sections)-1].End)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	events := calendar.Normalize(raw, loc)

	label := min(a.config.Grid.LabelWidth, max(1, width/3))
	for i, section := range sections {
		cell := int(calendar.CellWidth(float64(width-label), len(section.Days)))
		cell = max(cell, a.config.Grid.MinCellWidth)
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		printGrid(cmd.OutOrStdout(), section, resources, calendar.Project(section, resources, events), gridOpts{
			LabelWidth: label,
			CellWidth:  cell,
			Today:      dateutil.StartOfDay(now),
		})
	}
	return nil
}
