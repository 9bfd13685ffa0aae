package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/dateutil"
)

func (a *App) eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "ev"},
		Short:   "Manage events",
	}
	cmd.AddCommand(a.eventAddCmd())
	cmd.AddCommand(a.eventListCmd())
	cmd.AddCommand(a.eventMoveCmd())
	cmd.AddCommand(a.eventDeleteCmd())
	return cmd
}

func (a *App) eventAddCmd() *cobra.Command {
	var (
		id       string
		start    string
		end      string
		resource string
		color    string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add an event",
		Long: `Add an event to a resource.

Start and end accept a date (YYYY-MM-DD), a date and time
(YYYY-MM-DDTHH:MM) or a keyword such as today or next-monday. The end is
exclusive for dates and optional: without it the event lasts one day.

Example:
  rota event add "Inspection" --start 2025-01-10 --end 2025-01-12 --resource room-1 --color teal`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			now, err := a.now()
			if err != nil {
				return err
			}

			ev := calendar.RawEvent{
				ID:         id,
				Title:      args[0],
				Start:      calendar.Text(resolveDate(start, now)),
				ResourceID: resource,
				Color:      color,
			}
			if end != "" {
				ev.End = calendar.Text(resolveDate(end, now))
			}

			if err := a.repo.CreateEvent(context.Background(), &ev); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			loc := now.Location()
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %s: %s %s\n",
				ev.ID, ev.Title, formatDays(calendar.NormalizeEvent(ev, loc)))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Event id (default: generated)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (required)")
	cmd.Flags().StringVar(&end, "end", "", "End date (default: one day)")
	cmd.Flags().StringVar(&resource, "resource", "", "Resource id (required)")
	cmd.Flags().StringVar(&color, "color", "", "Color name or #rrggbb")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("resource")

	return cmd
}

func (a *App) eventListCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events overlapping a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events on that single day.
If both --start and --end are specified, lists events in that range (inclusive).`,
		Example: `  rota event list
  rota event list --start=2025-01-15
  rota event list --start=2025-01-15 --end=2025-01-20
  rota event list --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			var events []calendar.RawEvent
			if all {
				var err error
				if events, err = a.repo.ListEvents(ctx); err != nil {
					return fmt.Errorf("listing events: %w", err)
				}
			} else {
				dateRange, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				events, err = a.repo.ListEventsBetween(ctx, dateRange.Start, dateutil.AddDays(dateRange.End, 1))
				if err != nil {
					return fmt.Errorf("listing events: %w", err)
				}
			}

			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events found in the specified date range.")
				return nil
			}

			resources, err := a.repo.ListResources(ctx)
			if err != nil {
				return fmt.Errorf("listing resources: %w", err)
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}

			headers := []string{"ID", "Title", "Days", "Resource", "Color"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, eventRows(events, resources, loc)))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&all, "all", false, "List every event")

	return cmd
}

func (a *App) eventMoveCmd() *cobra.Command {
	var (
		days     int
		resource string
	)

	cmd := &cobra.Command{
		Use:   "move [id]",
		Short: "Reschedule an event",
		Long: `Move an event by whole days and/or to another resource, the same
operation as dragging it in the interactive calendar.

Example:
  rota event move 3f2a --days 2 --resource room-2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			raw, err := a.repo.GetEvent(ctx, args[0])
			if err != nil {
				return err
			}
			resources, err := a.repo.ListResources(ctx)
			if err != nil {
				return fmt.Errorf("listing resources: %w", err)
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}

			ev := calendar.NormalizeEvent(raw, loc)
			intent, err := moveIntent(ev, days, resource, resources)
			if err != nil {
				return err
			}
			if err := a.repo.ApplyReschedule(ctx, intent); err != nil {
				return fmt.Errorf("moving event: %w", err)
			}

			moved := calendar.NormalizeEvent(intent.Event, loc)
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s: %s → %s\n", ev.Title, formatDays(ev), formatDays(moved))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to move (negative moves earlier)")
	cmd.Flags().StringVar(&resource, "resource", "", "Target resource id (default: unchanged)")

	return cmd
}

// moveIntent builds the reschedule for a command-line move.
func moveIntent(ev calendar.CanonicalEvent, days int, resourceID string, resources []calendar.Resource) (calendar.RescheduleIntent, error) {
	if resourceID == "" {
		resourceID = ev.ResourceID
	}
	if calendar.ResourceIndex(resources, resourceID) < 0 {
		return calendar.RescheduleIntent{}, fmt.Errorf("%w: %s", calendar.ErrResourceNotFound, resourceID)
	}
	if days == 0 && resourceID == ev.ResourceID {
		return calendar.RescheduleIntent{}, fmt.Errorf("nothing to move: pass --days or --resource")
	}
	return calendar.RescheduleIntent{
		Event:      calendar.Shift(ev, days, resourceID),
		Origin:     ev,
		DeltaDays:  days,
		ResourceID: resourceID,
	}, nil
}

func (a *App) eventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteEvent(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %s\n", args[0])
			return nil
		},
	}
}

// now returns the current time in the configured zone.
func (a *App) now() (time.Time, error) {
	loc, err := a.config.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// resolveDate turns keywords such as "tomorrow" into YYYY-MM-DD and leaves
// anything else for calendar.Text to parse.
func resolveDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		return s
	}
	day, err := dateutil.ParseRelativeDate(s, now)
	if err != nil {
		return s
	}
	return day.Format("2006-01-02")
}
