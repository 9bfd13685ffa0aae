package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/ics"
	"github.com/javiermolinar/rota/internal/seed"
)

func (a *App) importCmd() *cobra.Command {
	var resource string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import resources and events from YAML or iCalendar",
		Long: `Import a YAML fixture (.yaml, .yml) or an iCalendar file (.ics).

YAML fixtures carry resources and events. iCalendar events are assigned
to the resource named in their X-ROTA-RESOURCE property, or to --resource.
Resources that already exist are kept.

Example:
  rota import fixtures.yaml
  rota import holidays.ics --resource team`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := seed.LoadFile(path, seed.Options{Resource: resource})
			if err != nil {
				return err
			}

			res, err := seed.Apply(context.Background(), a.repo, f)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d resources and %d events from %s\n", res.Resources, res.Events, path)
			if res.SkippedResources > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatWarn(fmt.Sprintf("Skipped %d existing resources", res.SkippedResources)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resource, "resource", "", "Resource for iCalendar events without one")
	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export resources and events to YAML or iCalendar",
		Long: `Export everything to a YAML fixture (.yaml, .yml) or an iCalendar
file (.ics). Use "-" to write YAML to standard output.

iCalendar output carries events only, as all-day entries.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			ctx := context.Background()

			resources, err := a.repo.ListResources(ctx)
			if err != nil {
				return fmt.Errorf("listing resources: %w", err)
			}
			events, err := a.repo.ListEvents(ctx)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			if args[0] == "-" {
				return seed.Encode(cmd.OutOrStdout(), fixture(resources, events))
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			out, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer func() { _ = out.Close() }()

			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				err = seed.Encode(out, fixture(resources, events))
			case ".ics", ".ical":
				loc, locErr := a.config.Location()
				if locErr != nil {
					return locErr
				}
				err = ics.Encode(out, calendar.Normalize(events, loc), time.Now())
			default:
				err = fmt.Errorf("%w: %s", seed.ErrUnsupportedFormat, filepath.Ext(path))
			}
			if err != nil {
				return err
			}
			if err := out.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d resources and %d events to %s\n", len(resources), len(events), path)
			return nil
		},
	}

	return cmd
}

func fixture(resources []calendar.Resource, events []calendar.RawEvent) *seed.Fixture {
	f := &seed.Fixture{}
	for _, r := range resources {
		f.Resources = append(f.Resources, seed.ResourceDoc{ID: r.ID, Title: r.Title})
	}
	for _, ev := range events {
		f.Events = append(f.Events, seed.FromEvent(ev))
	}
	return f
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
