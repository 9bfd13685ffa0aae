package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/calendar"
)

func (a *App) resourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"resources", "res"},
		Short:   "Manage resources (grid rows)",
	}
	cmd.AddCommand(a.resourceAddCmd())
	cmd.AddCommand(a.resourceListCmd())
	return cmd
}

func (a *App) resourceAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [id] [title]",
		Short: "Add a resource",
		Long: `Add a resource. Resources are shown in the order they were added.

Example:
  rota resource add room-1 "Room 1"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			r := calendar.Resource{ID: args[0], Title: args[0]}
			if len(args) == 2 {
				r.Title = args[1]
			}
			if err := a.repo.CreateResource(context.Background(), r); err != nil {
				return fmt.Errorf("creating resource: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created resource %s: %s\n", r.ID, r.Title)
			return nil
		},
	}
}

func (a *App) resourceListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			resources, err := a.repo.ListResources(context.Background())
			if err != nil {
				return fmt.Errorf("listing resources: %w", err)
			}
			if len(resources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No resources found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "ID", "Title"}, resourceRows(resources)))
			return nil
		},
	}
}
