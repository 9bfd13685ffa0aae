package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/db"
	"github.com/javiermolinar/rota/internal/logging"
	"github.com/javiermolinar/rota/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo     calendar.Repository
	ownsRepo bool // opened by ensureRepo, closed by Close
	config   *config.Config
	root     *cobra.Command
	debug    bool // Enable debug logging
	closeLog func()
}

// NewApp creates a new CLI application. A nil repository is opened lazily
// from the configured database path by the commands that need one.
func NewApp(repo calendar.Repository, cfg *config.Config) *App {
	a := &App{repo: repo, config: cfg}

	a.root = &cobra.Command{
		Use:   "rota",
		Short: "A resource scheduling calendar for the terminal",
		Long: `Rota lays out events on a grid of resources (rooms, people, machines)
by day, week, month or year, and lets you reschedule them by dragging
an event to another day or resource.

Run without arguments to open the interactive calendar.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			closeLog, err := logging.Init(a.debug)
			if err != nil {
				return err
			}
			a.closeLog = closeLog
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			return tui.Run(a.repo, a.config)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logging.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.resourceCmd())
	a.root.AddCommand(a.eventCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.showCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rota %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides the command line, for tests and embedding.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Close releases the repository if the app opened it and flushes the
// debug log.
func (a *App) Close() error {
	var err error
	if a.ownsRepo && a.repo != nil {
		err = a.repo.Close()
		a.repo = nil
		a.ownsRepo = false
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
	return err
}

// ensureRepo opens the configured database on first use.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	dbPath := a.config.Storage.DBPath
	if dbPath == "" {
		return fmt.Errorf("db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	loc, err := a.config.Location()
	if err != nil {
		return err
	}
	repo, err := db.New(dbPath, db.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}

	a.repo = repo
	a.ownsRepo = true
	return nil
}
