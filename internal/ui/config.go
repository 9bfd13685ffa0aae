package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/rota/internal/calendar"
	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  rota config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.Calendar.DefaultView = promptView(reader, cfg.Calendar.DefaultView)
	cfg.Calendar.Timezone = promptValue(reader, "Time zone (IANA name, empty for local)", cfg.Calendar.Timezone)
	cfg.Grid.MinCellWidth = promptInt(reader, "Minimum day width", cfg.Grid.MinCellWidth)
	cfg.Grid.RowHeight = promptInt(reader, "Lines per resource", cfg.Grid.RowHeight)
	cfg.Grid.LabelWidth = promptInt(reader, "Resource column width", cfg.Grid.LabelWidth)
	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[calendar]")
	fmt.Printf("  default_view     = %s\n", cfg.Calendar.DefaultView)
	if cfg.Calendar.Timezone != "" {
		fmt.Printf("  timezone         = %s\n", cfg.Calendar.Timezone)
	}
	fmt.Println("\n[grid]")
	fmt.Printf("  min_cell_width   = %d\n", cfg.Grid.MinCellWidth)
	fmt.Printf("  row_height       = %d\n", cfg.Grid.RowHeight)
	fmt.Printf("  label_width      = %d\n", cfg.Grid.LabelWidth)
	fmt.Println("\n[storage]")
	fmt.Printf("  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  theme            = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	value, _ := readValue(reader, label, current)
	return value
}

// readValue prompts for a value, keeping current on empty input. It reports
// io.EOF once the input is exhausted so callers that loop can stop.
func readValue(reader *bufio.Reader, label, current string) (string, error) {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, err := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if err != nil && input == "" {
		fmt.Println()
		return current, err
	}
	if input == "" {
		return current, nil
	}
	return input, nil
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value, readErr := readValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		if readErr != nil {
			return current
		}
		fmt.Printf("  Invalid number %q\n", value)
	}
}

func promptView(reader *bufio.Reader, current string) string {
	names := make([]string, 0, len(calendar.Views()))
	for _, v := range calendar.Views() {
		names = append(names, string(v))
	}
	options := strings.Join(names, ", ")
	label := fmt.Sprintf("Default view (%s)", options)
	for {
		value, readErr := readValue(reader, label, current)
		if v, err := calendar.ParseView(value); err == nil {
			return string(v)
		}
		if readErr != nil {
			return current
		}
		fmt.Printf("  Invalid view %q. Available: %s\n", value, options)
	}
}

func promptTheme(reader *bufio.Reader, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value, readErr := readValue(reader, label, current)
		value = strings.ToLower(value)
		if theme.IsAvailable(value) {
			return value
		}
		if readErr != nil {
			return current
		}
		fmt.Printf("  Invalid theme %q. Available: %s\n", value, options)
	}
}
