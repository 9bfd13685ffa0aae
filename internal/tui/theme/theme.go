// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Header row, alternate rows
	BgSelection string `toml:"bg_selection"` // Selected event, drop target row
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Weekends, empty cells
	Accent      string `toml:"accent"`       // Title, borders
	Event       string `toml:"event"`        // Events without a color
	Today       string `toml:"today"`        // Today's column marker
	Drag        string `toml:"drag"`         // Drag preview

	// Colors maps event color names (e.g. "teal") to hex values.
	Colors map[string]string `toml:"colors"`
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

// EventColor resolves an event's color to hex. Hex values pass through,
// names are looked up in the theme, and anything else uses the default
// event color.
func (t *Theme) EventColor(name string) string {
	name = strings.TrimSpace(name)
	if isHex(name) {
		return strings.ToLower(name)
	}
	if hex, ok := t.Colors[strings.ToLower(name)]; ok && hex != "" {
		return hex
	}
	return t.Event
}

func (t *Theme) applyDefaults() {
	if t.Event == "" {
		t.Event = t.Accent
	}
	if t.Today == "" {
		t.Today = t.Accent
	}
	if t.Drag == "" {
		t.Drag = coalesce(t.BgSelection, t.Accent)
	}
	if t.Colors == nil {
		t.Colors = map[string]string{}
	}
}

func isHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
