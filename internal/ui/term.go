package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Today's column and confirmations
	colorAccent = color.New(color.FgCyan, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Warnings such as skipped rows
	colorWarn = color.New(color.FgYellow)
)

// eventColors maps event color names to terminal colors. Unknown names and
// hex values fall back to colorEvent.
var eventColors = map[string]*color.Color{
	"blue":   color.New(color.BgBlue, color.FgWhite),
	"green":  color.New(color.BgGreen, color.FgBlack),
	"orange": color.New(color.BgYellow, color.FgBlack),
	"yellow": color.New(color.BgHiYellow, color.FgBlack),
	"red":    color.New(color.BgRed, color.FgWhite),
	"teal":   color.New(color.BgCyan, color.FgBlack),
	"pink":   color.New(color.BgHiMagenta, color.FgBlack),
	"purple": color.New(color.BgMagenta, color.FgWhite),
}

var colorEvent = color.New(color.BgBlue, color.FgWhite)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatAccent highlights text.
func formatAccent(s string) string {
	return colorAccent.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

// formatWarn formats a warning.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatEvent draws text as an event bar in the event's color.
func formatEvent(s, name string) string {
	if c, ok := eventColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c.Sprint(s)
	}
	return colorEvent.Sprint(s)
}
