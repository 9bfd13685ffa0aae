// Package input holds completion helpers for the go-to-date prompt.
package input

import "strings"

// Suggestion is a completion entry shown under the prompt.
type Suggestion struct {
	Value       string
	Description string
}

// DateSuggestions lists the relative date keywords the prompt understands.
func DateSuggestions() []Suggestion {
	return []Suggestion{
		{Value: "today", Description: "Jump to today"},
		{Value: "tomorrow", Description: "Jump to tomorrow"},
		{Value: "yesterday", Description: "Jump to yesterday"},
		{Value: "next-week", Description: "Same day next week"},
		{Value: "next-monday", Description: "Monday after today"},
		{Value: "next-friday", Description: "Friday after today"},
		{Value: "monday", Description: "This or next Monday"},
		{Value: "friday", Description: "This or next Friday"},
	}
}

// Matching returns suggestions that start with the current input.
// Empty input, input containing spaces, and input that already looks like
// a date (starts with a digit) match nothing.
func Matching(input string, suggestions []Suggestion) []Suggestion {
	prefix := strings.ToLower(strings.TrimSpace(input))
	if prefix == "" || strings.Contains(prefix, " ") {
		return nil
	}
	if prefix[0] >= '0' && prefix[0] <= '9' {
		return nil
	}

	matches := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if strings.HasPrefix(s.Value, prefix) {
			matches = append(matches, s)
		}
	}
	return matches
}

// Autocomplete returns the first matching suggestion and whether it exists.
func Autocomplete(input string, suggestions []Suggestion) (string, bool) {
	matches := Matching(input, suggestions)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Value, true
}
