package input

import "testing"

func TestMatching(t *testing.T) {
	suggestions := DateSuggestions()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "full", input: "today", want: 1},
		{name: "prefix", input: "t", want: 2},
		{name: "case_insensitive", input: "NEXT", want: 3},
		{name: "date_like", input: "2024-01", want: 0},
		{name: "with_space", input: "next week", want: 0},
		{name: "unknown", input: "someday", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matching(tt.input, suggestions)
			if len(got) != tt.want {
				t.Fatalf("matches = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAutocomplete(t *testing.T) {
	suggestions := DateSuggestions()

	got, ok := Autocomplete("tom", suggestions)
	if !ok || got != "tomorrow" {
		t.Fatalf("Autocomplete(tom) = %q, %v; want tomorrow, true", got, ok)
	}

	if _, ok := Autocomplete("zzz", suggestions); ok {
		t.Fatal("Autocomplete(zzz) should not match")
	}
}
