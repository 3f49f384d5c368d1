package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  North Gate  ", want: "north gate"},
		{name: "lowercase", input: "Structure A", want: "structure a"},
		{name: "compress multiple spaces", input: "main   office", want: "main office"},
		{name: "diacritics preserved", input: "Café", want: "café"},
		{name: "hyphens preserved", input: "on-leave", want: "on-leave"},
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
		{name: "tabs and spaces", input: "\t cement \t", want: "cement"},
		{name: "inner tab", input: "steel\trods", want: "steel rods"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		term   string
		fields []string
		want   bool
	}{
		{name: "empty term", term: "", fields: []string{"anything"}, want: true},
		{name: "case-insensitive hit", term: "CRACK", fields: []string{"Wall crack", "Sector 9"}, want: true},
		{name: "second field", term: "sector", fields: []string{"Wall crack", "Sector 9"}, want: true},
		{name: "miss", term: "roof", fields: []string{"Wall crack", "Sector 9"}, want: false},
		{name: "no fields", term: "roof", fields: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MatchesAny(tt.term, tt.fields...); got != tt.want {
				t.Errorf("MatchesAny(%q, %v) = %v, want %v", tt.term, tt.fields, got, tt.want)
			}
		})
	}
}
