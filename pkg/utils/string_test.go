package utils

import "testing"

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Taylor   Swift ", "Taylor Swift"},
		{"\tBad\nBunny", "Bad Bunny"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := CollapseWhitespace(tt.input); got != tt.expected {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"fits", "Adele", 10, "Adele"},
		{"unlimited", "Adele", 0, "Adele"},
		{"ascii", "Billie Eilish - bad guy", 10, "Billie ..."},
		{"wide runes", "米津玄師 - Lemon", 7, "米津..."},
		{"tiny width", "Beyoncé", 2, "Be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.width); got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}
