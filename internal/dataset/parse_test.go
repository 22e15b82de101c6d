package dataset

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input     string
		thousands string
		expected  float64
		wantErr   bool
	}{
		{"1,234,567", ",", 1234567, false},
		{" 85,041.3 ", ",", 85041.3, false},
		{"1.234.567", ".", 1234567, false},
		{"", ",", 0, false},
		{"12", "", 12, false},
		{"1,234", "", 0, true},
		{"n/a", ",", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseNumber(tt.input, tt.thousands)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}

		if got != tt.expected {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"2024", 2024, false},
		{"2024.0", 2024, false},
		{"", 0, false},
		{"2024.5", 0, true},
		{"last year", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseYear(tt.input)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseYear(%q) = (%d, %v), want (%d, err=%v)", tt.input, got, err, tt.expected, tt.wantErr)
		}
	}
}

func TestParseWinner(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"True", true, false},
		{"FALSE", false, false},
		{"1", true, false},
		{"yes", true, false},
		{"", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		got, err := ParseWinner(tt.input)
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("ParseWinner(%q) = (%v, %v), want (%v, err=%v)", tt.input, got, err, tt.expected, tt.wantErr)
		}
	}
}
