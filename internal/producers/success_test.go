package producers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"grammystats/internal/models"
)

func TestChartIndex_Contains(t *testing.T) {
	index := NewChartIndex([]models.ChartEntry{
		{Credit: "Taylor Swift - Anti-Hero"},
		{Credit: "Harry Styles - As It Was"},
	})

	tests := []struct {
		work     string
		expected bool
	}{
		{"Anti-Hero", true},
		{"as it was", true},
		{"AS IT", true},
		{"Flowers", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		if got := index.Contains(tt.work); got != tt.expected {
			t.Errorf("Contains(%q) = %v, want %v", tt.work, got, tt.expected)
		}
	}
}

func TestSummarize(t *testing.T) {
	works := []models.ProducerWork{
		{Producer: "A", Work: "w1", Winner: true},
		{Producer: "A", Work: "w2", Winner: true},
		{Producer: "B", Work: "w3", Winner: false},
		{Producer: "B", Work: "Anti-Hero", Winner: false},
	}

	MarkChart(works, NewChartIndex([]models.ChartEntry{{Credit: "Taylor Swift - Anti-Hero"}}))

	got := Summarize(works)
	want := []Success{
		{Producer: "A", Wins: 2, ChartHits: 0, Productions: 2, WinRate: 1, HitRate: 0},
		{Producer: "B", Wins: 0, ChartHits: 1, Productions: 2, WinRate: 0, HitRate: 0.5},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}
