package producers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"grammystats/internal/models"
)

func TestSplitWorks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Bullet", "Song A (Artist A) • Song B (Artist B)", []string{"Song A (Artist A)", "Song B (Artist B)"}},
		{"Mojibake bullet", "Song A (Artist A) â\u0080¢ Song B (Artist B)", []string{"Song A (Artist A)", "Song B (Artist B)"}},
		{"Short mojibake", "Song A (Artist A)â¢Song B (Artist B)", []string{"Song A (Artist A)", "Song B (Artist B)"}},
		{"Blank pieces", " • Song A (Artist A) •  • ", []string{"Song A (Artist A)"}},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, SplitWorks(tt.input)); diff != "" {
				t.Errorf("SplitWorks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseWork(t *testing.T) {
	tests := []struct {
		input      string
		wantWork   string
		wantArtist string
		wantOK     bool
	}{
		{"Anti-Hero (Taylor Swift)", "Anti-Hero", "Taylor Swift", true},
		{"Song (Remix) (Artist)", "Song", "Artist", true},
		{"Album (Artist", "", "", false},
		{"No artist", "", "", false},
		{"(Artist Only)", "", "Artist Only", true},
	}

	for _, tt := range tests {
		work, artist, ok := ParseWork(tt.input)
		if work != tt.wantWork || artist != tt.wantArtist || ok != tt.wantOK {
			t.Errorf("ParseWork(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.input, work, artist, ok, tt.wantWork, tt.wantArtist, tt.wantOK)
		}
	}
}

func TestExtractAll(t *testing.T) {
	nominations := []models.ProducerNomination{
		{
			Year: 2023, AwardName: DefaultAward, Nominee: "Jack Antonoff", Winner: true,
			Works: "Anti-Hero (Taylor Swift) • Untitled demo • Midnights (Album)",
		},
		{
			Year: 2023, AwardName: "Producer Of The Year, Classical", Nominee: "Someone",
			Works: "Symphony (Orchestra)",
		},
	}

	got := ExtractAll(nominations, DefaultAward)
	want := []models.ProducerWork{
		{Producer: "Jack Antonoff", Work: "Anti-Hero", Artist: "Taylor Swift", Year: 2023, Winner: true},
		{Producer: "Jack Antonoff", Work: "Midnights", Artist: "Album", Year: 2023, Winner: true},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExtractAll mismatch (-want +got):\n%s", diff)
	}

	if all := ExtractAll(nominations, ""); len(all) != 3 {
		t.Errorf("ExtractAll without filter returned %d works, want 3", len(all))
	}

	if got := InAward(nominations, DefaultAward); len(got) != 1 || got[0].Nominee != "Jack Antonoff" {
		t.Errorf("InAward() = %+v, want only Jack Antonoff", got)
	}

	if got := InAward(nominations, ""); len(got) != 2 {
		t.Errorf("InAward() without filter returned %d nominations, want 2", len(got))
	}
}

func TestWinners(t *testing.T) {
	nominations := []models.ProducerNomination{
		{Year: 2024, Nominee: "Jack Antonoff", Winner: true},
		{Year: 2023, Nominee: "Jack Antonoff (tie)", Winner: true},
		{Year: 2023, Nominee: "Jack Antonoff", Winner: true},
		{Year: 2023, Nominee: "Dernst Emile II", Winner: false},
	}

	want := []YearWinner{{2023, "Jack Antonoff"}, {2024, "Jack Antonoff"}}
	if diff := cmp.Diff(want, Winners(nominations)); diff != "" {
		t.Errorf("Winners mismatch (-want +got):\n%s", diff)
	}
}
