package models

// ChartEntry is one row of the most-streamed songs chart.
type ChartEntry struct {
	// Credit is the raw "Artist - Title" column.
	Credit  string  `json:"credit"`
	Artist  string  `json:"artist"`
	Title   string  `json:"title"`
	Streams float64 `json:"streams"`
	Daily   float64 `json:"daily"`

	// Key is the canonical artist key, filled in during normalization.
	Key    string `json:"key,omitempty"`
	Winner bool   `json:"winner"`
}

// StreamsMillions returns total streams in millions.
func (e ChartEntry) StreamsMillions() float64 {
	return e.Streams / 1_000_000
}

// ArtistStat is one row of the artist roster.
type ArtistStat struct {
	Artist  string  `json:"artist"`
	Streams float64 `json:"streams"`
	Daily   float64 `json:"daily"`

	Key    string `json:"key,omitempty"`
	Winner bool   `json:"winner"`
}

// StreamsMillions returns roster streams in millions. Roster totals are
// published in thousands, not raw counts.
func (a ArtistStat) StreamsMillions() float64 {
	return a.Streams / 1_000
}
