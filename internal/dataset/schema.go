package dataset

import "grammystats/internal/validator"

// Kind identifies one of the input tables.
type Kind string

// Input tables.
const (
	KindGrammy    Kind = "grammy"
	KindSpotify   Kind = "spotify"
	KindArtists   Kind = "artists"
	KindProducers Kind = "producers"
)

// AllKinds lists every input table in load order.
var AllKinds = []Kind{KindGrammy, KindSpotify, KindArtists, KindProducers}

// Column names.
const (
	ColYear           = "Year"
	ColAwardName      = "Award Name"
	ColNominee        = "Nominee"
	ColWinner         = "Winner"
	ColWork           = "Work"
	ColArtistAndTitle = "Artist and Title"
	ColStreams        = "Streams"
	ColDaily          = "Daily"
	ColArtist         = "Artist"
)

// Schemas for each input table.
var Schemas = map[Kind]validator.Schema{
	KindGrammy: {
		Name:     string(KindGrammy),
		Required: []string{ColYear, ColAwardName, ColNominee, ColWinner},
		Optional: []string{ColWork},
	},
	KindSpotify: {
		Name:     string(KindSpotify),
		Required: []string{ColArtistAndTitle, ColStreams},
		Optional: []string{ColDaily},
	},
	KindArtists: {
		Name:     string(KindArtists),
		Required: []string{ColArtist, ColStreams},
		Optional: []string{ColDaily},
	},
	KindProducers: {
		Name:     string(KindProducers),
		Required: []string{ColYear, ColAwardName, ColNominee, ColWork, ColWinner},
	},
}

// Files maps each table to its file name inside the datasets directory.
type Files struct {
	Grammy    string
	Spotify   string
	Artists   string
	Producers string
}

// DefaultFiles are the published file names.
func DefaultFiles() Files {
	return Files{
		Grammy:    "Grammy Award Nominees and Winners 1958-2024.csv",
		Spotify:   "Spotify most streamed.csv",
		Artists:   "artists.csv",
		Producers: "Supplementary Table Producer of the Year 2019-2024.csv",
	}
}

// Name returns the file name configured for kind.
func (f Files) Name(kind Kind) string {
	switch kind {
	case KindGrammy:
		return f.Grammy
	case KindSpotify:
		return f.Spotify
	case KindArtists:
		return f.Artists
	case KindProducers:
		return f.Producers
	}

	return ""
}
