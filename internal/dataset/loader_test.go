package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"grammystats/internal/validator"
)

var fixtureFiles = Files{
	Grammy:    "grammy.csv",
	Spotify:   "spotify.csv",
	Artists:   "artists.csv",
	Producers: "producers.csv",
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestLoader_LoadAll(t *testing.T) {
	l := NewLoader("testdata", fixtureFiles, DefaultOptions(), true, nil)

	ds, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(ds.Awards) != 10 || len(ds.Chart) != 8 || len(ds.Artists) != 4 || len(ds.Producers) != 3 {
		t.Fatalf("unexpected sizes: awards=%d chart=%d artists=%d producers=%d",
			len(ds.Awards), len(ds.Chart), len(ds.Artists), len(ds.Producers))
	}

	if got := ds.Awards[8].Nominee; got != "Beyoncé" {
		t.Errorf("Latin-1 nominee = %q, want Beyoncé", got)
	}

	if got := ds.Awards[4].Nominee; got != "Tyler, The Creator" {
		t.Errorf("quoted nominee = %q, want Tyler, The Creator", got)
	}

	if !ds.Awards[0].Winner || ds.Awards[1].Winner {
		t.Error("winner flags not parsed")
	}

	if ds.Chart[0].Streams != 4281468720 || ds.Chart[0].Daily != 1530751 {
		t.Errorf("chart numbers = (%v, %v), want thousands separators removed", ds.Chart[0].Streams, ds.Chart[0].Daily)
	}

	if ds.Artists[0].Streams != 85041.3 {
		t.Errorf("artist streams = %v, want 85041.3", ds.Artists[0].Streams)
	}

	if !strings.Contains(ds.Producers[0].Works, "â\u0080¢") {
		t.Errorf("producer works %q should keep the undecoded bullet bytes", ds.Producers[0].Works)
	}

	if ds.AwardsTable.Rows != 10 || len(ds.AwardsTable.Head) != 5 {
		t.Errorf("awards table = %+v, want 10 rows and 5 head rows", ds.AwardsTable)
	}

	if len(ds.Winners()) != 8 {
		t.Errorf("Winners() = %d, want 8", len(ds.Winners()))
	}
}

func TestLoader_LoadSubset(t *testing.T) {
	l := NewLoader("testdata", fixtureFiles, DefaultOptions(), true, nil)

	ds, err := l.Load(context.Background(), KindSpotify)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !ds.HasChart() || ds.HasAwards() || ds.HasArtists() || ds.HasProducers() {
		t.Error("only the chart should be loaded")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()

	lenient := NewLoader(dir, DefaultFiles(), DefaultOptions(), false, nil)

	ds, err := lenient.Load(context.Background())
	if err != nil {
		t.Fatalf("lenient Load returned error: %v", err)
	}

	if ds.HasAwards() || ds.HasChart() || ds.Awards != nil {
		t.Error("missing tables should be unavailable")
	}

	strict := NewLoader(dir, DefaultFiles(), DefaultOptions(), true, nil)
	if _, err := strict.Load(context.Background()); !errors.Is(err, ErrMissingFile) {
		t.Errorf("strict Load error = %v, want ErrMissingFile", err)
	}
}

func TestLoader_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "spotify.csv", "Song,Streams\nA - B,1\n")

	l := NewLoader(dir, fixtureFiles, DefaultOptions(), false, nil)

	_, err := l.Load(context.Background(), KindSpotify)
	if !errors.Is(err, validator.ErrMissingColumn) {
		t.Errorf("Load error = %v, want ErrMissingColumn", err)
	}
}

func TestLoader_MalformedNumber(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "spotify.csv", "Artist and Title,Streams,Daily\nA - B,\"1,000\",5\nC - D,lots,5\n")

	l := NewLoader(dir, fixtureFiles, DefaultOptions(), false, nil)

	_, err := l.Load(context.Background(), KindSpotify)

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}

	if perr.Line != 3 || perr.Column != ColStreams || perr.Value != "lots" {
		t.Errorf("ParseError = %+v, want line 3 Streams lots", perr)
	}
}

func TestLoader_LineNumbersWithQuotedNewlines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{"single line records", "Artist and Title,Streams,Daily\nA - B,1,5\nC - D,lots,5\n", 3},
		{"newline inside quoted credit", "Artist and Title,Streams,Daily\n\"A - B\nLive\",1,5\nC - D,lots,5\n", 4},
		{"two multi-line records", "Artist and Title,Streams,Daily\n\"A\n-\nB\",1,5\n\"C\n- D\",lots,5\n", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "spotify.csv", tt.content)

			_, err := NewLoader(dir, fixtureFiles, DefaultOptions(), true, nil).Load(context.Background(), KindSpotify)

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Load error = %v, want *ParseError", err)
			}

			if perr.Line != tt.line {
				t.Errorf("ParseError.Line = %d, want %d", perr.Line, tt.line)
			}
		})
	}
}

func TestLoader_TableWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "spotify.csv", "Artist and Title,Streams,Daily\n\"A - B\nLive\",1,5\n,2,3\n")

	ds, err := NewLoader(dir, fixtureFiles, DefaultOptions(), true, nil).Load(context.Background(), KindSpotify)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(ds.ChartTable.Warnings) != 1 {
		t.Fatalf("Warnings = %q, want one", ds.ChartTable.Warnings)
	}

	if !strings.Contains(ds.ChartTable.Warnings[0], "spotify line 4: missing Artist and Title") {
		t.Errorf("warning = %q, want spotify line 4", ds.ChartTable.Warnings[0])
	}
}

func TestLoader_UTF8WithBOM(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "artists.csv", "\ufeffArtist,Streams\nRosalía,\"1,500\"\n")

	opts := DefaultOptions()
	opts.Encoding = EncodingUTF8

	ds, err := NewLoader(dir, fixtureFiles, opts, true, nil).Load(context.Background(), KindArtists)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if ds.Artists[0].Artist != "Rosalía" || ds.Artists[0].Streams != 1500 {
		t.Errorf("artist = %+v, want Rosalía with 1500 streams", ds.Artists[0])
	}
}

func TestLoader_UnknownEncoding(t *testing.T) {
	opts := DefaultOptions()
	opts.Encoding = "ebcdic"

	_, err := NewLoader("testdata", fixtureFiles, opts, true, nil).Load(context.Background(), KindArtists)
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Load error = %v, want ErrUnknownEncoding", err)
	}
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader("testdata", fixtureFiles, DefaultOptions(), true, nil).Load(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load error = %v, want context.Canceled", err)
	}
}

func TestLoader_Path(t *testing.T) {
	l := NewLoader("datasets", DefaultFiles(), DefaultOptions(), true, nil)

	want := filepath.Join("datasets", "artists.csv")
	if got := l.Path(KindArtists); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}
