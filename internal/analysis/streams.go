package analysis

import (
	"grammystats/internal/export"
	"grammystats/internal/formatter"
	"grammystats/internal/models"
	"grammystats/internal/stats"
)

// ArtistTotal is the summed streams of one main artist.
type ArtistTotal struct {
	Artist  string
	Streams float64
	Songs   int
}

// TotalsByArtist sums chart streams per main artist, highest first.
func TotalsByArtist(entries []models.ChartEntry) []ArtistTotal {
	index := make(map[string]int)

	var totals []ArtistTotal

	for _, e := range entries {
		i, ok := index[e.Artist]
		if !ok {
			i = len(totals)
			index[e.Artist] = i
			totals = append(totals, ArtistTotal{Artist: e.Artist})
		}

		totals[i].Streams += e.Streams
		totals[i].Songs++
	}

	return stats.TopN(totals, 0, func(t ArtistTotal) float64 { return t.Streams })
}

func (a *Analyzer) streams(s *Section) error {
	s.Notef("%s songs in the chart.", formatter.FormatInt(int64(len(a.data.Chart))))

	totals := TotalsByArtist(a.data.Chart)
	exp := &export.Table{Name: "artist_streams", Headers: []string{"Artist", "Songs", "Streams"}}

	for _, t := range totals {
		exp.AddRow(t.Artist, t.Songs, t.Streams)
	}

	table := rightAlign(newTable("Most streamed artists", exp.Headers...), 1, 2)
	for _, t := range stats.TopN(totals, a.topN(), func(t ArtistTotal) float64 { return t.Streams }) {
		table.Rows = append(table.Rows, []string{
			t.Artist, formatter.FormatInt(int64(t.Songs)), formatter.FormatFloat(t.Streams, 0),
		})
	}

	s.AddTable(table)

	if err := a.export(s, exp, ""); err != nil {
		return err
	}

	daily := stats.TopN(a.data.Chart, a.topN(), func(e models.ChartEntry) float64 { return e.Daily })

	dailyTable := rightAlign(newTable("Top songs by daily streams", "Artist and Title", "Daily"), 1)
	dailyExp := &export.Table{Name: "top_daily", Headers: dailyTable.Headers}

	for _, e := range daily {
		dailyTable.Rows = append(dailyTable.Rows, []string{e.Credit, formatter.FormatFloat(e.Daily, 0)})
		dailyExp.AddRow(e.Credit, e.Daily)
	}

	s.AddTable(dailyTable)

	return a.export(s, dailyExp, "")
}
