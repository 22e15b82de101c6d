package analysis

import (
	"strings"

	"grammystats/internal/dataset"
	"grammystats/internal/formatter"
	"grammystats/internal/models"
	"grammystats/internal/stats"
)

const overviewTopArtists = 5

func (a *Analyzer) overview(s *Section) error {
	for _, kind := range dataset.AllKinds {
		t := a.table(kind)
		if t == nil {
			s.Notef("**%s**: unavailable.", kind)

			continue
		}

		s.Notef("**%s** (`%s`): %s records, %d columns: %s.",
			kind, t.Path, formatter.FormatInt(int64(t.Rows)), len(t.Columns), strings.Join(t.Columns, ", "))

		for _, w := range t.Warnings {
			s.Notef("**%s** warning: %s", kind, w)
		}

		if len(t.Head) == 0 {
			continue
		}

		head := newTable("First rows of "+string(kind), t.Columns...)
		head.Rows = t.Head
		s.AddTable(head)
	}

	if a.data.HasArtists() {
		top := stats.TopN(a.data.Artists, overviewTopArtists, func(r models.ArtistStat) float64 { return r.Streams })

		table := rightAlign(newTable("Top artists by streams", "Artist", "Streams", "Daily"), 1, 2)
		for _, r := range top {
			table.Rows = append(table.Rows, []string{r.Artist, formatter.FormatFloat(r.Streams, 1), formatter.FormatFloat(r.Daily, 1)})
		}

		s.AddTable(table)
	}

	return nil
}
