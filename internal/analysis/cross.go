package analysis

import (
	"grammystats/internal/chart"
	"grammystats/internal/export"
	"grammystats/internal/formatter"
	"grammystats/internal/matcher"
	"grammystats/internal/models"
	"grammystats/internal/stats"
)

// Partition labels.
const (
	LabelWinner    = "Grammy Winner"
	LabelNonWinner = "Non-Winner"
)

func entryStreams(e models.ChartEntry) float64 { return e.Streams }

func entryMillions(e models.ChartEntry) float64 { return e.StreamsMillions() }

func entryKey(e models.ChartEntry) string { return e.Key }

func (a *Analyzer) chartPartition() (matched, unmatched []models.ChartEntry) {
	return matcher.Partition(a.data.Chart, a.winners, entryKey)
}

func (a *Analyzer) cross(s *Section) error {
	matched, unmatched := a.chartPartition()

	s.Notef("Total Grammy winners: %s.", formatter.FormatInt(int64(a.winners.Len())))
	s.Notef("Grammy winners in the chart: %s (%s songs); other songs: %s.",
		formatter.FormatInt(int64(len(matcher.DistinctKeys(matched)))),
		formatter.FormatInt(int64(len(matched))), formatter.FormatInt(int64(len(unmatched))))

	a.describe(s, matched, unmatched)

	topWinners := stats.TopN(matched, a.topN(), entryStreams)

	table := rightAlign(newTable("Top Grammy winners by streams", "Artist and Title", "Streams"), 1)
	for _, e := range topWinners {
		table.Rows = append(table.Rows, []string{e.Credit, formatter.FormatFloat(e.Streams, 0)})
	}

	s.AddTable(table)

	if err := a.streamsBoxPlot(s); err != nil {
		return err
	}

	if err := a.averageStreams(s, matched, unmatched); err != nil {
		return err
	}

	if err := a.snubbed(s, matched, unmatched); err != nil {
		return err
	}

	top := stats.TopN(unmatched, a.topN(), entryMillions)

	nonWinners := rightAlign(newTable("Top streamed songs without a Grammy win",
		"Artist", "Title", "Streams (M)"), 2)
	for _, e := range top {
		nonWinners.Rows = append(nonWinners.Rows, []string{e.Artist, e.Title, formatter.FormatFloat(e.StreamsMillions(), 2)})
	}

	s.AddTable(nonWinners)

	return a.export(s, chartExport("top_non_grammy_artists", top), "top_non_grammy_artists.csv")
}

func (a *Analyzer) describe(s *Section, matched, unmatched []models.ChartEntry) {
	table := rightAlign(newTable("Streaming statistics",
		"Status", "count", "mean", "std", "min", "25%", "50%", "75%", "max"), 1, 2, 3, 4, 5, 6, 7, 8)

	for _, part := range []struct {
		label   string
		entries []models.ChartEntry
	}{
		{LabelNonWinner, unmatched},
		{LabelWinner, matched},
	} {
		d := stats.Describe(stats.Values(part.entries, entryStreams))
		table.Rows = append(table.Rows, []string{
			part.label,
			formatter.FormatInt(int64(d.Count)),
			formatter.FormatFloat(d.Mean, 0),
			formatter.FormatFloat(d.Std, 0),
			formatter.FormatFloat(d.Min, 0),
			formatter.FormatFloat(d.Q25, 0),
			formatter.FormatFloat(d.Median, 0),
			formatter.FormatFloat(d.Q75, 0),
			formatter.FormatFloat(d.Max, 0),
		})
	}

	s.AddTable(table)
}

// streamsBoxPlot compares the first boxplot_sample chart rows on a log scale.
func (a *Analyzer) streamsBoxPlot(s *Section) error {
	sample := a.data.Chart
	if n := a.cfg.Analysis.BoxplotSample; n > 0 && len(sample) > n {
		sample = sample[:n]
	}

	matched, unmatched := matcher.Partition(sample, a.winners, entryKey)

	var groups []chart.Group

	if len(unmatched) > 0 {
		groups = append(groups, chart.Group{Label: LabelNonWinner, Values: stats.Values(unmatched, entryStreams)})
	}

	if len(matched) > 0 {
		groups = append(groups, chart.Group{Label: LabelWinner, Values: stats.Values(matched, entryStreams)})
	}

	return a.plot(s, "grammy_vs_streams.png", "Streaming distribution", func(r *chart.Renderer) (string, error) {
		return r.BoxPlot("grammy_vs_streams.png", "Streaming Distribution: Grammy Winners vs Non-Winners",
			"Streams", groups, true)
	})
}

func (a *Analyzer) averageStreams(s *Section, matched, unmatched []models.ChartEntry) error {
	var (
		labels []string
		values []float64
	)

	table := rightAlign(newTable("Average streams", "Status", "Songs", "Average streams (M)"), 1, 2)

	for _, part := range []struct {
		label   string
		entries []models.ChartEntry
	}{
		{LabelWinner, matched},
		{LabelNonWinner, unmatched},
	} {
		if len(part.entries) == 0 {
			table.Rows = append(table.Rows, []string{part.label, "0", "n/a"})

			continue
		}

		mean := stats.Mean(stats.Values(part.entries, entryMillions))
		table.Rows = append(table.Rows, []string{
			part.label, formatter.FormatInt(int64(len(part.entries))), formatter.FormatFloat(mean, 2),
		})
		labels = append(labels, part.label)
		values = append(values, mean)
	}

	s.AddTable(table)

	return a.plot(s, "grammy_impact.png", "Average streams by Grammy status", func(r *chart.Renderer) (string, error) {
		return r.Bars("grammy_impact.png", "Average Streaming Numbers by Grammy Status",
			"Average Streams (Millions)", labels, values)
	})
}

func (a *Analyzer) snubbed(s *Section, matched, unmatched []models.ChartEntry) error {
	p := a.cfg.Analysis.SnubPercentile

	overlooked, threshold, ok := matcher.Snubbed(matched, unmatched, entryMillions, p, 0)
	if !ok {
		s.Notef("No Grammy winners found in the chart; no snub threshold.")

		return nil
	}

	s.Notef("Snub threshold (%s percentile of winners): %s M streams; %d songs above it.",
		formatter.FormatPercent(p), formatter.FormatFloat(threshold, 2), len(overlooked))

	if len(overlooked) == 0 {
		return nil
	}

	shown := overlooked
	if len(shown) > a.topN() {
		shown = shown[:a.topN()]
	}

	table := rightAlign(newTable("Highly streamed songs without a Grammy win", "Artist and Title", "Streams (M)"), 1)
	for _, e := range shown {
		table.Rows = append(table.Rows, []string{e.Credit, formatter.FormatFloat(e.StreamsMillions(), 2)})
	}

	s.AddTable(table)

	return a.export(s, chartExport("overlooked_artists", overlooked), "overlooked_artists.csv")
}

func chartExport(name string, entries []models.ChartEntry) *export.Table {
	t := &export.Table{
		Name:    name,
		Headers: []string{"Artist and Title", "Artist", "Title", "Streams", "Daily", "Streams (M)", "Winner"},
	}

	for _, e := range entries {
		t.AddRow(e.Credit, e.Artist, e.Title, e.Streams, e.Daily, e.StreamsMillions(), e.Winner)
	}

	return t
}

func (a *Analyzer) impact(s *Section) error {
	matched, _ := a.chartPartition()

	n := len(matcher.DistinctKeys(matched))
	if n == 0 {
		s.Notef("No Grammy winners found in the top streamed songs.")

		return nil
	}

	s.Notef("Number of Grammy winners in the top streamed songs: %s.", formatter.FormatInt(int64(n)))
	s.Notef("Pre/post award comparisons need daily streaming history around award dates, which the chart does not carry.")

	return nil
}

func (a *Analyzer) roster(s *Section) error {
	matched, unmatched := matcher.Partition(a.data.Artists, a.winners, func(r models.ArtistStat) string { return r.Key })

	s.Notef("%s of %s roster artists have won a Grammy.",
		formatter.FormatInt(int64(len(matched))), formatter.FormatInt(int64(len(a.data.Artists))))

	millions := func(r models.ArtistStat) float64 { return r.StreamsMillions() }

	exp := &export.Table{Name: "artist_roster", Headers: []string{"Artist", "Streams (M)", "Daily", "Winner"}}
	for _, r := range stats.TopN(a.data.Artists, 0, millions) {
		exp.AddRow(r.Artist, r.StreamsMillions(), r.Daily, r.Winner)
	}

	for _, part := range []struct {
		title   string
		artists []models.ArtistStat
	}{
		{"Top roster artists with a Grammy win", matched},
		{"Top roster artists without a Grammy win", unmatched},
	} {
		table := rightAlign(newTable(part.title, "Artist", "Streams (M)", "Daily"), 1, 2)
		for _, r := range stats.TopN(part.artists, a.topN(), millions) {
			table.Rows = append(table.Rows, []string{r.Artist, formatter.FormatFloat(r.StreamsMillions(), 2), formatter.FormatFloat(r.Daily, 1)})
		}

		s.AddTable(table)
	}

	return a.export(s, exp, "")
}
