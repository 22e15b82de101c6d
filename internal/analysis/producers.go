package analysis

import (
	"strconv"

	"grammystats/internal/export"
	"grammystats/internal/formatter"
	"grammystats/internal/producers"
)

func (a *Analyzer) producers(s *Section) error {
	award := a.cfg.Analysis.ProducerAward
	nominations := producers.InAward(a.data.Producers, award)

	works := producers.ExtractAll(nominations, "")

	if a.data.HasChart() {
		producers.MarkChart(works, producers.NewChartIndex(a.data.Chart))
	} else {
		s.Notef("Streaming chart unavailable; chart hits are not counted.")
	}

	s.Notef("%s works extracted from %s nominations for %q.",
		formatter.FormatInt(int64(len(works))), formatter.FormatInt(int64(len(nominations))), award)

	worksExp := &export.Table{
		Name:    "producer_works",
		Headers: []string{"Producer", "Work", "Artist", "Year", "Winner", "In Chart"},
	}
	for _, w := range works {
		worksExp.AddRow(w.Producer, w.Work, w.Artist, w.Year, w.Winner, w.InChart)
	}

	if err := a.export(s, worksExp, "producer_works.csv"); err != nil {
		return err
	}

	success := producers.Summarize(works)

	table := rightAlign(newTable("Producer success",
		"Producer", "Wins", "Chart hits", "Productions", "Win rate", "Hit rate"), 1, 2, 3, 4, 5)
	successExp := &export.Table{Name: "producer_success", Headers: table.Headers}

	for i, p := range success {
		successExp.AddRow(p.Producer, p.Wins, p.ChartHits, p.Productions, p.WinRate, p.HitRate)

		if i >= a.topN() {
			continue
		}

		table.Rows = append(table.Rows, []string{
			p.Producer, strconv.Itoa(p.Wins), strconv.Itoa(p.ChartHits), strconv.Itoa(p.Productions),
			formatter.FormatPercent(p.WinRate), formatter.FormatPercent(p.HitRate),
		})
	}

	s.AddTable(table)

	if err := a.export(s, successExp, ""); err != nil {
		return err
	}

	winners := producers.Winners(nominations)

	byYear := newTable("Producer of the Year winners", "Year", "Producer")
	winnersExp := &export.Table{Name: "producer_winners", Headers: byYear.Headers}

	for _, w := range winners {
		byYear.Rows = append(byYear.Rows, []string{strconv.Itoa(w.Year), w.Producer})
		winnersExp.AddRow(w.Year, w.Producer)
	}

	s.AddTable(byYear)

	return a.export(s, winnersExp, "")
}
