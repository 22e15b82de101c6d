package producers

import (
	"sort"
	"strings"

	"grammystats/internal/models"
)

// ChartIndex answers crude "does this title appear in the chart" queries
// by substring search over every lower-cased chart credit.
type ChartIndex struct {
	text string
}

// NewChartIndex joins the chart credits into one searchable string.
func NewChartIndex(entries []models.ChartEntry) *ChartIndex {
	credits := make([]string, len(entries))
	for i, e := range entries {
		credits[i] = strings.ToLower(e.Credit)
	}

	return &ChartIndex{text: strings.Join(credits, " ")}
}

// Contains reports whether work occurs anywhere in the chart text.
// An empty work never matches.
func (c *ChartIndex) Contains(work string) bool {
	if c == nil || strings.TrimSpace(work) == "" {
		return false
	}

	return strings.Contains(c.text, strings.ToLower(work))
}

// MarkChart sets InChart on every work.
func MarkChart(works []models.ProducerWork, index *ChartIndex) {
	for i := range works {
		works[i].InChart = index.Contains(works[i].Work)
	}
}

// Success aggregates one producer's record.
type Success struct {
	Producer    string
	Wins        int
	ChartHits   int
	Productions int
	WinRate     float64
	HitRate     float64
}

// Summarize groups works by producer, highest win rate first.
// Ties are broken by hit rate, then by name.
func Summarize(works []models.ProducerWork) []Success {
	index := make(map[string]int)

	var out []Success

	for _, w := range works {
		i, ok := index[w.Producer]
		if !ok {
			i = len(out)
			index[w.Producer] = i
			out = append(out, Success{Producer: w.Producer})
		}

		out[i].Productions++

		if w.Winner {
			out[i].Wins++
		}

		if w.InChart {
			out[i].ChartHits++
		}
	}

	for i := range out {
		out[i].WinRate = float64(out[i].Wins) / float64(out[i].Productions)
		out[i].HitRate = float64(out[i].ChartHits) / float64(out[i].Productions)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].WinRate != out[j].WinRate {
			return out[i].WinRate > out[j].WinRate
		}

		if out[i].HitRate != out[j].HitRate {
			return out[i].HitRate > out[j].HitRate
		}

		return out[i].Producer < out[j].Producer
	})

	return out
}
