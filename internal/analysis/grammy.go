package analysis

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"grammystats/internal/chart"
	"grammystats/internal/export"
	"grammystats/internal/formatter"
	"grammystats/internal/models"
	"grammystats/internal/stats"
)

func (a *Analyzer) grammyWinners(s *Section) error {
	winners := a.data.Winners()
	s.Notef("%s winning nominations out of %s.",
		formatter.FormatInt(int64(len(winners))), formatter.FormatInt(int64(len(a.data.Awards))))

	nominees := make([]string, len(winners))
	years := make([]int, len(winners))

	for i, w := range winners {
		nominees[i] = w.Nominee
		years[i] = w.Year
	}

	top := stats.Head(stats.ValueCounts(nominees), a.topN())

	table := rightAlign(newTable("Most awarded nominees", "Nominee", "Awards"), 1)
	exp := &export.Table{Name: "most_awarded", Headers: table.Headers}

	for _, c := range top {
		table.Rows = append(table.Rows, []string{c.Label, strconv.Itoa(c.N)})
		exp.AddRow(c.Label, c.N)
	}

	s.AddTable(table)

	if err := a.export(s, exp, ""); err != nil {
		return err
	}

	yearKeys, counts := stats.IntCounts(years)

	byYear := rightAlign(newTable("Awards by year", "Year", "Awards"), 1)
	yearExp := &export.Table{Name: "awards_by_year", Headers: byYear.Headers}
	xs := make([]float64, len(yearKeys))
	ys := make([]float64, len(yearKeys))

	for i, y := range yearKeys {
		byYear.Rows = append(byYear.Rows, []string{strconv.Itoa(y), strconv.Itoa(counts[i])})
		yearExp.AddRow(y, counts[i])
		xs[i], ys[i] = float64(y), float64(counts[i])
	}

	s.AddTable(byYear)

	if err := a.export(s, yearExp, ""); err != nil {
		return err
	}

	return a.plot(s, "awards_by_year.png", "Awards by year", func(r *chart.Renderer) (string, error) {
		return r.Line("awards_by_year.png", "Number of Grammy Awards by Year", "Year", "Number of Awards", xs, ys)
	})
}

// GenreMatcher finds the leftmost configured genre in an award name.
type GenreMatcher struct {
	re        *regexp.Regexp
	canonical map[string]string
}

// NewGenreMatcher builds a case-insensitive matcher; matches are reported
// with the casing given in genres.
func NewGenreMatcher(genres []string) *GenreMatcher {
	parts := make([]string, 0, len(genres))
	canonical := make(map[string]string, len(genres))

	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}

		parts = append(parts, regexp.QuoteMeta(g))

		if _, dup := canonical[strings.ToLower(g)]; !dup {
			canonical[strings.ToLower(g)] = g
		}
	}

	m := &GenreMatcher{canonical: canonical}
	if len(parts) > 0 {
		m.re = regexp.MustCompile(`(?i)(` + strings.Join(parts, "|") + `)`)
	}

	return m
}

// Match returns the genre found in award, or "".
func (m *GenreMatcher) Match(award string) string {
	if m.re == nil {
		return ""
	}

	found := m.re.FindString(award)
	if found == "" {
		return ""
	}

	return m.canonical[strings.ToLower(found)]
}

func (a *Analyzer) genres(s *Section) error {
	m := NewGenreMatcher(a.cfg.Analysis.Genres)

	labels := make([]string, len(a.data.Awards))
	matched := 0

	for i, rec := range a.data.Awards {
		labels[i] = m.Match(rec.AwardName)
		if labels[i] != "" {
			matched++
		}
	}

	s.Notef("%s of %s award entries name a genre.",
		formatter.FormatInt(int64(matched)), formatter.FormatInt(int64(len(labels))))

	top := stats.Head(stats.ValueCounts(labels), a.topN())

	table := rightAlign(newTable("Most common award genres", "Genre", "Awards"), 1)
	exp := &export.Table{Name: "award_genres", Headers: table.Headers}
	names := make([]string, len(top))
	values := make([]float64, len(top))

	for i, c := range top {
		table.Rows = append(table.Rows, []string{c.Label, strconv.Itoa(c.N)})
		exp.AddRow(c.Label, c.N)
		names[i], values[i] = c.Label, float64(c.N)
	}

	s.AddTable(table)

	if err := a.export(s, exp, ""); err != nil {
		return err
	}

	return a.plot(s, "grammy_genres.png", "Award genres", func(r *chart.Renderer) (string, error) {
		return r.Bars("grammy_genres.png", "Most Common Grammy Award Genres", "Number of Awards", names, values)
	})
}

// Longevity is one artist's span of winning years.
type Longevity struct {
	Artist string
	First  int
	Last   int
	// Span counts calendar years from first to last win, inclusive.
	Span int
	Wins int
}

// ComputeLongevity aggregates distinct (year, artist) wins per artist key,
// longest span first, then most wins, then by name.
func ComputeLongevity(records []models.AwardRecord, key, display func(string) string) []Longevity {
	type yearKey struct {
		year int
		key  string
	}

	seen := make(map[yearKey]struct{})
	index := make(map[string]int)

	var out []Longevity

	for _, rec := range records {
		if !rec.Winner {
			continue
		}

		k := key(rec.Nominee)
		if k == "" {
			continue
		}

		yk := yearKey{rec.Year, k}
		if _, dup := seen[yk]; dup {
			continue
		}

		seen[yk] = struct{}{}

		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, Longevity{Artist: display(rec.Nominee), First: rec.Year, Last: rec.Year})
		}

		l := &out[i]
		l.Wins++
		l.First = min(l.First, rec.Year)
		l.Last = max(l.Last, rec.Year)
		l.Span = l.Last - l.First + 1
	}

	slices.SortStableFunc(out, func(x, y Longevity) int {
		if c := cmp.Compare(y.Span, x.Span); c != 0 {
			return c
		}
		if c := cmp.Compare(y.Wins, x.Wins); c != 0 {
			return c
		}
		return cmp.Compare(x.Artist, y.Artist)
	})

	return out
}

func (a *Analyzer) longevity(s *Section) error {
	all := ComputeLongevity(a.data.Awards, a.norm.Key, a.norm.Normalize)
	top := all
	if len(top) > a.topN() {
		top = top[:a.topN()]
	}

	s.Notef("%s winning artists.", formatter.FormatInt(int64(len(all))))

	table := rightAlign(newTable("Longest Grammy recognition spans",
		"Artist", "First win", "Last win", "Years active", "Total wins"), 1, 2, 3, 4)
	exp := &export.Table{Name: "artist_longevity", Headers: table.Headers}
	names := make([]string, len(top))
	spans := make([]float64, len(top))

	for i, l := range top {
		table.Rows = append(table.Rows, []string{
			l.Artist, strconv.Itoa(l.First), strconv.Itoa(l.Last), strconv.Itoa(l.Span), strconv.Itoa(l.Wins),
		})
		exp.AddRow(l.Artist, l.First, l.Last, l.Span, l.Wins)
		names[i], spans[i] = l.Artist, float64(l.Span)
	}

	s.AddTable(table)

	if err := a.export(s, exp, ""); err != nil {
		return err
	}

	return a.plot(s, "artist_longevity.png", "Artist longevity", func(r *chart.Renderer) (string, error) {
		return r.HorizontalBars("artist_longevity.png", "Artists by Grammy Recognition Span (Years)",
			"Years of Grammy Recognition", names, spans)
	})
}
