// Package producers extracts credited productions from Producer of the Year
// nominations and checks them against the streaming chart.
package producers

import (
	"sort"
	"strings"

	"grammystats/internal/models"
)

// DefaultAward is the category whose works are analysed.
const DefaultAward = "Producer Of The Year, Non-Classical"

// Bullet tokens separating works. The others are a UTF-8 bullet decoded as
// Latin-1, with and without its invisible control byte.
var bullets = []string{"•", "â\u0080¢", "â¢"}

// SplitWorks splits a works field on bullet tokens, dropping blank pieces.
func SplitWorks(field string) []string {
	for _, b := range bullets[1:] {
		field = strings.ReplaceAll(field, b, bullets[0])
	}

	var pieces []string

	for _, piece := range strings.Split(field, bullets[0]) {
		if p := strings.TrimSpace(piece); p != "" {
			pieces = append(pieces, p)
		}
	}

	return pieces
}

// ParseWork splits "Work (Artist)" into its parts. ok is false when the
// piece has no parenthesised artist with a closing parenthesis.
func ParseWork(piece string) (work, artist string, ok bool) {
	open := strings.LastIndex(piece, "(")
	if open < 0 {
		return "", "", false
	}

	inner, _, closed := strings.Cut(piece[open+1:], ")")
	if !closed {
		return "", "", false
	}

	first := strings.Index(piece, "(")

	return strings.TrimSpace(piece[:first]), strings.TrimSpace(inner), true
}

// ExtractWorks returns the works of a nomination that name an artist.
func ExtractWorks(n models.ProducerNomination) []models.ProducerWork {
	var works []models.ProducerWork

	for _, piece := range SplitWorks(n.Works) {
		work, artist, ok := ParseWork(piece)
		if !ok {
			continue
		}

		works = append(works, models.ProducerWork{
			Producer: n.Nominee,
			Work:     work,
			Artist:   artist,
			Year:     n.Year,
			Winner:   n.Winner,
		})
	}

	return works
}

// InAward returns the nominations of one award category.
// An empty award keeps all categories.
func InAward(nominations []models.ProducerNomination, award string) []models.ProducerNomination {
	if award == "" {
		return nominations
	}

	var out []models.ProducerNomination

	for _, n := range nominations {
		if n.AwardName == award {
			out = append(out, n)
		}
	}

	return out
}

// ExtractAll extracts works from every nomination in the given award category.
// An empty award keeps all categories.
func ExtractAll(nominations []models.ProducerNomination, award string) []models.ProducerWork {
	var works []models.ProducerWork

	for _, n := range InAward(nominations, award) {
		works = append(works, ExtractWorks(n)...)
	}

	return works
}

// ProducerName returns the nominee text before any parenthesis.
func ProducerName(nominee string) string {
	name, _, _ := strings.Cut(nominee, "(")

	return strings.TrimSpace(name)
}

// YearWinner is a producer who won in a given year.
type YearWinner struct {
	Year     int
	Producer string
}

// Winners lists distinct (year, producer) winners ordered by year then name.
func Winners(nominations []models.ProducerNomination) []YearWinner {
	seen := make(map[YearWinner]struct{})

	var winners []YearWinner

	for _, n := range nominations {
		if !n.Winner {
			continue
		}

		w := YearWinner{Year: n.Year, Producer: ProducerName(n.Nominee)}
		if _, dup := seen[w]; dup {
			continue
		}

		seen[w] = struct{}{}
		winners = append(winners, w)
	}

	sort.SliceStable(winners, func(i, j int) bool {
		if winners[i].Year != winners[j].Year {
			return winners[i].Year < winners[j].Year
		}

		return winners[i].Producer < winners[j].Producer
	})

	return winners
}
