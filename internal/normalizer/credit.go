package normalizer

import "strings"

// CreditDelimiter separates artist and title in chart credits.
const CreditDelimiter = " - "

// Fallback delimiters, tried in order when CreditDelimiter is absent.
// The last entry is a UTF-8 en dash that was decoded as Latin-1.
var fallbackDelimiters = []string{
	" – ",
	" — ",
	"â\u0080\u0093",
}

// SplitCredit splits an "Artist - Title" string on the first delimiter.
// Without a delimiter the whole string is the artist.
func SplitCredit(credit string) (artist, title string) {
	if a, t, ok := strings.Cut(credit, CreditDelimiter); ok {
		return strings.TrimSpace(a), strings.TrimSpace(t)
	}

	for _, delim := range fallbackDelimiters {
		if a, t, ok := strings.Cut(credit, delim); ok {
			return strings.TrimSpace(a), strings.TrimSpace(t)
		}
	}

	return strings.TrimSpace(credit), ""
}
