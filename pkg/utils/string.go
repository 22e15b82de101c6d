// Package utils provides common string helpers shared by the analysis packages.
package utils

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to truncated cells.
const Ellipsis = "..."

// CollapseWhitespace replaces runs of whitespace with a single space and trims the ends.
func CollapseWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// Truncate shortens str to at most maxWidth display columns.
// Wide (CJK) runes count as two columns.
func Truncate(str string, maxWidth int) string {
	if maxWidth <= 0 || runewidth.StringWidth(str) <= maxWidth {
		return str
	}

	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(str, maxWidth, "")
	}

	return runewidth.Truncate(str, maxWidth, Ellipsis)
}
