package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errInvalidYear = errors.New("invalid year")

// ParseError reports a field that could not be converted.
type ParseError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d column %q: cannot parse %q: %v", e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseNumber parses a numeric field, removing the thousands separator.
// A blank field is zero.
func ParseNumber(value, thousands string) (float64, error) {
	s := strings.TrimSpace(value)
	if thousands != "" {
		s = strings.ReplaceAll(s, thousands, "")
	}

	if s == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	return f, nil
}

// ParseYear parses a year, accepting a trailing ".0" left by spreadsheet exports.
func ParseYear(value string) (int, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, nil
	}

	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, errInvalidYear
	}

	return int(f), nil
}

// ParseWinner parses a winner flag. A blank field is false.
func ParseWinner(value string) (bool, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return false, nil
	}

	switch strings.ToLower(s) {
	case "yes", "y", "x":
		return true, nil
	case "no", "n":
		return false, nil
	}

	return strconv.ParseBool(s)
}
