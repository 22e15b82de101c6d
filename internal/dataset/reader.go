// Package dataset loads the award and streaming CSV files into typed records.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Supported encodings.
const (
	EncodingLatin1 = "latin1"
	EncodingCP1252 = "cp1252"
	EncodingUTF8   = "utf-8"
)

// Reader errors.
var (
	ErrMissingFile     = errors.New("dataset file not found")
	ErrUnknownEncoding = errors.New("unknown encoding")
	ErrEmptyFile       = errors.New("dataset file is empty")
)

// Options controls how CSV files are decoded.
type Options struct {
	// Encoding is latin1, cp1252 or utf-8.
	Encoding string
	// Thousands is stripped from numeric fields before parsing.
	Thousands string
	// HeadRows raw rows are kept on each table for previews.
	HeadRows int
}

// DefaultOptions matches the published datasets.
func DefaultOptions() Options {
	return Options{
		Encoding:  EncodingLatin1,
		Thousands: ",",
		HeadRows:  5,
	}
}

func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(encoding, "_", "-")) {
	case EncodingLatin1, "iso-8859-1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingCP1252, "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(r), nil
	case EncodingUTF8, "utf8", "":
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, encoding)
	}
}

// csvFile holds the header and data rows of a CSV file. Lines[i] is the
// physical line on which Rows[i] starts; quoted fields may span lines.
type csvFile struct {
	Header []string
	Rows   [][]string
	Lines  []int
}

// readCSV reads and decodes a CSV file.
func readCSV(path string, opts Options) (*csvFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
		}

		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := decode(f, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		records [][]string
		lines   []int
	)

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV %s: %w", path, err)
		}

		line, _ := cr.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	header := records[0]
	if len(header) > 0 {
		// UTF-8 byte order mark, raw or decoded as Latin-1.
		header[0] = strings.TrimPrefix(strings.TrimPrefix(header[0], "\ufeff"), "ï»¿")
	}

	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	return &csvFile{Header: header, Rows: records[1:], Lines: lines[1:]}, nil
}
