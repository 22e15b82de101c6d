package dataset

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"grammystats/internal/logger"
	"grammystats/internal/models"
	"grammystats/internal/validator"
)

// Loader reads the input tables from a datasets directory.
type Loader struct {
	log    *logger.Logger
	dir    string
	files  Files
	opts   Options
	strict bool
}

// NewLoader creates a loader. In strict mode a missing file aborts Load;
// otherwise the table is logged and left unavailable.
func NewLoader(dir string, files Files, opts Options, strict bool, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Discard()
	}

	return &Loader{
		log:    log,
		dir:    dir,
		files:  files,
		opts:   opts,
		strict: strict,
	}
}

// Path returns the full path of a table's file.
func (l *Loader) Path(kind Kind) string {
	return filepath.Join(l.dir, l.files.Name(kind))
}

// Load reads the requested tables, or every table when none are given.
func (l *Loader) Load(ctx context.Context, kinds ...Kind) (*models.Datasets, error) {
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	ds := &models.Datasets{}

	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := l.load(ds, kind)
		if err == nil {
			continue
		}

		if errors.Is(err, ErrMissingFile) && !l.strict {
			l.log.Error("Dataset unavailable", "dataset", kind, "error", err)

			continue
		}

		return nil, fmt.Errorf("failed to load %s data: %w", kind, err)
	}

	return ds, nil
}

func (l *Loader) load(ds *models.Datasets, kind Kind) error {
	table, rr, rows, err := l.readTable(kind)
	if err != nil {
		return err
	}

	switch kind {
	case KindGrammy:
		ds.Awards, err = parseAwards(rr, rows)
		ds.AwardsTable = table
	case KindSpotify:
		ds.Chart, err = parseChart(rr, rows)
		ds.ChartTable = table
	case KindArtists:
		ds.Artists, err = parseArtists(rr, rows)
		ds.ArtistsTable = table
	case KindProducers:
		ds.Producers, err = parseProducers(rr, rows)
		ds.ProducersTable = table
	default:
		return fmt.Errorf("unknown dataset %q", kind)
	}

	return err
}

func (l *Loader) readTable(kind Kind) (*models.Table, *rowReader, [][]string, error) {
	path := l.Path(kind)
	l.log.Info("Loading dataset", "dataset", kind, "path", path)

	file, err := readCSV(path, l.opts)
	if err != nil {
		return nil, nil, nil, err
	}

	header, rows := file.Header, file.Rows

	result := validator.NewTableValidator(Schemas[kind]).Validate(header, rows, file.Lines)
	if !result.IsValid {
		return nil, nil, nil, result.Err()
	}

	for _, w := range result.Warnings {
		l.log.Warn("Validation warning", "dataset", kind, "warning", w)
	}

	table := &models.Table{
		Name:     string(kind),
		Path:     path,
		Columns:  header,
		Rows:     len(rows),
		Head:     rows[:min(len(rows), max(l.opts.HeadRows, 0))],
		Warnings: result.Warnings,
	}

	l.log.Info("Dataset loaded", "dataset", kind, "rows", len(rows), "columns", len(header))

	rr := &rowReader{
		file:      filepath.Base(path),
		index:     validator.ColumnIndex(header),
		thousands: l.opts.Thousands,
		lines:     file.Lines,
	}

	return table, rr, rows, nil
}

// rowReader extracts typed fields from raw rows by column name.
type rowReader struct {
	index     map[string]int
	file      string
	thousands string
	lines     []int
}

func (r *rowReader) field(row []string, column string) string {
	i, ok := validator.Lookup(r.index, column)
	if !ok || i >= len(row) {
		return ""
	}

	return row[i]
}

func (r *rowReader) parseErr(line int, column, value string, err error) error {
	return &ParseError{File: r.file, Line: line, Column: column, Value: value, Err: err}
}

func (r *rowReader) number(line int, row []string, column string) (float64, error) {
	v := r.field(row, column)

	f, err := ParseNumber(v, r.thousands)
	if err != nil {
		return 0, r.parseErr(line, column, v, err)
	}

	return f, nil
}

func (r *rowReader) year(line int, row []string) (int, error) {
	v := r.field(row, ColYear)

	y, err := ParseYear(v)
	if err != nil {
		return 0, r.parseErr(line, ColYear, v, err)
	}

	return y, nil
}

func (r *rowReader) winner(line int, row []string) (bool, error) {
	v := r.field(row, ColWinner)

	w, err := ParseWinner(v)
	if err != nil {
		return false, r.parseErr(line, ColWinner, v, err)
	}

	return w, nil
}

// lineOf returns the file line on which data row i starts.
func (r *rowReader) lineOf(i int) int { return validator.LineOf(r.lines, i) }

func parseAwards(rr *rowReader, rows [][]string) ([]models.AwardRecord, error) {
	out := make([]models.AwardRecord, 0, len(rows))

	for i, row := range rows {
		year, err := rr.year(rr.lineOf(i), row)
		if err != nil {
			return nil, err
		}

		winner, err := rr.winner(rr.lineOf(i), row)
		if err != nil {
			return nil, err
		}

		out = append(out, models.AwardRecord{
			Year:      year,
			AwardName: rr.field(row, ColAwardName),
			Nominee:   rr.field(row, ColNominee),
			Work:      rr.field(row, ColWork),
			Winner:    winner,
		})
	}

	return out, nil
}

func parseChart(rr *rowReader, rows [][]string) ([]models.ChartEntry, error) {
	out := make([]models.ChartEntry, 0, len(rows))

	for i, row := range rows {
		streams, err := rr.number(rr.lineOf(i), row, ColStreams)
		if err != nil {
			return nil, err
		}

		daily, err := rr.number(rr.lineOf(i), row, ColDaily)
		if err != nil {
			return nil, err
		}

		out = append(out, models.ChartEntry{
			Credit:  rr.field(row, ColArtistAndTitle),
			Streams: streams,
			Daily:   daily,
		})
	}

	return out, nil
}

func parseArtists(rr *rowReader, rows [][]string) ([]models.ArtistStat, error) {
	out := make([]models.ArtistStat, 0, len(rows))

	for i, row := range rows {
		streams, err := rr.number(rr.lineOf(i), row, ColStreams)
		if err != nil {
			return nil, err
		}

		daily, err := rr.number(rr.lineOf(i), row, ColDaily)
		if err != nil {
			return nil, err
		}

		out = append(out, models.ArtistStat{
			Artist:  rr.field(row, ColArtist),
			Streams: streams,
			Daily:   daily,
		})
	}

	return out, nil
}

func parseProducers(rr *rowReader, rows [][]string) ([]models.ProducerNomination, error) {
	out := make([]models.ProducerNomination, 0, len(rows))

	for i, row := range rows {
		year, err := rr.year(rr.lineOf(i), row)
		if err != nil {
			return nil, err
		}

		winner, err := rr.winner(rr.lineOf(i), row)
		if err != nil {
			return nil, err
		}

		out = append(out, models.ProducerNomination{
			Year:      year,
			AwardName: rr.field(row, ColAwardName),
			Nominee:   rr.field(row, ColNominee),
			Works:     rr.field(row, ColWork),
			Winner:    winner,
		})
	}

	return out, nil
}
