// Package analysis runs the report sections over loaded datasets and writes
// their charts and derived tables.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"grammystats/internal/chart"
	"grammystats/internal/config"
	"grammystats/internal/dataset"
	"grammystats/internal/export"
	"grammystats/internal/logger"
	"grammystats/internal/matcher"
	"grammystats/internal/models"
	"grammystats/internal/normalizer"
)

// Section names, in report order.
const (
	SectionOverview  = "overview"
	SectionWinners   = "winners"
	SectionStreams   = "streams"
	SectionCross     = "cross"
	SectionRoster    = "roster"
	SectionProducers = "producers"
	SectionGenres    = "genres"
	SectionLongevity = "longevity"
	SectionImpact    = "impact"
)

// ErrUnknownSection is returned for a section name that does not exist.
var ErrUnknownSection = errors.New("unknown section")

const maxCellWidth = 60

type sectionDef struct {
	name  string
	title string
	needs []dataset.Kind
	run   func(a *Analyzer, s *Section) error
}

var registry = []sectionDef{
	{SectionOverview, "Dataset overview", nil, (*Analyzer).overview},
	{SectionWinners, "Grammy winners", []dataset.Kind{dataset.KindGrammy}, (*Analyzer).grammyWinners},
	{SectionStreams, "Spotify streaming", []dataset.Kind{dataset.KindSpotify}, (*Analyzer).streams},
	{SectionCross, "Grammy winners vs. streaming", []dataset.Kind{dataset.KindGrammy, dataset.KindSpotify}, (*Analyzer).cross},
	{SectionRoster, "Artist roster", []dataset.Kind{dataset.KindGrammy, dataset.KindArtists}, (*Analyzer).roster},
	{SectionProducers, "Producers", []dataset.Kind{dataset.KindProducers}, (*Analyzer).producers},
	{SectionGenres, "Award genres", []dataset.Kind{dataset.KindGrammy}, (*Analyzer).genres},
	{SectionLongevity, "Artist longevity", []dataset.Kind{dataset.KindGrammy}, (*Analyzer).longevity},
	{SectionImpact, "Award impact", []dataset.Kind{dataset.KindGrammy, dataset.KindSpotify}, (*Analyzer).impact},
}

// SectionNames lists every section in report order.
func SectionNames() []string {
	names := make([]string, len(registry))
	for i, def := range registry {
		names[i] = def.name
	}

	return names
}

// Requirements returns the datasets the named sections read. No names means every section.
func Requirements(names ...string) ([]dataset.Kind, error) {
	defs, err := selectSections(names)
	if err != nil {
		return nil, err
	}

	var kinds []dataset.Kind

	for _, def := range defs {
		needs := def.needs
		if def.name == SectionOverview {
			needs = dataset.AllKinds
		}

		for _, k := range needs {
			if !slices.Contains(kinds, k) {
				kinds = append(kinds, k)
			}
		}
	}

	// Producer chart hits read the chart when it is there.
	if slices.Contains(kinds, dataset.KindProducers) && !slices.Contains(kinds, dataset.KindSpotify) {
		kinds = append(kinds, dataset.KindSpotify)
	}

	return kinds, nil
}

func selectSections(names []string) ([]sectionDef, error) {
	if len(names) == 0 {
		return registry, nil
	}

	var defs []sectionDef

	for _, n := range names {
		if !slices.ContainsFunc(registry, func(d sectionDef) bool { return d.name == n }) {
			return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownSection, n, strings.Join(SectionNames(), ", "))
		}
	}

	for _, def := range registry {
		if slices.Contains(names, def.name) {
			defs = append(defs, def)
		}
	}

	return defs, nil
}

// Analyzer holds the prepared datasets of one run.
type Analyzer struct {
	cfg      *config.Config
	log      *logger.Logger
	data     *models.Datasets
	norm     *normalizer.Normalizer
	winners  *matcher.WinnerSet
	renderer *chart.Renderer

	exports []*export.Table
	files   []string
}

// New normalizes the datasets and marks winners on the chart and roster.
func New(cfg *config.Config, data *models.Datasets, log *logger.Logger) (*Analyzer, error) {
	if data == nil {
		return nil, normalizer.ErrNilDatasets
	}

	if log == nil {
		log = logger.Discard()
	}

	norm := normalizer.New(normalizer.Options{StrictCommas: cfg.Normalizer.StrictCommas})
	log.Debug("Normalizer rules", "rules", norm.Rules())

	if err := normalizer.NewProcessor(norm).Process(data); err != nil {
		return nil, fmt.Errorf("failed to normalize datasets: %w", err)
	}

	winners := matcher.FromAwards(data.Awards, norm)
	matched, _ := matcher.MarkChart(data.Chart, winners)
	matcher.MarkArtists(data.Artists, winners)

	log.Info("Winner set built", "winners", winners.Len(), "chart_matches", len(matched))

	return &Analyzer{
		cfg:      cfg,
		log:      log,
		data:     data,
		norm:     norm,
		winners:  winners,
		renderer: chart.NewRenderer(cfg.Output.Dir, cfg.Output.ChartWidth, cfg.Output.ChartHeight),
	}, nil
}

// Winners returns the winner set.
func (a *Analyzer) Winners() *matcher.WinnerSet {
	return a.winners
}

// Result is the output of a run.
type Result struct {
	Sections []*Section
	// Exports are the derived tables, in creation order.
	Exports []*export.Table
	// Files are the charts and CSV files written.
	Files []string
}

// Section returns the section with the given name, or nil.
func (r *Result) Section(name string) *Section {
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}

	return nil
}

// Markdown renders every section under a top-level title.
func (r *Result) Markdown(title string) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n")

	for _, s := range r.Sections {
		sb.WriteString("\n")
		sb.WriteString(s.Markdown())
	}

	return sb.String()
}

// WriteWorkbook saves every export table as a sheet of one xlsx file.
func (r *Result) WriteWorkbook(path string) error {
	if len(r.Exports) == 0 {
		return nil
	}

	wb, err := export.NewWorkbook()
	if err != nil {
		return err
	}
	defer wb.Close()

	for _, t := range r.Exports {
		if _, err := wb.AddTable(t); err != nil {
			return err
		}
	}

	return wb.SaveAs(path)
}

// Run executes the named sections in report order; no names runs all of them.
// A section whose datasets are unavailable is reported as skipped.
func (a *Analyzer) Run(ctx context.Context, names ...string) (*Result, error) {
	defs, err := selectSections(names)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s := newSection(def.name, def.title)

		if missing := a.missing(def.needs); len(missing) > 0 {
			a.log.Warn("Section skipped", "section", def.name, "missing", missing)
			s.Notef("Skipped: %s data unavailable.", strings.Join(missing, ", "))
			result.Sections = append(result.Sections, s)

			continue
		}

		a.log.Info("Running section", "section", def.name)

		if err := def.run(a, s); err != nil {
			return nil, fmt.Errorf("section %s: %w", def.name, err)
		}

		result.Sections = append(result.Sections, s)
	}

	result.Exports = a.exports
	result.Files = a.files

	return result, nil
}

func (a *Analyzer) missing(kinds []dataset.Kind) []string {
	var out []string

	for _, k := range kinds {
		if a.table(k) == nil {
			out = append(out, string(k))
		}
	}

	return out
}

func (a *Analyzer) table(kind dataset.Kind) *models.Table {
	switch kind {
	case dataset.KindGrammy:
		return a.data.AwardsTable
	case dataset.KindSpotify:
		return a.data.ChartTable
	case dataset.KindArtists:
		return a.data.ArtistsTable
	case dataset.KindProducers:
		return a.data.ProducersTable
	}

	return nil
}

func (a *Analyzer) topN() int {
	return a.cfg.Analysis.TopN
}

// plot draws a chart when charts are enabled. A chart without data is noted, not fatal.
func (a *Analyzer) plot(s *Section, name, caption string, draw func(r *chart.Renderer) (string, error)) error {
	if !a.cfg.Output.Charts {
		return nil
	}

	path, err := draw(a.renderer)
	if errors.Is(err, chart.ErrNoData) {
		a.log.Warn("Chart skipped", "chart", name, "error", err)
		s.Notef("Chart `%s` skipped: no data.", name)

		return nil
	}

	if err != nil {
		return err
	}

	a.log.Info("Chart saved", "path", path)
	a.files = append(a.files, path)
	s.addChart(path, caption)

	return nil
}

// export registers a derived table for the workbook and, when csvName is
// set and CSV output is enabled, writes it to the output directory.
func (a *Analyzer) export(s *Section, t *export.Table, csvName string) error {
	a.exports = append(a.exports, t)

	if csvName == "" || !a.cfg.Output.CSV {
		return nil
	}

	path := filepath.Join(a.cfg.Output.Dir, csvName)
	if err := export.WriteCSV(path, t); err != nil {
		return err
	}

	a.log.Info("Table saved", "path", path, "rows", len(t.Rows))
	a.files = append(a.files, path)
	s.Notef("Saved %d rows to `%s`.", len(t.Rows), csvName)

	return nil
}
