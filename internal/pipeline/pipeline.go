// Package pipeline runs one analysis end to end: load, analyze, write outputs.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"grammystats/internal/analysis"
	"grammystats/internal/config"
	"grammystats/internal/dataset"
	"grammystats/internal/formatter"
	"grammystats/internal/logger"
	"grammystats/internal/models"
	"grammystats/pkg/metadata"
)

// ReportTitle heads the markdown report.
const ReportTitle = "Grammy & Spotify Analysis"

// Summary describes a finished run.
type Summary struct {
	RunID        uuid.UUID
	Result       *analysis.Result
	Report       string
	ReportPath   string
	WorkbookPath string
	// Validated is true when every dataset the run needed was loaded.
	Validated bool
	Duration  time.Duration
}

// Pipeline holds the collaborators of a run.
type Pipeline struct {
	cfg *config.Config
	log *logger.Logger
	now func() time.Time
}

// New creates a pipeline for cfg.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}

	return &Pipeline{cfg: cfg, log: log, now: time.Now}
}

// Run executes the named sections, or all of them.
func (p *Pipeline) Run(ctx context.Context, sections ...string) (*Summary, error) {
	start := p.now()
	runID := uuid.New()
	log := p.log.With("run_id", runID.String())

	log.Info("🚀 Starting analysis", "sections", sectionsOrAll(sections))

	kinds, err := analysis.Requirements(sections...)
	if err != nil {
		return nil, err
	}

	// Phase 1: load
	strict := p.cfg.Datasets.Strict
	if slices.Equal(sections, []string{analysis.SectionOverview}) {
		strict = false
	}

	loader := dataset.NewLoader(p.cfg.Datasets.Dir, files(p.cfg), loaderOptions(p.cfg), strict, log)

	ds, err := loader.Load(ctx, kinds...)
	if err != nil {
		return nil, err
	}

	validated := true

	for _, k := range kinds {
		if !loaded(ds, k) {
			validated = false
		}
	}

	// Phase 2: analyze
	a, err := analysis.New(p.cfg, ds, log)
	if err != nil {
		return nil, err
	}

	result, err := a.Run(ctx, sections...)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID, Result: result, Validated: validated}

	// Phase 3: outputs
	if err := os.MkdirAll(p.cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if p.cfg.Output.XLSX && len(result.Exports) > 0 {
		summary.WorkbookPath = filepath.Join(p.cfg.Output.Dir, p.cfg.Output.Workbook)

		if err := result.WriteWorkbook(summary.WorkbookPath); err != nil {
			return nil, err
		}

		log.Info("Workbook saved", "path", summary.WorkbookPath, "sheets", len(result.Exports))
	}

	report, err := formatter.FormatMarkdown(result.Markdown(ReportTitle))
	if err != nil {
		return nil, err
	}

	summary.Report = report

	if p.cfg.Output.Report {
		summary.ReportPath = filepath.Join(p.cfg.Output.Dir, p.cfg.Output.ReportFile)
		signed := metadata.Sign(report, runID, validated, p.now())

		if err := os.WriteFile(summary.ReportPath, []byte(signed), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}

		log.Info("Report saved", "path", summary.ReportPath, "validated", validated)
	}

	summary.Duration = p.now().Sub(start)
	log.Info("✨ Analysis complete", "files", len(result.Files), "duration", summary.Duration)

	return summary, nil
}

func sectionsOrAll(sections []string) []string {
	if len(sections) == 0 {
		return analysis.SectionNames()
	}

	return sections
}

func files(cfg *config.Config) dataset.Files {
	f := cfg.Datasets.Files

	return dataset.Files{
		Grammy:    f.Grammy,
		Spotify:   f.Spotify,
		Artists:   f.Artists,
		Producers: f.Producers,
	}
}

func loaderOptions(cfg *config.Config) dataset.Options {
	return dataset.Options{
		Encoding:  cfg.Datasets.Encoding,
		Thousands: cfg.Datasets.Thousands,
		HeadRows:  cfg.Datasets.HeadRows,
	}
}

func loaded(ds *models.Datasets, kind dataset.Kind) bool {
	switch kind {
	case dataset.KindGrammy:
		return ds.HasAwards()
	case dataset.KindSpotify:
		return ds.HasChart()
	case dataset.KindArtists:
		return ds.HasArtists()
	case dataset.KindProducers:
		return ds.HasProducers()
	}

	return false
}
