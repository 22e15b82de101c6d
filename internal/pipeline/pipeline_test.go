package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grammystats/internal/analysis"
	"grammystats/internal/config"
	"grammystats/internal/dataset"
	"grammystats/pkg/metadata"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Datasets.Dir = filepath.Join("..", "dataset", "testdata")
	cfg.Datasets.Files = config.FilesConfig{
		Grammy:    "grammy.csv",
		Spotify:   "spotify.csv",
		Artists:   "artists.csv",
		Producers: "producers.csv",
	}
	cfg.Datasets.Strict = true
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Output.ChartWidth = 4
	cfg.Output.ChartHeight = 3

	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	fixed := time.Date(2024, 2, 4, 12, 0, 0, 0, time.UTC)

	p := New(cfg, nil)
	p.now = func() time.Time { return fixed }

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Validated)
	assert.Len(t, summary.Result.Sections, len(analysis.SectionNames()))
	assert.FileExists(t, summary.WorkbookPath)
	assert.Equal(t, filepath.Join(cfg.Output.Dir, "report.md"), summary.ReportPath)

	meta, err := VerifyReport(summary.ReportPath)
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, meta.RunID)
	assert.True(t, meta.Generated.Equal(fixed))
	assert.True(t, meta.Validation)

	data, err := os.ReadFile(summary.ReportPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# "+ReportTitle))
}

func TestRunStrictMissingFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Datasets.Files.Spotify = "missing.csv"

	_, err := New(cfg, nil).Run(context.Background(), analysis.SectionCross)
	assert.ErrorIs(t, err, dataset.ErrMissingFile)
}

func TestRunOverviewIsLenient(t *testing.T) {
	cfg := testConfig(t)
	cfg.Datasets.Files.Spotify = "missing.csv"
	cfg.Output.XLSX = false

	summary, err := New(cfg, nil).Run(context.Background(), analysis.SectionOverview)
	require.NoError(t, err)

	assert.False(t, summary.Validated)
	assert.Empty(t, summary.WorkbookPath)
	assert.Contains(t, summary.Report, "**spotify**: unavailable.")

	meta, err := VerifyReport(summary.ReportPath)
	require.NoError(t, err)
	assert.False(t, meta.Validation)
}

func TestRunUnknownSection(t *testing.T) {
	_, err := New(testConfig(t), nil).Run(context.Background(), "charts")
	assert.ErrorIs(t, err, analysis.ErrUnknownSection)
}

func TestVerifyReportTampered(t *testing.T) {
	cfg := testConfig(t)

	summary, err := New(cfg, nil).Run(context.Background(), analysis.SectionImpact)
	require.NoError(t, err)

	data, err := os.ReadFile(summary.ReportPath)
	require.NoError(t, err)

	tampered := strings.Replace(string(data), "songs: 4", "songs: 40", 1)
	require.NotEqual(t, string(data), tampered)
	require.NoError(t, os.WriteFile(summary.ReportPath, []byte(tampered), 0o644))

	_, err = VerifyReport(summary.ReportPath)
	assert.ErrorIs(t, err, metadata.ErrHashMismatch)

	_, err = VerifyReport(filepath.Join(cfg.Output.Dir, "nope.md"))
	assert.Error(t, err)
}

func TestFormatReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	content := "# Notes\n\n| Artist | Wins |\n| --- | ---: |\n| SZA | 3 |\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	now := time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC)

	changed, err := FormatReport(path, false, now)
	require.NoError(t, err)
	assert.True(t, changed)

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(unchanged))

	changed, err = FormatReport(path, true, now)
	require.NoError(t, err)
	assert.True(t, changed)

	meta, err := VerifyReport(path)
	require.NoError(t, err)
	assert.False(t, meta.Validation)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| SZA    |    3 |")

	changed, err = FormatReport(path, true, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)

	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}
