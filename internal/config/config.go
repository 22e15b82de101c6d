// Package config provides configuration management for analysis runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. GRAMMYSTATS_DATASETS_DIR.
const EnvPrefix = "GRAMMYSTATS"

// Configuration validation errors.
var (
	ErrMissingDatasetsDir  = errors.New("datasets.dir is required")
	ErrMissingDatasetFile  = errors.New("datasets.files entries must not be empty")
	ErrInvalidEncoding     = errors.New("datasets.encoding must be one of: latin1, cp1252, utf-8")
	ErrInvalidHeadRows     = errors.New("datasets.head_rows must be non-negative")
	ErrInvalidTopN         = errors.New("analysis.top_n must be at least 1")
	ErrInvalidPercentile   = errors.New("analysis.snub_percentile must be between 0 and 1")
	ErrInvalidBoxplotRows  = errors.New("analysis.boxplot_sample must be non-negative")
	ErrNoGenres            = errors.New("analysis.genres must not be empty")
	ErrMissingOutputDir    = errors.New("output.dir is required")
	ErrInvalidChartSize    = errors.New("output.chart_width and output.chart_height must be positive")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
	ErrMissingOutputTarget = errors.New("output.workbook and output.report_file must be set when enabled")
)

// Config represents the complete analysis configuration.
type Config struct {
	Datasets   DatasetsConfig   `yaml:"datasets" envconfig:"DATASETS"`
	Normalizer NormalizerConfig `yaml:"normalizer" envconfig:"NORMALIZER"`
	Analysis   AnalysisConfig   `yaml:"analysis" envconfig:"ANALYSIS"`
	Output     OutputConfig     `yaml:"output" envconfig:"OUTPUT"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
}

// DatasetsConfig locates and decodes the input files.
type DatasetsConfig struct {
	Files     FilesConfig `yaml:"files" envconfig:"FILES"`
	Dir       string      `yaml:"dir" envconfig:"DIR"`
	Encoding  string      `yaml:"encoding" envconfig:"ENCODING"`
	Thousands string      `yaml:"thousands" envconfig:"THOUSANDS"`
	HeadRows  int         `yaml:"head_rows" envconfig:"HEAD_ROWS"`
	Strict    bool        `yaml:"strict" envconfig:"STRICT"`
}

// FilesConfig names each input file inside Dir.
type FilesConfig struct {
	Grammy    string `yaml:"grammy" envconfig:"GRAMMY"`
	Spotify   string `yaml:"spotify" envconfig:"SPOTIFY"`
	Artists   string `yaml:"artists" envconfig:"ARTISTS"`
	Producers string `yaml:"producers" envconfig:"PRODUCERS"`
}

// NormalizerConfig selects optional normalization rules.
type NormalizerConfig struct {
	StrictCommas bool `yaml:"strict_commas" envconfig:"STRICT_COMMAS"`
}

// AnalysisConfig tunes the computed tables.
type AnalysisConfig struct {
	ProducerAward  string   `yaml:"producer_award" envconfig:"PRODUCER_AWARD"`
	Genres         []string `yaml:"genres" envconfig:"GENRES"`
	TopN           int      `yaml:"top_n" envconfig:"TOP_N"`
	SnubPercentile float64  `yaml:"snub_percentile" envconfig:"SNUB_PERCENTILE"`
	BoxplotSample  int      `yaml:"boxplot_sample" envconfig:"BOXPLOT_SAMPLE"`
}

// OutputConfig defines where and what to write.
type OutputConfig struct {
	Dir         string  `yaml:"dir" envconfig:"DIR"`
	Workbook    string  `yaml:"workbook" envconfig:"WORKBOOK"`
	ReportFile  string  `yaml:"report_file" envconfig:"REPORT_FILE"`
	ChartWidth  float64 `yaml:"chart_width" envconfig:"CHART_WIDTH"`
	ChartHeight float64 `yaml:"chart_height" envconfig:"CHART_HEIGHT"`
	Charts      bool    `yaml:"charts" envconfig:"CHARTS"`
	CSV         bool    `yaml:"csv" envconfig:"CSV"`
	XLSX        bool    `yaml:"xlsx" envconfig:"XLSX"`
	Report      bool    `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// DefaultGenres are searched for in award names, in priority order.
var DefaultGenres = []string{
	"Pop", "Rock", "Rap", "R&B", "Country", "Jazz", "Classical",
	"Dance", "Latin", "Alternative", "Metal", "Gospel", "Reggae",
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			Dir:       "datasets",
			Encoding:  "latin1",
			Thousands: ",",
			HeadRows:  5,
			Files: FilesConfig{
				Grammy:    "Grammy Award Nominees and Winners 1958-2024.csv",
				Spotify:   "Spotify most streamed.csv",
				Artists:   "artists.csv",
				Producers: "Supplementary Table Producer of the Year 2019-2024.csv",
			},
		},
		Normalizer: NormalizerConfig{StrictCommas: true},
		Analysis: AnalysisConfig{
			TopN:           10,
			SnubPercentile: 0.9,
			BoxplotSample:  500,
			ProducerAward:  "Producer Of The Year, Non-Classical",
			Genres:         append([]string(nil), DefaultGenres...),
		},
		Output: OutputConfig{
			Dir:         "analysis_plots",
			Workbook:    "analysis.xlsx",
			ReportFile:  "report.md",
			ChartWidth:  10,
			ChartHeight: 6,
			Charts:      true,
			CSV:         true,
			XLSX:        true,
			Report:      true,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig loads configuration from an optional YAML file on top of the
// defaults, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file, creating its directory.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Datasets.Dir == "" {
		return ErrMissingDatasetsDir
	}

	files := c.Datasets.Files
	if files.Grammy == "" || files.Spotify == "" || files.Artists == "" || files.Producers == "" {
		return ErrMissingDatasetFile
	}

	switch strings.ToLower(c.Datasets.Encoding) {
	case "latin1", "latin-1", "iso-8859-1", "cp1252", "windows-1252", "utf-8", "utf8":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidEncoding, c.Datasets.Encoding)
	}

	if c.Datasets.HeadRows < 0 {
		return ErrInvalidHeadRows
	}

	if c.Analysis.TopN < 1 {
		return ErrInvalidTopN
	}

	if c.Analysis.SnubPercentile < 0 || c.Analysis.SnubPercentile > 1 {
		return ErrInvalidPercentile
	}

	if c.Analysis.BoxplotSample < 0 {
		return ErrInvalidBoxplotRows
	}

	if len(c.Analysis.Genres) == 0 {
		return ErrNoGenres
	}

	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	if c.Output.Charts && (c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0) {
		return ErrInvalidChartSize
	}

	if (c.Output.XLSX && c.Output.Workbook == "") || (c.Output.Report && c.Output.ReportFile == "") {
		return ErrMissingOutputTarget
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Datasets: %s, Encoding: %s, StrictCommas: %t, Output: %s}",
		c.Datasets.Dir,
		c.Datasets.Encoding,
		c.Normalizer.StrictCommas,
		c.Output.Dir,
	)
}
