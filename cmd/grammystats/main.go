// Package main provides the grammystats command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"grammystats/internal/config"
	"grammystats/internal/logger"
)

const defaultConfigPath = "configs/grammystats.yaml"

var (
	// Global flags
	configPath  string
	datasetsDir string
	outputDir   string
	logLevel    string

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "grammystats",
	Short: "Compare Grammy Award winners with Spotify streaming data",
	Long: `grammystats loads the Grammy nominees, Spotify most-streamed, artist roster
and Producer of the Year datasets, matches streaming artists against award
winners and writes charts, CSV tables, an xlsx workbook and a signed report.

Run without a subcommand to produce every section.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runSections(),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file (default: "+defaultConfigPath+" if present)")
	rootCmd.PersistentFlags().StringVarP(&datasetsDir, "datasets", "d", "", "Directory holding the input CSV files")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Directory for charts, tables and the report")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(sectionCommands()...)
	rootCmd.AddCommand(allCmd, verifyCmd, formatCmd, normalizeCmd, configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log != nil {
			log.Error("❌ grammystats failed", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}

		stop()

		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}

		os.Exit(1)
	}
}

// setup loads configuration and applies flag overrides.
func setup(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	loaded, err := config.LoadConfig(path)
	if err != nil {
		return err
	}

	if datasetsDir != "" {
		loaded.Datasets.Dir = datasetsDir
	}

	if outputDir != "" {
		loaded.Output.Dir = outputDir
	}

	if logLevel != "" {
		loaded.Logging.Level = logLevel
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	cfg = loaded
	log = logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if path != "" {
		log.Debug("Configuration loaded", "path", path, "config", cfg.String())
	}

	return nil
}
