package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"grammystats/internal/pipeline"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [report.md]",
	Short: "Check a signed report against its metadata hash",
	Long: `Recomputes the SHA-256 of a report without its metadata block and compares
it with the recorded hash. Defaults to the report in the output directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(cfg.Output.Dir, cfg.Output.ReportFile)
		if len(args) == 1 {
			path = args[0]
		}

		meta, err := pipeline.VerifyReport(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✅ %s verified\n", path)
		fmt.Fprintf(out, "  Run:        %s\n", meta.RunID)
		fmt.Fprintf(out, "  Generated:  %s\n", meta.Generated.Format(time.RFC3339))
		fmt.Fprintf(out, "  Validation: %t\n", meta.Validation)

		return nil
	},
}

var formatWrite bool

var formatCmd = &cobra.Command{
	Use:   "format <file.md>...",
	Short: "Realign markdown tables and re-sign the file",
	Long: `Realigns every table of the given markdown files and signs them again,
keeping the run id of an existing metadata block. Dry-run unless --write is set;
a dry run that finds changes exits non-zero.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		changed := 0

		for _, path := range args {
			wasChanged, err := pipeline.FormatReport(path, formatWrite, time.Now())
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if !wasChanged {
				continue
			}

			changed++

			if formatWrite {
				fmt.Fprintf(out, "✅ Formatted & signed: %s\n", path)
			} else {
				fmt.Fprintf(out, "📝 Would format & sign: %s\n", path)
			}
		}

		fmt.Fprintf(out, "Scanned %d files, %d changed.\n", len(args), changed)

		if changed > 0 && !formatWrite {
			return fmt.Errorf("%d files need formatting; run with --write", changed)
		}

		return nil
	},
}

func init() {
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Write changes to the files")
}
