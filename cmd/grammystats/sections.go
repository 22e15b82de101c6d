package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grammystats/internal/analysis"
	"grammystats/internal/pipeline"
)

var sectionHelp = map[string]string{
	analysis.SectionOverview:  "Summarize every dataset: record counts, columns and first rows",
	analysis.SectionWinners:   "Most awarded nominees and awards per year",
	analysis.SectionStreams:   "Most streamed artists and top songs by daily streams",
	analysis.SectionCross:     "Streaming statistics of Grammy winners vs. non-winners and snubbed songs",
	analysis.SectionRoster:    "Artist roster split by Grammy wins",
	analysis.SectionProducers: "Producer of the Year works, chart hits and success rates",
	analysis.SectionGenres:    "Most common genres in award names",
	analysis.SectionLongevity: "Artists with the longest span of Grammy wins",
	analysis.SectionImpact:    "How many Grammy winners reach the most streamed songs",
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every section (the default)",
	Args:  cobra.NoArgs,
	RunE:  runSections(),
}

func sectionCommands() []*cobra.Command {
	names := analysis.SectionNames()
	cmds := make([]*cobra.Command, 0, len(names))

	for _, name := range names {
		cmds = append(cmds, &cobra.Command{
			Use:   name,
			Short: sectionHelp[name],
			Args:  cobra.NoArgs,
			RunE:  runSections(name),
		})
	}

	return cmds
}

// runSections returns a RunE that runs the given sections, or all of them.
func runSections(names ...string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		summary, err := pipeline.New(cfg, log).Run(cmd.Context(), names...)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, summary.Report)

		fmt.Fprintln(out, "------------------------------------------------")
		fmt.Fprintf(out, "📊 Run %s\n", summary.RunID)

		for _, f := range summary.Result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}

		if summary.WorkbookPath != "" {
			fmt.Fprintf(out, "  %s\n", summary.WorkbookPath)
		}

		if summary.ReportPath != "" {
			fmt.Fprintf(out, "  %s\n", summary.ReportPath)
		}

		if !summary.Validated {
			fmt.Fprintln(out, "⚠️  Some datasets were unavailable; report signed as unvalidated.")
		}

		return nil
	}
}
