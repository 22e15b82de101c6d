package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"grammystats/internal/normalizer"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <credit>...",
	Short: "Print the artist key derived from each credit",
	Long: `Splits each argument as an "Artist - Title" credit and prints the
normalized artist and its matching key. Useful when a winner does not match.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := normalizer.New(normalizer.Options{StrictCommas: cfg.Normalizer.StrictCommas})
		log.Debug("Normalizer rules", "rules", n.Rules())

		out := cmd.OutOrStdout()

		for _, arg := range args {
			artist, title := normalizer.SplitCredit(arg)
			fmt.Fprintf(out, "%s\tartist=%s title=%s normalized=%s key=%s\n",
				strconv.Quote(arg), strconv.Quote(artist), strconv.Quote(title),
				strconv.Quote(n.Normalize(artist)), strconv.Quote(n.Key(artist)))
		}

		return nil
	},
}
