package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errConfigExists = errors.New("config file already exists")

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the effective configuration to a YAML file",
	Long: `Writes the configuration in effect (defaults, config file, environment and
flags) to path, or to ` + defaultConfigPath + ` when no path is given.
An existing file is kept unless --force is set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
		}

		if err := cfg.SaveConfig(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)

		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}
