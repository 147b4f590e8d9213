package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inventhouse/statemachine/internal/cli"
	"github.com/inventhouse/statemachine/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "smrun",
	Short: "smrun runs labeled-state rule machines over line input",
	Long: `smrun builds a state machine from rule strings and rule files,
feeds it input one line at a time, and prints whatever the matched
rules produce.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "machine.yaml", "Machine description file (YAML or JSON)")
	rootCmd.PersistentFlags().String("start", "", "Start state name")
	rootCmd.PersistentFlags().StringArrayP("named", "n", nil, "Named rule string (repeatable, overrides file rules)")
	rootCmd.PersistentFlags().StringArrayP("add", "a", nil, "Add rule string (repeatable, matched before file rules)")
	rootCmd.PersistentFlags().StringArrayP("file", "f", nil, "Rule file to extract rule blocks from (repeatable)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// gatherOptions loads the config file and overlays the shared flags on it.
func gatherOptions(cmd *cobra.Command) (cli.RunOptions, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cli.LoadConfig(path, cmd.Flags().Changed("config"))
	if err != nil {
		return cli.RunOptions{}, err
	}

	var opts cli.RunOptions
	opts.Start, _ = cmd.Flags().GetString("start")
	opts.Named, _ = cmd.Flags().GetStringArray("named")
	opts.Add, _ = cmd.Flags().GetStringArray("add")
	opts.RuleFiles, _ = cmd.Flags().GetStringArray("file")

	level := slog.LevelWarn
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}
	opts.Logger = logging.New(level, os.Stderr)

	return cfg.Merge(opts), nil
}
