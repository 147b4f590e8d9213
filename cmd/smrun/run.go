package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inventhouse/statemachine/internal/cli"
	"github.com/inventhouse/statemachine/pkg/domain"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the machine over stdin",
	Long: `Compiles the machine from flags and rule files, then feeds it stdin
one line at a time, printing each produced output.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := gatherOptions(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		opts.Verbose, _ = cmd.Flags().GetBool("verbose")
		opts.IgnoreUnmatched, _ = cmd.Flags().GetBool("ignore-unmatched")
		opts.UnrecognizedFatal, _ = cmd.Flags().GetBool("strict")
		if cmd.Flags().Changed("trace-depth") {
			depth, _ := cmd.Flags().GetInt("trace-depth")
			opts.TraceDepth = &depth
		}

		if err := cli.Run(opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
			// Unrecognized-input tracebacks were already written by Run.
			if !errors.Is(err, domain.ErrUnrecognized) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Trace every rule evaluation to stderr")
	runCmd.Flags().Int("trace-depth", 0, "Transitions kept for unrecognized-input tracebacks (negative keeps all)")
	runCmd.Flags().Bool("ignore-unmatched", false, "Silently drop unrecognized input")
	runCmd.Flags().Bool("strict", false, "Stop at the first unrecognized input")

	// Make 'run' the default when no subcommand is given.
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
