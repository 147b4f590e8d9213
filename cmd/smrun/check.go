package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inventhouse/statemachine/internal/cli"
	"github.com/inventhouse/statemachine/internal/compiler"
	"github.com/inventhouse/statemachine/internal/validator"
	"github.com/inventhouse/statemachine/pkg/registry"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the rule set for consistency",
	Long: `Compiles the rules without running them and reports undefined
destination states, states unreachable from the start state, and likely
unresolved alias references.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCheck(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command) error {
	opts, err := gatherOptions(cmd)
	if err != nil {
		return err
	}
	if opts.Start == "" {
		return fmt.Errorf("no start state: use --start or the config file")
	}

	src, err := cli.LoadSource(opts)
	if err != nil {
		return err
	}

	reg := registry.Builtin()
	compiled, err := compiler.CompileSource(src.Named, src.Add, src.Files, reg)
	if err != nil {
		return err
	}

	report := validator.Check(opts.Start, compiled, reg)
	if report.OK() {
		fmt.Printf("%d rules, no findings\n", len(compiled.Bound))
		return nil
	}
	for _, line := range report.Lines() {
		fmt.Println(line)
	}
	return fmt.Errorf("%d finding(s)", len(report.Lines()))
}
