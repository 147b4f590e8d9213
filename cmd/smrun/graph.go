package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inventhouse/statemachine/internal/cli"
	"github.com/inventhouse/statemachine/internal/compiler"
	"github.com/inventhouse/statemachine/internal/presentation/graph"
	"github.com/inventhouse/statemachine/pkg/registry"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the rule set as a Mermaid diagram",
	Long:  `Compiles the rules and outputs a Mermaid diagram (graph TD) of the state transitions.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := gatherOptions(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if opts.Start == "" {
			fmt.Fprintln(os.Stderr, "Error: no start state: use --start or the config file")
			os.Exit(1)
		}

		src, err := cli.LoadSource(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		compiled, err := compiler.CompileSource(src.Named, src.Add, src.Files, registry.Builtin())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error compiling rules: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(opts.Start, compiled.Bound))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
