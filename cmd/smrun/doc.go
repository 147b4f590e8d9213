package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inventhouse/statemachine/internal/compiler"
	"github.com/inventhouse/statemachine/internal/presentation/tui"
)

var docCmd = &cobra.Command{
	Use:   "doc [rule-file ...]",
	Short: "Render a rule file's prose as documentation",
	Long: `Prints everything outside the rule blocks of the given files,
rendered as markdown. Rule files double as their own documentation; this
shows the document a reader sees, with the machine plumbing removed.`,
	Run: func(cmd *cobra.Command, args []string) {
		files := args
		if len(files) == 0 {
			files, _ = cmd.Flags().GetStringArray("file")
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "Error: no rule files given")
			os.Exit(1)
		}

		render := tui.NewRenderer()
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			prose := strings.Join(compiler.Prose(string(data)), "\n")
			out, err := render(prose)
			if err != nil {
				// Keep going with the raw text when rendering fails.
				out = prose
			}
			fmt.Print(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
}
