package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	statemachine "github.com/inventhouse/statemachine"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of smrun",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("smrun version %s\n", strings.TrimSpace(statemachine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
