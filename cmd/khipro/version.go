package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/npillmayer/khipro"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and built-in rule tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "khipro %s\n", version)
		if info, ok := debug.ReadBuildInfo(); ok {
			fmt.Fprintf(w, "built with %s\n", info.GoVersion)
		}
		fmt.Fprintf(w, "rule tables: %s (default %s)\n",
			strings.Join(khipro.Variants(), ", "), khipro.DefaultVariant)
		return nil
	},
}
