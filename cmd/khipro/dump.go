package main

import (
	"fmt"

	"github.com/npillmayer/khipro/rules"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the selected rule table as TOML or YAML",
	Long: `Dump writes the selected rule table to standard output. The result can be
edited and loaded again with --table.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("format", "toml", "output format (toml|yaml)")
}

func runDump(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	f, err := rules.FormatOf("rules." + format)
	if err != nil {
		return err
	}
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	return rules.Write(cmd.OutOrStdout(), f, table)
}
