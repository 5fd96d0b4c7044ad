package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/npillmayer/khipro"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a rule table for conflicting keys",
	Long: `Check loads the selected rule table and reports keys which are defined in more
than one exclusive category, and vowels without a dependent sign.
It fails if any key is ambiguous.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	return checkTable(cmd.OutOrStdout(), table)
}

func checkTable(w io.Writer, table *khipro.RuleTable) error {
	backend, keys, used, total, fill := table.IndexStats()
	fmt.Fprintf(w, "table %s: %d keys, max key length %d\n",
		table.Identifier, table.KeyCount(), table.MaxKeyLength())
	fmt.Fprintf(w, "index %s: %d keys, %d/%d slots used (%.1f%%)\n",
		backend, keys, used, total, fill*100)
	for _, c := range khipro.AllCategories() {
		fmt.Fprintf(w, "  %-12s %4d\n", c, table.Mapping(c).Len())
	}
	if missing := table.MissingSigns(); len(missing) > 0 {
		fmt.Fprintf(w, "vowels without sign: %v\n", missing)
	}
	overlaps := table.Overlaps()
	if len(overlaps) == 0 {
		color.New(color.FgGreen).Fprintln(w, "no overlapping keys")
		return nil
	}
	warn := color.New(color.FgRed)
	for _, o := range overlaps {
		warn.Fprintf(w, "overlap: %q in %s\n", o.Key, o.Categories)
	}
	return fmt.Errorf("%d keys defined in more than one category", len(overlaps))
}
