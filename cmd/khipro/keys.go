package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/khipro"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys [prefix]",
	Short: "List phonetic keys",
	Long:  `Keys lists all phonetic keys starting with prefix, with their glyphs per category.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	return printKeys(cmd.OutOrStdout(), table, prefix)
}

func printKeys(w io.Writer, table *khipro.RuleTable, prefix string) error {
	keys := table.KeysWithPrefix(prefix)
	width := 1
	for _, key := range keys {
		width = max(width, runewidth.StringWidth(key))
	}
	for _, key := range keys {
		cats, _ := table.Categories(key)
		var glyphs []string
		for _, c := range cats.Categories() {
			g, _ := table.Mapping(c).Get(key)
			glyphs = append(glyphs, fmt.Sprintf("%s=%s", c, g))
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(key, width),
			strings.Join(glyphs, "  ")); err != nil {
			return err
		}
	}
	return nil
}
