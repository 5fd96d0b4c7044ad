package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/khipro"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize text...",
	Short: "Show how input is split into phonetic keys",
	Long: `Tokenize splits its arguments into phonetic keys and prints one token per line,
together with the categories defining the key and the glyphs it renders to.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	return printTokens(cmd.OutOrStdout(), table, strings.Join(args, " "))
}

func printTokens(w io.Writer, table *khipro.RuleTable, input string) error {
	tokens := table.Tokenize(input)
	width := 5
	for _, t := range tokens {
		width = max(width, runewidth.StringWidth(t.Text))
	}
	state := khipro.AfterOther
	for _, t := range tokens {
		var glyph string
		glyph, state = table.RenderToken(t, state)
		class := "-"
		if cats, ok := table.Categories(t.Text); ok {
			class = cats.String()
		}
		_, err := fmt.Fprintf(w, "%4d  %s  %s  %q\n", t.Offset,
			runewidth.FillRight(t.Text, width), runewidth.FillRight(class, 24), glyph)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "=> %s\n", table.Render(tokens))
	return err
}
