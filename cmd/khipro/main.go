// Command khipro converts phonetic Khipro input to Bengali script.
//
// Without a subcommand it reads lines from standard input and prints their
// transliteration, until EOF or a line reading "exit".
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "khipro",
	Short: "Khipro phonetic transliteration to Bengali",
	Long: `khipro reads phonetic Latin input line by line and prints it in Bengali script.
Type 'exit' or send EOF to quit.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: setupTracing,
	RunE:              runREPL,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("table", "", "rule table file (.toml, .yaml)")
	rootCmd.PersistentFlags().String("variant", "", "built-in rule table (default \"khipro\")")
	rootCmd.PersistentFlags().String("index", "dat", "key index backend (dat|trie)")
	rootCmd.PersistentFlags().String("trace", "error", "trace level (error|info|debug)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is connected to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
