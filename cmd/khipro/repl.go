package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/khipro/internal/batch"
	"github.com/spf13/cobra"
)

const exitCommand = "exit"

var promptColor = color.New(color.FgCyan, color.Bold)

// lineLoop transliterates input line by line. In interactive mode it shows a
// banner and prompts; otherwise it writes one output line per input line.
type lineLoop struct {
	tr          batch.Transliterator
	in          io.Reader
	out         io.Writer
	interactive bool
}

func (l lineLoop) run() error {
	if l.interactive {
		fmt.Fprintln(l.out, "khipro")
		fmt.Fprintf(l.out, "type '%s' to quit.\n", exitCommand)
	}
	scanner := bufio.NewScanner(l.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		if l.interactive {
			promptColor.Fprint(l.out, "Enter input: ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == exitCommand {
			return nil
		}
		result := l.tr.Transliterate(line)
		if l.interactive {
			fmt.Fprintf(l.out, "Output: %s\n", result)
		} else {
			fmt.Fprintln(l.out, result)
		}
	}
	if l.interactive {
		fmt.Fprintln(l.out)
	}
	return scanner.Err()
}

// readsFromTerminal reports whether r is a file connected to a terminal.
func readsFromTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && isTerminal(f)
}

func runREPL(cmd *cobra.Command, _ []string) error {
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	in := cmd.InOrStdin()
	loop := lineLoop{
		tr:          table,
		in:          in,
		out:         cmd.OutOrStdout(),
		interactive: readsFromTerminal(in),
	}
	return loop.run()
}
