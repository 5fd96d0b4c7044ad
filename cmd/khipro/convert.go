package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/npillmayer/khipro/internal/batch"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [file...]",
	Short: "Transliterate files or standard input",
	Long: `Convert transliterates the given files concurrently. Without files it reads
standard input and converts it line by line.

With --out, every result is written to a file of the same name in that
directory; otherwise results go to standard output, in argument order.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("out", "o", "", "output directory")
	convertCmd.Flags().IntP("jobs", "j", 0, "number of workers (0 = one per CPU)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	table, err := loadTable(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return convertStream(cmd.Context(), table, cmd.InOrStdin(), cmd.OutOrStdout(), jobs)
	}
	results, err := batch.Files(cmd.Context(), table, args, jobs)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	if outDir == "" {
		for _, r := range results {
			if _, err := io.WriteString(cmd.OutOrStdout(), r.Output); err != nil {
				return err
			}
		}
		return nil
	}
	return writeResults(outDir, results)
}

func convertStream(ctx context.Context, tr batch.Transliterator, in io.Reader, out io.Writer, jobs int) error {
	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	converted, err := batch.Lines(ctx, tr, lines, jobs)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}
	w := bufio.NewWriter(out)
	for _, line := range converted {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	return w.Flush()
}

func writeResults(dir string, results []batch.Result) error {
	targets := make(map[string]string, len(results))
	for _, r := range results {
		name := filepath.Base(r.Path)
		if other, clash := targets[name]; clash {
			return fmt.Errorf("%s and %s would both be written to %s", other, r.Path,
				filepath.Join(dir, name))
		}
		targets[name] = r.Path
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range results {
		target := filepath.Join(dir, filepath.Base(r.Path))
		if err := os.WriteFile(target, []byte(r.Output), 0o644); err != nil {
			return err
		}
		tracer().Infof("wrote %s", target)
	}
	return nil
}
