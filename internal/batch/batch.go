// Package batch transliterates many inputs concurrently.
//
// Rule tables are read-only after loading, so a single table is shared by
// all workers. Results are returned in input order.
package batch

import (
	"context"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Transliterator converts one complete input string.
// *khipro.RuleTable implements it.
type Transliterator interface {
	Transliterate(input string) string
}

// Result is the converted content of one file.
type Result struct {
	Path   string
	Output string
}

func workerCount(workers, jobs int) int {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return max(1, min(workers, jobs))
}

// Lines transliterates every line with up to workers goroutines.
// workers <= 0 means one per CPU.
func Lines(ctx context.Context, tr Transliterator, lines []string, workers int) ([]string, error) {
	out := make([]string, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers, len(lines)))
	for i, line := range lines {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = tr.Transliterate(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Files reads and transliterates files concurrently. The first read error
// cancels the remaining work and is returned.
func Files(ctx context.Context, tr Transliterator, paths []string, workers int) ([]Result, error) {
	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers, len(paths)))
	for i, path := range paths {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = Result{Path: path, Output: tr.Transliterate(string(data))}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
