package main

import (
	"fmt"

	"github.com/npillmayer/khipro"
	"github.com/npillmayer/khipro/rules"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// tracer writes to trace with key 'khipro.cli'
func tracer() tracing.Trace {
	return tracing.Select("khipro.cli")
}

var traceKeys = []string{"khipro", "khipro.rules", "khipro.cli"}

func setupTracing(cmd *cobra.Command, _ []string) error {
	level, err := cmd.Flags().GetString("trace")
	if err != nil {
		return err
	}
	switch level {
	case "error", "info", "debug":
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(level))
	}
	return nil
}

func parseIndex(name string) (khipro.IndexKind, error) {
	switch name {
	case "", "dat":
		return khipro.IndexDAT, nil
	case "trie":
		return khipro.IndexPrefixTrie, nil
	}
	return 0, fmt.Errorf("unknown key index %q (use dat or trie)", name)
}

// tableSource collects the flags which select a rule table.
type tableSource struct {
	path    string
	variant string
	index   string
}

func sourceFromFlags(cmd *cobra.Command) (src tableSource, err error) {
	flags := cmd.Flags()
	if src.path, err = flags.GetString("table"); err != nil {
		return
	}
	if src.variant, err = flags.GetString("variant"); err != nil {
		return
	}
	src.index, err = flags.GetString("index")
	return
}

// load returns the selected rule table. A rule file takes precedence over a
// variant; without either, the shared default table is used.
func (src tableSource) load() (*khipro.RuleTable, error) {
	kind, err := parseIndex(src.index)
	if err != nil {
		return nil, err
	}
	switch {
	case src.path != "" && src.variant != "":
		return nil, fmt.Errorf("use either --table or --variant, not both")
	case src.path != "":
		tracer().Infof("loading rule table from %s", src.path)
		return rules.Load(src.path, khipro.WithIndex(kind))
	case src.variant != "":
		return khipro.Variant(src.variant, khipro.WithIndex(kind))
	case kind != khipro.IndexDAT:
		return khipro.Variant(khipro.DefaultVariant, khipro.WithIndex(kind))
	}
	return khipro.Default(), nil
}

func loadTable(cmd *cobra.Command) (*khipro.RuleTable, error) {
	src, err := sourceFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	return src.load()
}
