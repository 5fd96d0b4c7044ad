/*
Package rules loads rule tables from files and writes them back.

The format is chosen by file extension: ".toml" for TOML (package
tomlrules), ".yaml" or ".yml" for YAML (package yamlrules).

Example usage:

	table, err := rules.Load("path/to/my-khipro.toml")
	if err != nil {
		...
	}
	fmt.Println(table.Transliterate("ami"))
*/
package rules

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/khipro"
	"github.com/npillmayer/khipro/tomlrules"
	"github.com/npillmayer/khipro/yamlrules"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v2"
)

// tracer writes to trace with key 'khipro.rules'
func tracer() tracing.Trace {
	return tracing.Select("khipro.rules")
}

// Format is a rule file format.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf derives the format from a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown rule file format: %s", path)
}

// NewReader returns a rule reader for format.
func NewReader(format Format, reader io.Reader) (khipro.RuleReader, error) {
	switch format {
	case TOML:
		return tomlrules.NewReader(reader), nil
	case YAML:
		return yamlrules.NewReader(reader), nil
	}
	return nil, fmt.Errorf("unknown rule file format: %q", format)
}

// Load reads a rule table from a file. The table is named after the file.
func Load(path string, opts ...khipro.LoadOption) (*khipro.RuleTable, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tracer().Debugf("loading %s rules from %s", format, path)
	return LoadReader(name, format, f, opts...)
}

// LoadReader reads a rule table in the given format.
func LoadReader(name string, format Format, reader io.Reader, opts ...khipro.LoadOption) (*khipro.RuleTable, error) {
	r, err := NewReader(format, reader)
	if err != nil {
		return nil, err
	}
	return khipro.LoadRules(name, r, opts...)
}

// Write serializes table in the given format. The output can be read back
// with LoadReader.
func Write(w io.Writer, format Format, table *khipro.RuleTable) error {
	switch format {
	case TOML:
		return toml.NewEncoder(w).Encode(document(table))
	case YAML:
		out, err := yaml.Marshal(yamlDocument(table))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	return fmt.Errorf("unknown rule file format: %q", format)
}

// document returns table as nested maps: section → key → glyph.
func document(table *khipro.RuleTable) map[string]map[string]string {
	doc := map[string]map[string]string{
		khipro.ScriptSection: scriptSettings(table),
	}
	for _, c := range khipro.AllCategories() {
		m := table.Mapping(c)
		if m.Len() == 0 {
			continue
		}
		sec := make(map[string]string, m.Len())
		for _, key := range m.Keys() {
			sec[key], _ = m.Get(key)
		}
		doc[c.String()] = sec
	}
	return doc
}

// yamlDocument keeps sections in category order and keys sorted.
func yamlDocument(table *khipro.RuleTable) yaml.MapSlice {
	var script yaml.MapSlice
	if table.Script != "" {
		script = append(script, yaml.MapItem{Key: "name", Value: table.Script})
	}
	script = append(script, yaml.MapItem{Key: "joiner", Value: table.Joiner()})
	doc := yaml.MapSlice{{Key: khipro.ScriptSection, Value: script}}
	for _, c := range khipro.AllCategories() {
		m := table.Mapping(c)
		if m.Len() == 0 {
			continue
		}
		var sec yaml.MapSlice
		for _, key := range m.Keys() {
			glyph, _ := m.Get(key)
			sec = append(sec, yaml.MapItem{Key: key, Value: glyph})
		}
		doc = append(doc, yaml.MapItem{Key: c.String(), Value: sec})
	}
	return doc
}

func scriptSettings(table *khipro.RuleTable) map[string]string {
	settings := map[string]string{"joiner": table.Joiner()}
	if table.Script != "" {
		settings["name"] = table.Script
	}
	return settings
}
