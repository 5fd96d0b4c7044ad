package khipro

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/khipro/tomlrules"
)

// DefaultVariant names the rule table used by Default and Transliterate.
const DefaultVariant = "khipro"

//go:embed tables/*.toml
var embeddedTables embed.FS

var (
	defaultOnce  sync.Once
	defaultTable *RuleTable
)

// Default returns the built-in Khipro rule table. It is loaded on first use.
// An unloadable built-in table is a build defect, therefore Default panics
// in that case.
func Default() *RuleTable {
	defaultOnce.Do(func() {
		table, err := Variant(DefaultVariant)
		if err != nil {
			panic(fmt.Sprintf("khipro: built-in rule table: %v", err))
		}
		defaultTable = table
	})
	return defaultTable
}

// Transliterate converts phonetic input to Bengali script, using the
// built-in rule table.
//
//	Transliterate("ami")  // "আমি"
func Transliterate(input string) string {
	return Default().Transliterate(input)
}

// Variants lists the names of the built-in rule tables.
func Variants() []string {
	entries, err := embeddedTables.ReadDir("tables")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Variant loads the built-in rule table with the given name. Every call
// compiles a fresh table; use Default for the shared default table.
func Variant(name string, opts ...LoadOption) (*RuleTable, error) {
	data, err := embeddedTables.ReadFile(path.Join("tables", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("no built-in rule table %q (have %s)", name,
			strings.Join(Variants(), ", "))
	}
	return LoadRules(name, tomlrules.NewReader(bytes.NewReader(data)), opts...)
}
