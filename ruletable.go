package khipro

import (
	"fmt"
	"io"
	"math/bits"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultJoiner is the Bengali hasant (virama, U+09CD), which is put between a
// consonant and a following phola.
const DefaultJoiner = "্"

// ScriptSection is the pseudo-category under which rule readers deliver
// table settings instead of rules. Known settings are "name" and "joiner".
const ScriptSection = "script"

// RuleReader yields rules one-by-one.
// It should return io.EOF when the stream is exhausted.
//
// section is the name of a category (see ParseCategory), or ScriptSection
// for a table setting. The returned strings must not be modified by the
// reader afterwards.
type RuleReader interface {
	Next() (section, key, value string, err error)
}

// RuleTable is a frozen set of transliteration rules.
//
// A rule table contains:
//   - nine key → glyph mappings, one per Category
//   - the set of all keys, compiled into a trie index
//   - the maximum key length in runes, which bounds the tokenizer's look-ahead.
//
// A RuleTable is never modified after loading and may be used by multiple
// goroutines at once.
type RuleTable struct {
	mappings     [categoryCount]Mapping
	keys         keyIndex
	maxKeyLength int    // in runes
	joiner       string // put between consonant and phola
	Script       string // name of the target script, informational
	Identifier   string // Identifies the rule table
}

type loadConfig struct {
	index IndexKind
}

// LoadOption configures LoadRules and LoadRuleList.
type LoadOption func(*loadConfig)

// WithIndex selects the key index backend. Default is IndexDAT.
func WithIndex(kind IndexKind) LoadOption {
	return func(c *loadConfig) {
		c.index = kind
	}
}

// LoadRules compiles rules from a streaming, format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use adapters
// like package tomlrules to parse concrete formats and feed this API.
// If a key occurs more than once within a category, the last glyph wins.
func LoadRules(name string, reader RuleReader, opts ...LoadOption) (table *RuleTable, err error) {
	table = newRuleTable(name)
	var section, key, value string
	for {
		section, key, value, err = reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading rules for %s: %w", name, err)
		}
		if strings.EqualFold(section, ScriptSection) {
			table.setOption(key, value)
			continue
		}
		var cat Category
		if cat, err = ParseCategory(section); err != nil {
			return nil, fmt.Errorf("rule table %s: %w", name, err)
		}
		if err = table.add(cat, key, value); err != nil {
			return nil, fmt.Errorf("rule table %s: %w", name, err)
		}
	}
	if err = table.freeze(opts); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadRuleList compiles rules from an in-memory map.
func LoadRuleList(name string, rules map[Category]map[string]string, opts ...LoadOption) (*RuleTable, error) {
	table := newRuleTable(name)
	for cat, glyphs := range rules {
		if cat >= categoryCount {
			return nil, fmt.Errorf("rule table %s: invalid category %d", name, cat)
		}
		for key, glyph := range glyphs {
			if err := table.add(cat, key, glyph); err != nil {
				return nil, fmt.Errorf("rule table %s: %w", name, err)
			}
		}
	}
	if err := table.freeze(opts); err != nil {
		return nil, err
	}
	return table, nil
}

func newRuleTable(name string) *RuleTable {
	table := &RuleTable{
		joiner:     DefaultJoiner,
		Identifier: fmt.Sprintf("rules: %s", name),
	}
	for i := range table.mappings {
		table.mappings[i] = Mapping{glyphs: make(map[string]string)}
	}
	return table
}

func (table *RuleTable) setOption(key, value string) {
	switch strings.ToLower(key) {
	case "joiner":
		table.joiner = value
	case "name":
		table.Script = value
	default:
		tracer().Infof("%s: ignoring unknown script setting %q", table.Identifier, key)
	}
}

func (table *RuleTable) add(cat Category, key, glyph string) error {
	if key == "" {
		return fmt.Errorf("empty key in category %s", cat)
	}
	if !utf8.ValidString(key) {
		return fmt.Errorf("key %q in category %s is not valid UTF-8", key, cat)
	}
	m := table.mappings[cat].glyphs
	if old, dup := m[key]; dup && old != glyph {
		tracer().Debugf("%s: %s key %q redefined: %q → %q", table.Identifier, cat, key, old, glyph)
	}
	m[key] = glyph
	return nil
}

// freeze builds the key set and the derived maximum key length.
func (table *RuleTable) freeze(opts []LoadOption) error {
	var config loadConfig
	for _, opt := range opts {
		opt(&config)
	}
	classes := make(map[string]CategorySet)
	for cat, m := range table.mappings {
		for key := range m.glyphs {
			classes[key] |= setOf(Category(cat))
			table.maxKeyLength = max(table.maxKeyLength, utf8.RuneCountInString(key))
		}
	}
	keys := make([]string, 0, len(classes))
	for key := range classes {
		keys = append(keys, key)
	}
	sort.Strings(keys) // stable trie layout
	table.keys = newKeyIndex(config.index)
	for _, key := range keys {
		if !table.keys.Insert(key, classes[key]) {
			return fmt.Errorf("rule table %s: cannot index key %q", table.Identifier, key)
		}
	}
	if err := table.keys.Freeze(); err != nil {
		return fmt.Errorf("rule table %s: %w", table.Identifier, err)
	}
	assert(len(classes) > 0 || table.maxKeyLength == 0, "empty rule table with positive key length")
	stats := table.keys.Stats()
	tracer().Infof("%s: %d keys, max length %d, index=%s used=%d total=%d fill=%.2f",
		table.Identifier, stats.Keys, table.maxKeyLength, stats.Backend,
		stats.UsedSlots, stats.TotalSlots, stats.FillRatio())
	if overlaps := table.Overlaps(); len(overlaps) > 0 {
		tracer().Errorf("%s: %d keys are defined in more than one exclusive category",
			table.Identifier, len(overlaps))
	}
	return nil
}

// Mapping returns the rule mapping for category c.
func (table *RuleTable) Mapping(c Category) Mapping {
	assert(c < categoryCount, "invalid category")
	return table.mappings[c]
}

// MaxKeyLength returns the length in runes of the longest key.
func (table *RuleTable) MaxKeyLength() int {
	return table.maxKeyLength
}

// Joiner returns the glyph inserted between a consonant and a phola.
func (table *RuleTable) Joiner() string {
	return table.joiner
}

// Contains reports whether key is in the key set, i.e. in any category.
func (table *RuleTable) Contains(key string) bool {
	_, ok := table.keys.Lookup(key)
	return ok
}

// Categories returns the set of categories which define key.
func (table *RuleTable) Categories(key string) (CategorySet, bool) {
	return table.keys.Lookup(key)
}

// KeyCount returns the number of distinct keys.
func (table *RuleTable) KeyCount() int {
	return table.keys.Stats().Keys
}

// KeysWithPrefix returns all keys starting with prefix, in lexical order.
// An empty prefix returns all keys.
func (table *RuleTable) KeysWithPrefix(prefix string) []string {
	return table.keys.WithPrefix(prefix)
}

// IndexStats reports density metrics for the underlying key index.
func (table *RuleTable) IndexStats() (backend string, keys, usedSlots, totalSlots int, fillRatio float64) {
	if table == nil || table.keys == nil {
		return "", 0, 0, 0, 0
	}
	stats := table.keys.Stats()
	return stats.Backend, stats.Keys, stats.UsedSlots, stats.TotalSlots, stats.FillRatio()
}

// Overlap is a key found in more than one mutually exclusive category.
type Overlap struct {
	Key        string
	Categories CategorySet
}

// Overlaps lists the keys which are defined in two or more of the categories
// conjuncts, consonants, diacritics, reph, punctuation and digits. Rendering
// still works for them (the first category in render order wins), but the
// rule data is most likely wrong.
func (table *RuleTable) Overlaps() []Overlap {
	excl := setOf(exclusive...)
	var overlaps []Overlap
	for _, key := range table.keys.WithPrefix("") {
		cats, _ := table.keys.Lookup(key)
		if bits.OnesCount16(uint16(cats&excl)) > 1 {
			overlaps = append(overlaps, Overlap{Key: key, Categories: cats & excl})
		}
	}
	return overlaps
}

// MissingSigns lists vowel keys without a vowel-sign counterpart. After a
// consonant these render in their independent form.
func (table *RuleTable) MissingSigns() []string {
	var missing []string
	signs := table.mappings[VowelSigns]
	for key := range table.mappings[Vowels].glyphs {
		if !signs.Contains(key) {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}
