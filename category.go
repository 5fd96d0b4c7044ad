package khipro

import (
	"fmt"
	"sort"
	"strings"
)

// Category classifies a phonetic key by the kind of glyph it produces.
type Category uint8

// The nine rule categories. The numeric order is not the render priority;
// see renderRules for that.
const (
	Vowels Category = iota
	VowelSigns
	Consonants
	Conjuncts
	Diacritics
	Reph
	Phola
	Punctuation
	Digits
	categoryCount
)

var categoryNames = [categoryCount]string{
	"vowels", "vowel_signs", "consonants", "conjuncts", "diacritics",
	"reph", "phola", "punctuation", "digits",
}

func (c Category) String() string {
	if c >= categoryCount {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// AllCategories returns the nine categories in declaration order.
func AllCategories() []Category {
	cats := make([]Category, categoryCount)
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// ParseCategory maps a section name of a rule file to a Category.
// Matching ignores case, and '-' is treated like '_'.
func ParseCategory(name string) (Category, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	switch n {
	case "vowel", "vowels":
		return Vowels, nil
	case "vowel_sign", "vowel_signs", "signs", "kar":
		return VowelSigns, nil
	case "consonant", "consonants":
		return Consonants, nil
	case "conjunct", "conjuncts", "juktoborno":
		return Conjuncts, nil
	case "diacritic", "diacritics":
		return Diacritics, nil
	case "reph", "repha":
		return Reph, nil
	case "phola":
		return Phola, nil
	case "punctuation", "punctuations":
		return Punctuation, nil
	case "digit", "digits":
		return Digits, nil
	}
	return 0, fmt.Errorf("unknown rule category %q", name)
}

// exclusive lists the categories which must not share keys with each other.
// Vowels and vowel signs share keys on purpose, and phola keys double as
// plain letters, so they are left out.
var exclusive = []Category{Conjuncts, Consonants, Diacritics, Reph, Punctuation, Digits}

// --- Category sets ---------------------------------------------------------

// CategorySet is a bit set of categories. The key index stores one per key.
type CategorySet uint16

func setOf(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s |= 1 << c
	}
	return s
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return s&(1<<c) != 0
}

// Categories returns the members of s in declaration order.
func (s CategorySet) Categories() []Category {
	var cats []Category
	for c := Category(0); c < categoryCount; c++ {
		if s.Has(c) {
			cats = append(cats, c)
		}
	}
	return cats
}

func (s CategorySet) String() string {
	cats := s.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, "|")
}

// --- Mapping ---------------------------------------------------------------

// Mapping is the read-only key → glyph table of one category.
// Glyphs may be empty: such keys consume input and produce nothing.
type Mapping struct {
	glyphs map[string]string
}

// Contains reports whether key is part of the mapping.
func (m Mapping) Contains(key string) bool {
	_, ok := m.glyphs[key]
	return ok
}

// Get returns the glyph for key.
func (m Mapping) Get(key string) (string, bool) {
	g, ok := m.glyphs[key]
	return g, ok
}

// Len returns the number of keys.
func (m Mapping) Len() int { return len(m.glyphs) }

// Keys returns all keys in lexical order.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m.glyphs))
	for k := range m.glyphs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
