/*
Package tomlrules reads transliteration rule tables in TOML format.

A rule file has one table per rule category, mapping phonetic keys to
glyphs. An optional [script] table carries settings:

	[script]
	name = "Bengali"
	joiner = "্"

	[vowels]
	"a" = "আ"
	"i" = "ই"

	[vowel_signs]
	"a" = "া"
	"i" = "ি"

	[consonants]
	"k" = "ক"

Section names are not interpreted here; package khipro maps them to rule
categories. Rules are delivered in document order.
*/
package tomlrules

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// Reader streams rules from a TOML document.
type Reader struct {
	src     io.Reader
	doc     map[string]map[string]string
	keys    []toml.Key
	pos     int
	decoded bool
}

// NewReader creates a rule reader for TOML input. The document is decoded
// on the first call to Next.
func NewReader(reader io.Reader) *Reader {
	return &Reader{src: reader}
}

// Next returns the next rule as (section, key, value).
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, string, string, error) {
	if !r.decoded {
		if err := r.decode(); err != nil {
			return "", "", "", err
		}
	}
	for r.pos < len(r.keys) {
		k := r.keys[r.pos]
		r.pos++
		if len(k) != 2 { // table headers
			continue
		}
		return k[0], k[1], r.doc[k[0]][k[1]], nil
	}
	return "", "", "", io.EOF
}

func (r *Reader) decode() error {
	r.decoded = true
	var raw map[string]any
	md, err := toml.NewDecoder(r.src).Decode(&raw)
	if err != nil {
		return fmt.Errorf("decoding TOML rules: %w", err)
	}
	r.doc = make(map[string]map[string]string, len(raw))
	for name, v := range raw {
		section, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("TOML rules: %q is not a section", name)
		}
		rules := make(map[string]string, len(section))
		for key, value := range section {
			glyph, ok := value.(string)
			if !ok {
				return fmt.Errorf("TOML rules: value of %s.%q is not a string", name, key)
			}
			rules[key] = glyph
		}
		r.doc[name] = rules
	}
	r.keys = md.Keys()
	return nil
}

// Sections returns the section names of the document in document order.
// It decodes the document if this has not happened yet.
func (r *Reader) Sections() ([]string, error) {
	if !r.decoded {
		if err := r.decode(); err != nil {
			return nil, err
		}
	}
	var sections []string
	for _, k := range r.keys {
		if len(k) == 1 {
			sections = append(sections, k[0])
		}
	}
	return sections, nil
}
