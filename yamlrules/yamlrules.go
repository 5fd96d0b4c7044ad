/*
Package yamlrules reads transliteration rule tables in YAML format.

The document shape follows package tomlrules: one mapping per rule category,
and an optional "script" mapping for settings.

	script:
	  name: Bengali
	  joiner: "্"
	vowels:
	  "a": "আ"
	consonants:
	  "k": "ক"
	  "y": "য়"

YAML 1.1 reads unquoted y, n, on, off and numbers as non-strings, so keys
like these have to be quoted. Non-string keys are reported as errors
rather than converted. A null value is read as the empty glyph.
*/
package yamlrules

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v2"
)

type rule struct {
	section, key, value string
}

// Reader streams rules from a YAML document.
type Reader struct {
	src     io.Reader
	rules   []rule
	pos     int
	decoded bool
}

// NewReader creates a rule reader for YAML input. The document is decoded
// on the first call to Next.
func NewReader(reader io.Reader) *Reader {
	return &Reader{src: reader}
}

// Next returns the next rule as (section, key, value).
// It returns io.EOF when exhausted.
func (r *Reader) Next() (string, string, string, error) {
	if !r.decoded {
		r.decoded = true
		if err := r.decode(); err != nil {
			return "", "", "", err
		}
	}
	if r.pos >= len(r.rules) {
		return "", "", "", io.EOF
	}
	next := r.rules[r.pos]
	r.pos++
	return next.section, next.key, next.value, nil
}

func (r *Reader) decode() error {
	data, err := io.ReadAll(r.src)
	if err != nil {
		return fmt.Errorf("reading YAML rules: %w", err)
	}
	var doc yaml.MapSlice
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding YAML rules: %w", err)
	}
	for _, sec := range doc {
		section, ok := sec.Key.(string)
		if !ok {
			return fmt.Errorf("YAML rules: section name %v is not a string", sec.Key)
		}
		if sec.Value == nil {
			continue // empty section
		}
		entries, ok := sec.Value.(yaml.MapSlice)
		if !ok {
			return fmt.Errorf("YAML rules: section %q is not a mapping", section)
		}
		for _, entry := range entries {
			key, ok := entry.Key.(string)
			if !ok {
				return fmt.Errorf("YAML rules: key %v in section %q is not a string (quote it)",
					entry.Key, section)
			}
			var value string
			switch v := entry.Value.(type) {
			case nil:
			case string:
				value = v
			default:
				return fmt.Errorf("YAML rules: value for %q in section %q is not a string", key, section)
			}
			r.rules = append(r.rules, rule{section: section, key: key, value: value})
		}
	}
	return nil
}
