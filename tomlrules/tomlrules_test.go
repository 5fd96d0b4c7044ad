package tomlrules

import (
	"io"
	"reflect"
	"strings"
	"testing"
)

const mini = `
[script]
name = "Bengali"
joiner = "্"

[vowels]
"i" = "ই"
"o" = ""

[consonants]
"k" = "ক"
".1" = "x"
`

func TestReader(t *testing.T) {
	r := NewReader(strings.NewReader(mini))
	var got [][3]string
	for {
		section, key, value, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, [3]string{section, key, value})
	}
	want := [][3]string{
		{"script", "name", "Bengali"},
		{"script", "joiner", "্"},
		{"vowels", "i", "ই"},
		{"vowels", "o", ""},
		{"consonants", "k", "ক"},
		{"consonants", ".1", "x"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rules mismatch:\n got %q\nwant %q", got, want)
	}
	if _, _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after last rule, got %v", err)
	}
}

func TestSections(t *testing.T) {
	sections, err := NewReader(strings.NewReader(mini)).Sections()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sections, []string{"script", "vowels", "consonants"}) {
		t.Fatalf("unexpected sections %v", sections)
	}
}

func TestReaderRejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"[vowels\n\"a\" = \"আ\"",      // broken header
		"[vowels]\n\"a\" = 1",          // not a string
		"toplevel = \"x\"\n[vowels]\n", // rule outside of a section
		"k = \"K\"\n[consonants]\n\"g\" = \"G\"",
		"[vowels.long]\n\"a\" = \"আ\"", // nested table
	}
	for _, input := range inputs {
		r := NewReader(strings.NewReader(input))
		if _, _, _, err := r.Next(); err == nil || err == io.EOF {
			t.Errorf("expected decode error for %q, got %v", input, err)
		}
	}
}

func TestReaderKeepsNoRuleOutsideSections(t *testing.T) {
	r := NewReader(strings.NewReader("k = \"K\"\n[consonants]\n\"g\" = \"G\"\n"))
	var rules []string
	for {
		section, key, _, err := r.Next()
		if err == io.EOF {
			t.Fatalf("top-level rule was dropped without error, read %v", rules)
		}
		if err != nil {
			if !strings.Contains(err.Error(), `"k" is not a section`) {
				t.Errorf("unexpected error: %v", err)
			}
			break
		}
		rules = append(rules, section+"/"+key)
	}
	if len(rules) != 0 {
		t.Errorf("expected no rules before the error, got %v", rules)
	}
}
