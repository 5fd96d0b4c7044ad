package khipro

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type sliceRuleReader struct {
	entries [][3]string
	index   int
}

func (r *sliceRuleReader) Next() (string, string, string, error) {
	if r.index >= len(r.entries) {
		return "", "", "", io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry[0], entry[1], entry[2], nil
}

type failingRuleReader struct {
	err error
}

func (r failingRuleReader) Next() (string, string, string, error) {
	return "", "", "", r.err
}

func mustLoadRuleList(t *testing.T, rules map[Category]map[string]string, opts ...LoadOption) *RuleTable {
	t.Helper()
	table, err := LoadRuleList(t.Name(), rules, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestRuleReaderAPI(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "khipro")
	defer teardown()
	//
	table, err := LoadRules("stream-rules", &sliceRuleReader{
		entries: [][3]string{
			{"consonants", "k", "ক"},
			{"consonants", "kh", "খ"},
			{"conjuncts", "kkh", "ক্ষ"},
			{"vowels", "i", "ই"},
			{"vowel_signs", "i", "ি"},
			{"script", "name", "Bengali"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := table.MaxKeyLength(); n != 3 {
		t.Errorf("expected max key length 3, is %d", n)
	}
	if n := table.KeyCount(); n != 4 {
		t.Errorf("expected 4 distinct keys, have %d", n)
	}
	if !table.Contains("kh") || table.Contains("khi") || table.Contains("") {
		t.Errorf("key set membership broken")
	}
	if table.Mapping(VowelSigns).Len() != 1 || table.Mapping(Consonants).Len() != 2 {
		t.Errorf("unexpected mapping sizes")
	}
	if table.Script != "Bengali" {
		t.Errorf("expected script name Bengali, is %q", table.Script)
	}
	if h := table.Transliterate("kkhi"); h != "ক্ষি" {
		t.Errorf("kkhi should be ক্ষি, is %s", h)
	}
}

func TestRuleReaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		reader RuleReader
	}{
		{"empty key", &sliceRuleReader{entries: [][3]string{{"consonants", "", "ক"}}}},
		{"unknown category", &sliceRuleReader{entries: [][3]string{{"glyphs", "k", "ক"}}}},
		{"invalid utf-8", &sliceRuleReader{entries: [][3]string{{"consonants", "k\xff", "ক"}}}},
	}
	for _, tt := range tests {
		if _, err := LoadRules(tt.name, tt.reader); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestRuleReaderErrorIsWrapped(t *testing.T) {
	errBroken := errors.New("broken source")
	_, err := LoadRules("failing", failingRuleReader{err: errBroken})
	if !errors.Is(err, errBroken) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestLoadRuleListRejectsInvalidCategory(t *testing.T) {
	_, err := LoadRuleList("invalid", map[Category]map[string]string{
		Category(42): {"k": "K"},
	})
	if err == nil {
		t.Fatalf("expected error for invalid category")
	}
}

func TestDuplicateKeyLastWins(t *testing.T) {
	table, err := LoadRules("dup", &sliceRuleReader{
		entries: [][3]string{
			{"consonants", "k", "X"},
			{"consonants", "k", "K"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := table.Mapping(Consonants).Get("k"); g != "K" {
		t.Fatalf("expected last definition K, got %q", g)
	}
}

func TestScriptJoinerSetting(t *testing.T) {
	table, err := LoadRules("joiner", &sliceRuleReader{
		entries: [][3]string{
			{"consonants", "k", "K"},
			{"phola", "z", "Z"},
			{"script", "joiner", "+"},
			{"script", "colour", "blue"}, // ignored
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if table.Joiner() != "+" {
		t.Fatalf("expected joiner +, is %q", table.Joiner())
	}
	if h := table.Transliterate("kz"); h != "K+Z" {
		t.Fatalf("kz should be K+Z, is %s", h)
	}
}

func TestDefaultJoiner(t *testing.T) {
	table := mustLoadRuleList(t, map[Category]map[string]string{Consonants: {"k": "K"}})
	if table.Joiner() != "্" {
		t.Fatalf("expected hasant as default joiner, got %q", table.Joiner())
	}
}

func TestOverlaps(t *testing.T) {
	table := mustLoadRuleList(t, map[Category]map[string]string{
		Consonants: {"k": "K", "x": "X"},
		Digits:     {"x": "9"},
		Vowels:     {"i": "I"},
		VowelSigns: {"i": "i-sign"},
		Phola:      {"k": "K"},
	})
	overlaps := table.Overlaps()
	if len(overlaps) != 1 {
		t.Fatalf("expected exactly one overlap, have %v", overlaps)
	}
	o := overlaps[0]
	if o.Key != "x" || !o.Categories.Has(Consonants) || !o.Categories.Has(Digits) {
		t.Fatalf("unexpected overlap %+v", o)
	}
	if s := o.Categories.String(); s != "consonants|digits" {
		t.Errorf("unexpected category set string %q", s)
	}
}

func TestMissingSigns(t *testing.T) {
	table := mustLoadRuleList(t, map[Category]map[string]string{
		Vowels:     {"a": "A", "i": "I", "fi": "i-sign"},
		VowelSigns: {"a": "a-sign", "i": "i-sign", "if": "I"},
	})
	if got := table.MissingSigns(); !reflect.DeepEqual(got, []string{"fi"}) {
		t.Fatalf("expected [fi] without sign, got %v", got)
	}
}

func TestCategoriesOfKey(t *testing.T) {
	table := mustLoadRuleList(t, map[Category]map[string]string{
		Vowels:     {"i": "I"},
		VowelSigns: {"i": "i-sign"},
	})
	cats, ok := table.Categories("i")
	if !ok || !reflect.DeepEqual(cats.Categories(), []Category{Vowels, VowelSigns}) {
		t.Fatalf("expected i in vowels and vowel signs, got %v", cats)
	}
	if _, ok := table.Categories("k"); ok {
		t.Fatalf("k should not be known")
	}
}

func TestIndexStats(t *testing.T) {
	rules := map[Category]map[string]string{
		Consonants: {"k": "K", "kh": "KH"},
		Conjuncts:  {"kkh": "KSS"},
	}
	for _, kind := range []IndexKind{IndexDAT, IndexPrefixTrie} {
		table := mustLoadRuleList(t, rules, WithIndex(kind))
		backend, keys, used, total, fill := table.IndexStats()
		if backend != kind.String() {
			t.Errorf("expected backend %s, got %s", kind, backend)
		}
		if keys != 3 {
			t.Errorf("%s: expected 3 keys, have %d", backend, keys)
		}
		if used <= 0 || total <= 0 {
			t.Errorf("%s: expected positive slot counts, got used=%d total=%d", backend, used, total)
		}
		if fill <= 0 || fill > 1 {
			t.Errorf("%s: expected fill ratio in (0,1], got %f", backend, fill)
		}
	}
}

func TestKeysWithPrefix(t *testing.T) {
	rules := map[Category]map[string]string{
		Consonants: {"k": "K", "kh": "KH", "g": "G"},
		Conjuncts:  {"kkh": "KSS", "ktf": "KT"},
	}
	for _, kind := range []IndexKind{IndexDAT, IndexPrefixTrie} {
		table := mustLoadRuleList(t, rules, WithIndex(kind))
		if got := table.KeysWithPrefix("k"); !reflect.DeepEqual(got, []string{"k", "kh", "kkh", "ktf"}) {
			t.Errorf("%s: keys with prefix k = %v", kind, got)
		}
		if got := table.KeysWithPrefix("kt"); !reflect.DeepEqual(got, []string{"ktf"}) {
			t.Errorf("%s: keys with prefix kt = %v", kind, got)
		}
		if got := table.KeysWithPrefix("x"); len(got) != 0 {
			t.Errorf("%s: expected no keys with prefix x, got %v", kind, got)
		}
		if got := table.KeysWithPrefix(""); len(got) != 5 {
			t.Errorf("%s: expected all 5 keys, got %v", kind, got)
		}
	}
}

func TestEmptyRuleTable(t *testing.T) {
	table := mustLoadRuleList(t, nil)
	if table.MaxKeyLength() != 0 || table.KeyCount() != 0 {
		t.Fatalf("empty table should have no keys, has %d (max length %d)",
			table.KeyCount(), table.MaxKeyLength())
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		parsed, err := ParseCategory(c.String())
		if err != nil || parsed != c {
			t.Errorf("category %s does not parse back: %v, %v", c, parsed, err)
		}
	}
	aliases := map[string]Category{
		"Vowel-Signs":  VowelSigns,
		"punctuations": Punctuation,
		" repha ":      Reph,
	}
	for name, want := range aliases {
		if c, err := ParseCategory(name); err != nil || c != want {
			t.Errorf("%q should parse to %s, got %s (%v)", name, want, c, err)
		}
	}
}
