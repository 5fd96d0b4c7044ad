package khipro

import "strings"

// RenderState is the context carried from one token to the next while
// rendering: whether the previous unit was consonantal (a consonant, a
// conjunct or a phola) or anything else.
type RenderState uint8

const (
	AfterOther     RenderState = iota // start of text, vowel, sign, punctuation, …
	AfterConsonant                    // consonant, conjunct or phola
)

func (s RenderState) String() string {
	if s == AfterConsonant {
		return "after-consonant"
	}
	return "after-other"
}

// Next returns the state following a unit of category c.
func (s RenderState) Next(c Category) RenderState {
	switch c {
	case Conjuncts, Consonants, Phola:
		return AfterConsonant
	}
	return AfterOther
}

// Reset returns the state for an unknown, passed-through token.
func (s RenderState) Reset() RenderState {
	return AfterOther
}

// renderRule is one entry of the render dispatch table. It applies to a key
// if the key is contained in the rule's category; glyph then produces the
// output for the key in the current state.
type renderRule struct {
	category Category
	applies  func(table *RuleTable, key string) bool
	glyph    func(table *RuleTable, key string, state RenderState) string
}

// renderRules is the classification of tokens in priority order. The first
// rule which applies wins.
//
// The order matters for vowels: a key present in both vowels and vowel signs
// is handled by the vowel rule, which picks the sign only after consonants.
// The vowel-sign rule catches keys which exist only as signs.
var renderRules = [...]renderRule{
	{Conjuncts, inCategory(Conjuncts), verbatim(Conjuncts)},
	{Consonants, inCategory(Consonants), verbatim(Consonants)},
	{Diacritics, inCategory(Diacritics), verbatim(Diacritics)},
	{Reph, inCategory(Reph), verbatim(Reph)},
	{Punctuation, inCategory(Punctuation), verbatim(Punctuation)},
	{Phola, inCategory(Phola), renderPhola},
	{Vowels, inCategory(Vowels), renderVowel},
	{VowelSigns, inCategory(VowelSigns), verbatim(VowelSigns)},
	{Digits, inCategory(Digits), verbatim(Digits)},
}

func inCategory(c Category) func(*RuleTable, string) bool {
	return func(table *RuleTable, key string) bool {
		return table.mappings[c].Contains(key)
	}
}

func verbatim(c Category) func(*RuleTable, string, RenderState) string {
	return func(table *RuleTable, key string, _ RenderState) string {
		g, _ := table.mappings[c].Get(key)
		return g
	}
}

// renderPhola joins a phola to a preceding consonant. Standing alone, the
// phola glyph is the plain letter.
func renderPhola(table *RuleTable, key string, state RenderState) string {
	g, _ := table.mappings[Phola].Get(key)
	if state == AfterConsonant {
		return table.joiner + g
	}
	return g
}

// renderVowel writes the dependent vowel sign after a consonant, if there
// is one, and the independent vowel letter otherwise.
func renderVowel(table *RuleTable, key string, state RenderState) string {
	if state == AfterConsonant {
		if sign, ok := table.mappings[VowelSigns].Get(key); ok {
			return sign
		}
	}
	g, _ := table.mappings[Vowels].Get(key)
	return g
}

// classify returns the render rule for token t, or nil for unknown tokens.
func (table *RuleTable) classify(t Token) *renderRule {
	for i := range renderRules {
		if renderRules[i].applies(table, t.Text) {
			return &renderRules[i]
		}
	}
	return nil
}

// RenderToken renders a single token in state and returns its glyphs
// together with the state for the next token.
func (table *RuleTable) RenderToken(t Token, state RenderState) (string, RenderState) {
	rule := table.classify(t)
	if rule == nil {
		return t.Text, state.Reset()
	}
	return rule.glyph(table, t.Text, state), state.Next(rule.category)
}

// Render concatenates the glyphs for tokens. It starts in state AfterOther.
// Rendering never fails: tokens which are not keys are copied verbatim.
func (table *RuleTable) Render(tokens []Token) string {
	var out strings.Builder
	out.Grow(len(tokens) * 3)
	state := AfterOther
	var g string
	for _, t := range tokens {
		g, state = table.RenderToken(t, state)
		out.WriteString(g)
	}
	return out.String()
}

// Transliterate converts phonetic input to script.
// It is safe to call concurrently.
func (table *RuleTable) Transliterate(input string) string {
	return table.Render(table.Tokenize(input))
}
