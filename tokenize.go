package khipro

import "unicode/utf8"

// Token is a contiguous slice of an input string.
//
// Known tokens are keys of the rule table. Unknown tokens are single runes
// (or single bytes of invalid UTF-8) for which no key matched.
type Token struct {
	Text   string
	Offset int // byte offset into the input
	Known  bool
}

// Tokenize splits text into tokens, left to right, always taking the longest
// key which matches at the current position ("maximum munch"). Where no key
// matches, one rune is split off as an unknown token.
//
// The concatenation of all token texts equals text. An empty text results in
// an empty slice.
func (table *RuleTable) Tokenize(text string) []Token {
	if text == "" {
		return nil
	}
	tokens := make([]Token, 0, len(text)/2+1)
	for i := 0; i < len(text); {
		if table.maxKeyLength > 0 {
			if n, _ := table.keys.LongestPrefix(text[i:], table.maxKeyLength); n > 0 {
				tokens = append(tokens, Token{Text: text[i : i+n], Offset: i, Known: true})
				i += n
				continue
			}
		}
		_, w := utf8.DecodeRuneInString(text[i:])
		tokens = append(tokens, Token{Text: text[i : i+w], Offset: i})
		i += w
	}
	return tokens
}

// TokenStrings returns the texts of tokens.
func TokenStrings(tokens []Token) []string {
	s := make([]string, len(tokens))
	for i, t := range tokens {
		s[i] = t.Text
	}
	return s
}
