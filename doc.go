/*
Package khipro transliterates phonetic Latin input into Bengali script.

Input is written in the Khipro phonetic scheme, e.g. "amar sonar bangla".
Conversion runs in two passes. The tokenizer splits the input into the
longest known phonetic keys ("maximum munch"), falling back to single
characters where no key matches. The renderer then maps every token to script
glyphs, carrying one bit of context: whether the previous unit was a
consonant. This decides between independent vowel letters and dependent
vowel signs, and whether a phola (subscript ya/ra) needs a joining hasant.

Rules live in a RuleTable, which is built once from a RuleReader and frozen.
Keys are indexed in a double-array trie, see package dat. The rule data
itself is not part of the engine: the default table is an embedded TOML file
(see package tomlrules), and package rules loads user-supplied tables in
TOML or YAML format.

Example:

	out := khipro.Transliterate("ami bangla")  // "আমি বাংলা"

Further Reading

	https://github.com/rank-coder/khipro-python   (the Khipro scheme)
	https://en.wikipedia.org/wiki/Bengali_alphabet

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package khipro

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'khipro'
func tracer() tracing.Trace {
	return tracing.Select("khipro")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
