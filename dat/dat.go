/*
Package dat implements a frozen double-array trie over small rune alphabets.

The trie is built once by package khipro and afterwards only read, so it may
be shared between goroutines without locking.

  - Nodes/states are indices into Base/Check (0 is unused; Root is typically 1).
  - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
  - c is a dense alphabet ID in [1..Sigma]. c==0 means "not in alphabet".
  - Class[s] != 0 marks s as terminal, i.e. the path to s spells a key.
*/
package dat

// DAT is a frozen double-array trie for phonetic keys.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Sigma is the size of the dense alphabet (maximum dense ID).
	Sigma uint16

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Class holds a non-zero payload for terminal states. The trie does
	// not interpret it; khipro stores a category bit set here.
	Class []uint16 // len == N

	// Alphabet maps runes to dense IDs and back.
	Alphabet Alphabet
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). dense must be in [1..Sigma].
func (d *DAT) Transition(state uint32, dense uint16) (uint32, bool) {
	if dense == 0 || int(state) >= len(d.Base) {
		return 0, false
	}
	t := d.Base[state] + int32(dense)
	if t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// Terminal returns the payload of state s, or 0 if s does not end a key.
func (d *DAT) Terminal(s uint32) uint16 {
	if int(s) >= len(d.Class) {
		return 0
	}
	return d.Class[s]
}

// Children calls f for every outgoing transition of state s, in ascending
// order of dense IDs.
func (d *DAT) Children(s uint32, f func(dense uint16, next uint32)) {
	for c := uint16(1); c <= d.Sigma && c != 0; c++ {
		if next, ok := d.Transition(s, c); ok {
			f(c, next)
		}
	}
}

// Ensure grows the arrays so that idx is a valid state index.
func (d *DAT) Ensure(idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
	d.Class = append(d.Class, make([]uint16, grow)...)
}

// --- Alphabet --------------------------------------------------------------

// Alphabet assigns dense IDs to runes. ASCII is served from a flat table,
// as phonetic keys are almost always ASCII; other runes go through a map.
type Alphabet struct {
	ascii   [128]uint16
	other   map[rune]uint16
	symbols []rune // symbols[id-1] is the rune for dense id
}

// Dense returns the dense alphabet ID for r.
// Returns 0 if r is not part of the alphabet.
func (a *Alphabet) Dense(r rune) uint16 {
	if r >= 0 && r < 128 {
		return a.ascii[r]
	}
	return a.other[r]
}

// Add returns the dense ID for r, assigning the next free one if r is new.
// It returns 0 if the alphabet is exhausted.
func (a *Alphabet) Add(r rune) uint16 {
	if id := a.Dense(r); id != 0 {
		return id
	}
	if len(a.symbols) >= 0xFFFE {
		return 0
	}
	a.symbols = append(a.symbols, r)
	id := uint16(len(a.symbols))
	if r >= 0 && r < 128 {
		a.ascii[r] = id
	} else {
		if a.other == nil {
			a.other = make(map[rune]uint16)
		}
		a.other[r] = id
	}
	return id
}

// Rune returns the rune for a dense ID, or -1 for an unknown ID.
func (a *Alphabet) Rune(dense uint16) rune {
	if dense == 0 || int(dense) > len(a.symbols) {
		return -1
	}
	return a.symbols[dense-1]
}

// Size returns the number of runes in the alphabet.
func (a *Alphabet) Size() int { return len(a.symbols) }
