package khipro

// IndexKind selects the data structure used as the key set of a RuleTable.
type IndexKind uint8

const (
	// IndexDAT is a frozen double-array trie (the default).
	IndexDAT IndexKind = iota
	// IndexPrefixTrie is a pointer-based prefix trie. It supports the same
	// lookups and is mainly useful for cross-checking the DAT.
	IndexPrefixTrie
)

func (k IndexKind) String() string {
	switch k {
	case IndexDAT:
		return "dat"
	case IndexPrefixTrie:
		return "trie"
	}
	return "unknown"
}

type keyIndexStats struct {
	Backend    string
	Keys       int
	UsedSlots  int
	TotalSlots int
	MaxStateID int
}

func (s keyIndexStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// keyIndex is the internal backend abstraction for the set of known keys.
//
// Insert may only be called before Freeze, all other methods only after it.
type keyIndex interface {
	Insert(key string, cats CategorySet) bool
	Freeze() error
	// LongestPrefix returns the byte length of the longest key which is a
	// prefix of s and spans at most maxRunes runes, or 0.
	LongestPrefix(s string, maxRunes int) (int, CategorySet)
	Lookup(key string) (CategorySet, bool)
	WithPrefix(prefix string) []string
	Stats() keyIndexStats
}

func newKeyIndex(kind IndexKind) keyIndex {
	switch kind {
	case IndexPrefixTrie:
		return newPrefixTrieBackend()
	default:
		return newDATBackend()
	}
}
