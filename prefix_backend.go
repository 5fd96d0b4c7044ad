package khipro

import (
	"sort"
	"unicode/utf8"

	"github.com/derekparker/trie"
)

// prefixTrieBackend keeps keys in a pointer-based trie. Lookups are slower
// than with the DAT, but the structure is simple enough to serve as a
// reference implementation.
type prefixTrieBackend struct {
	frozen bool
	t      *trie.Trie
	keys   int
}

func newPrefixTrieBackend() *prefixTrieBackend {
	return &prefixTrieBackend{t: trie.New()}
}

func (pb *prefixTrieBackend) Insert(key string, cats CategorySet) bool {
	assert(!pb.frozen, "insert into frozen key index")
	if key == "" || cats == 0 || !utf8.ValidString(key) {
		return false
	}
	if _, found := pb.t.Find(key); !found {
		pb.keys++
	}
	pb.t.Add(key, cats)
	return true
}

func (pb *prefixTrieBackend) Freeze() error {
	pb.frozen = true
	return nil
}

func (pb *prefixTrieBackend) LongestPrefix(s string, maxRunes int) (int, CategorySet) {
	assert(pb.frozen, "lookup in unfrozen key index")
	best, bestCats := 0, CategorySet(0)
	for i, n := 0, 0; i < len(s) && n < maxRunes; n++ {
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && w <= 1 {
			break
		}
		i += w
		prefix := s[:i]
		if !pb.t.HasKeysWithPrefix(prefix) {
			break
		}
		if cats, ok := pb.Lookup(prefix); ok {
			best, bestCats = i, cats
		}
	}
	return best, bestCats
}

func (pb *prefixTrieBackend) Lookup(key string) (CategorySet, bool) {
	if key == "" {
		return 0, false
	}
	node, found := pb.t.Find(key)
	if !found {
		return 0, false
	}
	cats, ok := node.Meta().(CategorySet)
	return cats, ok && cats != 0
}

func (pb *prefixTrieBackend) WithPrefix(prefix string) []string {
	if prefix == "" {
		return sortedCopy(pb.t.Keys())
	}
	return sortedCopy(pb.t.PrefixSearch(prefix))
}

func (pb *prefixTrieBackend) Stats() keyIndexStats {
	return keyIndexStats{
		Backend:    "trie",
		Keys:       pb.keys,
		UsedSlots:  pb.keys,
		TotalSlots: pb.keys,
		MaxStateID: pb.keys,
	}
}

func sortedCopy(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	cp := make([]string, len(keys))
	copy(cp, keys)
	sort.Strings(cp)
	return cp
}
