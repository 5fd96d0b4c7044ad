package khipro

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/npillmayer/khipro/dat"
)

type datBuildNode struct {
	state    uint32
	cats     CategorySet
	children map[uint16]*datBuildNode
}

func newDATBuildNode() *datBuildNode {
	return &datBuildNode{children: make(map[uint16]*datBuildNode)}
}

type datBackend struct {
	frozen   bool
	root     *datBuildNode
	keys     int
	compiled *dat.DAT
}

func newDATBackend() *datBackend {
	return &datBackend{
		root:     newDATBuildNode(),
		compiled: &dat.DAT{Root: 1},
	}
}

func (db *datBackend) Insert(key string, cats CategorySet) bool {
	assert(!db.frozen, "insert into frozen key index")
	if key == "" || cats == 0 || !utf8.ValidString(key) {
		return false
	}
	n := db.root
	for _, r := range key {
		c := db.compiled.Alphabet.Add(r)
		if c == 0 {
			return false
		}
		child := n.children[c]
		if child == nil {
			child = newDATBuildNode()
			n.children[c] = child
		}
		n = child
	}
	if n.cats == 0 {
		db.keys++
	}
	n.cats = cats
	return true
}

// Freeze lays out the build trie breadth-first into the double array.
func (db *datBackend) Freeze() error {
	if db.frozen {
		return nil
	}
	d := db.compiled
	sigma, err := safecast.Conv[uint16](d.Alphabet.Size())
	if err != nil {
		return fmt.Errorf("key alphabet overflow: %w", err)
	}
	d.Sigma = sigma
	d.Ensure(int(d.Root))
	db.root.state = d.Root
	queue := []*datBuildNode{db.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		d.Class[n.state] = uint16(n.cats)
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := findDATBase(d.Check, labels, d.Root)
		d.Ensure(base + int(labels[len(labels)-1]))
		if d.Base[n.state], err = safecast.Conv[int32](base); err != nil {
			return fmt.Errorf("double array overflow: %w", err)
		}
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			if child.state, err = safecast.Conv[uint32](t); err != nil {
				return fmt.Errorf("double array overflow: %w", err)
			}
			d.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	db.root = nil
	db.frozen = true
	return nil
}

func (db *datBackend) LongestPrefix(s string, maxRunes int) (int, CategorySet) {
	assert(db.frozen, "lookup in unfrozen key index")
	d := db.compiled
	state := d.Root
	best, bestCats := 0, CategorySet(0)
	for i, n := 0, 0; i < len(s) && n < maxRunes; n++ {
		r, w := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && w <= 1 {
			break
		}
		next, ok := d.Transition(state, d.Alphabet.Dense(r))
		if !ok {
			break
		}
		state = next
		i += w
		if cats := d.Terminal(state); cats != 0 {
			best, bestCats = i, CategorySet(cats)
		}
	}
	return best, bestCats
}

func (db *datBackend) walk(key string) (uint32, bool) {
	d := db.compiled
	state := d.Root
	for _, r := range key {
		next, ok := d.Transition(state, d.Alphabet.Dense(r))
		if !ok {
			return 0, false
		}
		state = next
	}
	return state, true
}

func (db *datBackend) Lookup(key string) (CategorySet, bool) {
	assert(db.frozen, "lookup in unfrozen key index")
	if key == "" {
		return 0, false
	}
	state, ok := db.walk(key)
	if !ok {
		return 0, false
	}
	cats := CategorySet(db.compiled.Terminal(state))
	return cats, cats != 0
}

func (db *datBackend) WithPrefix(prefix string) []string {
	assert(db.frozen, "lookup in unfrozen key index")
	state, ok := db.walk(prefix)
	if !ok {
		return nil
	}
	var keys []string
	var collect func(s uint32, key []rune)
	collect = func(s uint32, key []rune) {
		if db.compiled.Terminal(s) != 0 {
			keys = append(keys, string(key))
		}
		db.compiled.Children(s, func(c uint16, next uint32) {
			collect(next, append(key, db.compiled.Alphabet.Rune(c)))
		})
	}
	collect(state, []rune(prefix))
	sort.Strings(keys)
	return keys
}

func sortedLabels(children map[uint16]*datBuildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// findDATBase returns the smallest base such that all slots base+label are
// free. Slots at or below root are reserved.
func findDATBase(check []int32, labels []uint16, root uint32) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t <= int(root) || (t < len(check) && check[t] != 0) {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func (db *datBackend) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,keys=%d,frozen=%v)",
		db.compiled.NStates(), db.compiled.Sigma, db.keys, db.frozen)
}

func (db *datBackend) Stats() keyIndexStats {
	d := db.compiled
	stats := keyIndexStats{
		Backend:    "dat",
		Keys:       db.keys,
		TotalSlots: d.NStates(),
		MaxStateID: int(d.Root),
	}
	if stats.TotalSlots == 0 {
		return stats
	}
	used := 0
	for i := range d.Check {
		if i == int(d.Root) || d.Check[i] != 0 {
			used++
			stats.MaxStateID = max(stats.MaxStateID, i)
		}
	}
	stats.UsedSlots = used
	return stats
}
