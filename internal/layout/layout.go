// Package layout implements the layout algebra a Multiverse is built from:
// one layout is a conjunction of independent "choose k blues from this
// group of cells" sub-constraints.
package layout

import (
	"fmt"
	"sort"

	"hexsolver/internal/hexcoord"
)

// Entry is one group -> blue-count mapping within a Layout.
type Entry struct {
	Group hexcoord.CoordSet
	Blues int
}

// Layout is one disjunct of a Multiverse: an ordered mapping from disjoint
// coord-groups to the number of blues within each group. Groups are kept
// sorted by Entry.Group.Compare so that two Layouts built from the same
// logical content are byte-for-byte comparable and iteration is
// deterministic.
type Layout struct {
	entries []Entry
}

// New builds a Layout from a set of group -> blue-count entries, asserting
// the documented invariants: no empty group, no duplicate coords across
// groups, and every blue count within [0, |group|].
func New(entries []Entry) Layout {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Group.Compare(sorted[j].Group) < 0 })

	seen := hexcoord.NewCoordSet()
	for _, e := range sorted {
		if e.Group.IsEmpty() {
			panic("layout: empty coord-group in input layout")
		}
		if e.Blues < 0 || e.Blues > e.Group.Len() {
			panic(fmt.Sprintf("layout: blue count %d out of range for group of size %d", e.Blues, e.Group.Len()))
		}
		for _, c := range e.Group.Items() {
			if seen.Contains(c) {
				panic(fmt.Sprintf("layout: duplicate coords %v across groups", c))
			}
			seen = seen.Insert(c)
		}
	}
	return Layout{entries: sorted}
}

// Entries returns the group -> blue-count pairs in ascending group order.
// The caller must not mutate the returned slice.
func (l Layout) Entries() []Entry { return l.entries }

// Scope returns the union of every group in the layout.
func (l Layout) Scope() hexcoord.CoordSet {
	s := hexcoord.NewCoordSet()
	for _, e := range l.entries {
		s = s.Union(e.Group)
	}
	return s
}

// Get returns the blue count recorded for an exact group, if present.
func (l Layout) Get(group hexcoord.CoordSet) (int, bool) {
	for _, e := range l.entries {
		if e.Group.Equal(group) {
			return e.Blues, true
		}
	}
	return 0, false
}

// SolutionCount returns the product, over every group, of C(|group|, k).
// overflowed reports whether the product overflowed 64 bits, in which case
// count is meaningless.
func (l Layout) SolutionCount() (count uint64, overflowed bool) {
	count = 1
	for _, e := range l.entries {
		c, ok := nChooseK(uint64(e.Group.Len()), uint64(e.Blues))
		if !ok {
			return 0, true
		}
		next, ok := checkedMul(count, c)
		if !ok {
			return 0, true
		}
		count = next
	}
	return count, false
}

// nChooseK computes C(n, k) exactly, reporting false on overflow. Ported
// directly from the original solver's checked-multiplication algorithm;
// no stdlib or pack math/combinatorics library exposes overflow-aware
// binomial coefficients over uint64 (gonum's stat/combin.Binomial returns a
// float64), so this stays hand-rolled.
func nChooseK(n, k uint64) (uint64, bool) {
	if k > n {
		panic("layout: bad call to nChooseK, k > n")
	}
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := uint64(0); i < k; i++ {
		fact := n - i
		quot := i + 1
		next, ok := checkedMul(result, fact)
		if !ok {
			return 0, false
		}
		result = next / quot
	}
	return result, true
}

func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if r/a != b {
		return 0, false
	}
	return r, true
}

// aligned reports whether two Layouts agree on the group that contains
// every coord in their scope intersection.
func aligned(a, b Layout) bool {
	keyOf := map[hexcoord.Coords]hexcoord.CoordSet{}
	for _, e := range a.entries {
		for _, c := range e.Group.Items() {
			keyOf[c] = e.Group
		}
	}
	for _, e := range b.entries {
		for _, c := range e.Group.Items() {
			if otherGroup, ok := keyOf[c]; ok && !otherGroup.Equal(e.Group) {
				return false
			}
		}
	}
	return true
}

// sameKeys reports whether every layout in the slice has the same set of
// group keys.
func sameKeys(layouts []Layout) bool {
	if len(layouts) == 0 {
		return true
	}
	ref := keysOf(layouts[0])
	for _, l := range layouts[1:] {
		if !keysEqual(ref, keysOf(l)) {
			return false
		}
	}
	return true
}

func keysOf(l Layout) []hexcoord.CoordSet {
	out := make([]hexcoord.CoordSet, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Group
	}
	return out
}

func keysEqual(a, b []hexcoord.CoordSet) bool {
	if len(a) != len(b) {
		return false
	}
	sort.Slice(a, func(i, j int) bool { return a[i].Compare(a[j]) < 0 })
	sort.Slice(b, func(i, j int) bool { return b[i].Compare(b[j]) < 0 })
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// AreAligned reports whether every Layout in left has consistent keys,
// every Layout in right has consistent keys, and the (single, if any)
// shape on each side is aligned with the other.
func AreAligned(left, right []Layout) bool {
	if !sameKeys(left) || !sameKeys(right) {
		return false
	}
	if len(left) == 0 || len(right) == 0 {
		return true
	}
	return aligned(left[0], right[0])
}

// Split forks every layout whose groups contain new_key entirely within
// one existing group, so that new_key becomes its own group. At least one
// forked layout is produced per input layout.
func Split(layouts []Layout, newKey hexcoord.CoordSet) []Layout {
	var res []Layout
	for _, lay := range layouts {
		var oldKey hexcoord.CoordSet
		found := false
		for _, e := range lay.entries {
			if e.Group.IsSuperset(newKey) {
				oldKey = e.Group
				found = true
				break
			}
		}
		if !found {
			panic("layout: split called with a key that isn't a subset of any group")
		}
		if oldKey.Equal(newKey) {
			res = append(res, lay)
			continue
		}
		rest := oldKey.Difference(newKey)
		blueCount, _ := lay.Get(oldKey)
		base := withoutGroup(lay.entries, oldKey)
		pushed := 0
		for i := 0; i <= blueCount; i++ {
			j := blueCount - i
			if i > newKey.Len() || j > rest.Len() {
				continue
			}
			entries := append(append([]Entry{}, base...), Entry{Group: newKey, Blues: i}, Entry{Group: rest, Blues: j})
			res = append(res, New(entries))
			pushed++
		}
		if pushed == 0 {
			panic("layout: split produced no layouts, input was inconsistent")
		}
	}
	return res
}

func withoutGroup(entries []Entry, group hexcoord.CoordSet) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Group.Equal(group) {
			out = append(out, e)
		}
	}
	return out
}

// AlignWithKeys forks a single layout so its groups are compatible with
// otherKeys, returning every resulting layout.
func AlignWithKeys(l Layout, otherKeys []hexcoord.CoordSet) []Layout {
	res := []Layout{l}
	for _, myKey := range keysOf(l) {
		for _, theirKey := range otherKeys {
			if myKey.IsDisjoint(theirKey) {
				continue
			}
			inter := myKey.Intersect(theirKey)
			if myKey.Equal(inter) {
				continue
			}
			res = Split(res, inter)
		}
		// myKey may no longer exist in res after a split; recompute the
		// working key set isn't needed since Split only ever narrows
		// groups that still contain myKey's cells.
	}
	return res
}

// Align reshapes two layouts to share group boundaries on their scope
// intersection, returning the reshaped layout lists for each side. If a
// and b are already aligned, both results are a single-element slice.
func Align(a, b Layout) ([]Layout, []Layout) {
	left := AlignWithKeys(a, keysOf(b))
	right := AlignWithKeys(b, keysOf(a))
	if !AreAligned(left, right) {
		panic("layout: align postcondition violated")
	}
	return left, right
}

// Merge cross-products two layouts: for every pair of aligned sub-layouts
// that agree on their shared groups' blue counts, it emits the union of
// their group mappings.
func Merge(a, b Layout) []Layout {
	leftLays, rightLays := Align(a, b)
	leftKeys := keysOf(leftLays[0])
	rightKeys := keysOf(rightLays[0])
	var interKeys []hexcoord.CoordSet
	for _, lk := range leftKeys {
		for _, rk := range rightKeys {
			if lk.Equal(rk) {
				interKeys = append(interKeys, lk)
				break
			}
		}
	}

	var res []Layout
	for _, ll := range leftLays {
		for _, rl := range rightLays {
			agree := true
			for _, k := range interKeys {
				lv, _ := ll.Get(k)
				rv, _ := rl.Get(k)
				if lv != rv {
					agree = false
					break
				}
			}
			if !agree {
				continue
			}
			merged := append([]Entry{}, ll.entries...)
			for _, e := range rl.entries {
				merged = setEntry(merged, e)
			}
			res = append(res, New(merged))
		}
	}
	return res
}

func setEntry(entries []Entry, e Entry) []Entry {
	for i, existing := range entries {
		if existing.Group.Equal(e.Group) {
			entries[i] = e
			return entries
		}
	}
	return append(entries, e)
}
