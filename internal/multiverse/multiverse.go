// Package multiverse implements the Multiverse state machine: a
// disjunction of layout.Layout possibilities over a shared scope of
// coordinates, plus the invariants/merge/learn operations over it.
package multiverse

import (
	"fmt"

	"hexsolver/internal/hexcoord"
	"hexsolver/internal/layout"
	"hexsolver/internal/puzzle"
)

// State classifies a Multiverse: Empty is the identity value (no scope, no
// constraints), Running has a scope and at least one layout, and Stuck has
// no possibilities left at all, meaning the puzzle definition it came from
// is contradictory.
type State int

const (
	Running State = iota
	Stuck
	Empty
)

// Multiverse is a disjunction of Layouts sharing a common scope: every
// Layout in Layouts is one candidate assignment of blue-counts to the
// groups that partition Scope.
type Multiverse struct {
	Scope   hexcoord.CoordSet
	Layouts []layout.Layout
}

// New builds a Multiverse, asserting that every layout's own scope equals
// the given scope exactly.
func New(scope hexcoord.CoordSet, layouts []layout.Layout) Multiverse {
	for _, l := range layouts {
		if !l.Scope().Equal(scope) {
			panic(fmt.Sprintf("multiverse: layout scope %v does not match multiverse scope %v", l.Scope(), scope))
		}
	}
	return Multiverse{Scope: scope, Layouts: layouts}
}

// Empty returns the identity Multiverse: empty scope, no layouts.
func Empty() Multiverse {
	return Multiverse{Scope: hexcoord.NewCoordSet(), Layouts: nil}
}

// State classifies the Multiverse per the State constants above.
func (m Multiverse) State() State {
	if m.Scope.IsEmpty() {
		if len(m.Layouts) != 0 {
			panic("multiverse: corrupted multiverse, empty scope with non-empty layouts")
		}
		return Empty
	}
	if len(m.Layouts) == 0 {
		return Stuck
	}
	return Running
}

// SolutionCountUpperBound sums every layout's solution count, saturating at
// the maximum uint64 value on overflow rather than wrapping. It is an upper
// bound, not an exact count: an arrangement described by several
// overlapping layouts is counted once per layout.
func (m Multiverse) SolutionCountUpperBound() uint64 {
	var total uint64
	for _, l := range m.Layouts {
		count, overflowed := l.SolutionCount()
		if overflowed {
			return ^uint64(0)
		}
		next := total + count
		if next < total {
			return ^uint64(0)
		}
		total = next
	}
	return total
}

// Invariants finds every coordinate in Scope whose color is the same
// across all Layouts: blue in every layout, or black in every layout. Each
// layout is judged independently by its own group containing the
// coordinate (k==0 means black-for-sure in that layout, k==|G| means
// blue-for-sure, anything else is ambiguous); two layouts are never
// compared against each other's group shape, since different layouts
// routinely partition the same scope into different groups (Merge,
// Separated) and a coordinate can still be forced to the same color by
// every one of them despite that.
func (m Multiverse) Invariants() map[hexcoord.Coords]puzzle.Color {
	found := map[hexcoord.Coords]puzzle.Color{}
	if m.State() != Running {
		return found
	}
	for _, coord := range m.Scope.Items() {
		allBlue := true
		allBlack := true
		for _, l := range m.Layouts {
			g, b, ok := groupContaining(l, coord)
			if !ok {
				allBlue, allBlack = false, false
				break
			}
			if b == g.Len() {
				allBlack = false
			} else if b == 0 {
				allBlue = false
			} else {
				allBlue, allBlack = false, false
			}
			if !allBlue && !allBlack {
				break
			}
		}
		switch {
		case allBlue:
			found[coord] = puzzle.Blue
		case allBlack:
			found[coord] = puzzle.Black
		}
	}
	return found
}

func groupContaining(l layout.Layout, coord hexcoord.Coords) (hexcoord.CoordSet, int, bool) {
	for _, e := range l.Entries() {
		if e.Group.Contains(coord) {
			return e.Group, e.Blues, true
		}
	}
	return hexcoord.CoordSet{}, 0, false
}

// Merge combines two Multiverses into one over the union of their scopes.
// Empty is the identity element; a Stuck input propagates to a Stuck
// result; otherwise every pair of layouts is cross-merged via layout.Merge,
// keeping only the combinations that agree on shared groups.
func Merge(a, b Multiverse) Multiverse {
	if a.State() == Empty {
		return b
	}
	if b.State() == Empty {
		return a
	}
	if a.State() == Stuck || b.State() == Stuck {
		return Multiverse{Scope: a.Scope.Union(b.Scope), Layouts: nil}
	}
	scope := a.Scope.Union(b.Scope)
	var merged []layout.Layout
	for _, la := range a.Layouts {
		for _, lb := range b.Layouts {
			merged = append(merged, layout.Merge(la, lb)...)
		}
	}
	return Multiverse{Scope: scope, Layouts: merged}
}

// Learn narrows the Multiverse by fixing one coordinate's color. If the
// coordinate is the entire scope, the result collapses to Empty (nothing
// left to track). Otherwise every layout is split on the singleton group
// {coords}, filtered to the layouts agreeing with the learned color, and
// that now-settled group is dropped from the surviving layouts' scope.
func Learn(m Multiverse, coord hexcoord.Coords, color puzzle.Color) Multiverse {
	if m.Scope.Len() == 1 {
		if !m.Scope.Contains(coord) {
			panic("multiverse: learn called with a coordinate outside the singleton scope")
		}
		return Empty()
	}
	key := hexcoord.NewCoordSet(coord)
	split := layout.Split(m.Layouts, key)

	wantBlues := 0
	if color == puzzle.Blue {
		wantBlues = 1
	}

	newScope := m.Scope.Difference(key)
	var survivors []layout.Layout
	for _, l := range split {
		blues, ok := l.Get(key)
		if !ok || blues != wantBlues {
			continue
		}
		var entries []layout.Entry
		for _, e := range l.Entries() {
			if e.Group.Equal(key) {
				continue
			}
			entries = append(entries, e)
		}
		survivors = append(survivors, layout.New(entries))
	}
	return Multiverse{Scope: newScope, Layouts: survivors}
}
