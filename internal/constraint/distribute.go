// Package constraint builds multiverse.Multiverse values out of a single
// clue's neighbourhood: the zone6/zone18/line/global_blue_count builders
// decide a clue's scope and blue count from the board, and the distribute*
// helpers turn "exactly k blues among these cells, arranged like so" into
// the layouts that encode every arrangement.
package constraint

import (
	"gonum.org/v1/gonum/stat/combin"

	"hexsolver/internal/hexcoord"
	"hexsolver/internal/layout"
	"hexsolver/internal/multiverse"
)

// distributeAnywhere is the constructor shared by Zone6 Anywhere, Line
// Anywhere and Zone18: a single layout saying exactly blueCount cells out
// of the scope are blue, with no further shape constraint.
func distributeAnywhere(scope []hexcoord.Coords, blueCount int) multiverse.Multiverse {
	if len(scope) == 0 {
		return multiverse.Empty()
	}
	scopeSet := hexcoord.NewCoordSet(scope...)
	l := layout.New([]layout.Entry{{Group: scopeSet, Blues: blueCount}})
	return multiverse.New(scopeSet, []layout.Layout{l})
}

// distributeTogether builds one layout per contiguous run of blueCount
// cells within scope, in scope's given order (the caller is responsible
// for scope being presented in walk order, e.g. along a Line). The
// degenerate blueCount==0 and blueCount==len(scope) cases collapse to a
// single layout to avoid emitting duplicate, noise-only layouts.
func distributeTogether(scope []hexcoord.Coords, blueCount int) multiverse.Multiverse {
	scopeSet := hexcoord.NewCoordSet(scope...)

	solutionCount := len(scope) - blueCount + 1
	if blueCount == 0 || blueCount == len(scope) {
		solutionCount = 1
	}

	var layouts []layout.Layout
	for start := 0; start < solutionCount; start++ {
		blues := make([]hexcoord.Coords, 0, blueCount)
		for i := start; i < start+blueCount; i++ {
			blues = append(blues, scope[i])
		}
		bluesSet := hexcoord.NewCoordSet(blues...)
		blacksSet := scopeSet.Difference(bluesSet)

		var entries []layout.Entry
		if !bluesSet.IsEmpty() {
			entries = append(entries, layout.Entry{Group: bluesSet, Blues: blueCount})
		}
		if !blacksSet.IsEmpty() {
			entries = append(entries, layout.Entry{Group: blacksSet, Blues: 0})
		}
		layouts = append(layouts, layout.New(entries))
	}
	return multiverse.New(scopeSet, layouts)
}

// distributeSeparated builds layouts for a "no two blues adjacent in scope
// order" clue by picking a pivot cell guaranteed to stay black and
// distributing the remaining blues to either side of it. This is the one
// constructor that produces layouts with overlapping solutions: two
// different pivots can describe the same actual arrangement, so the
// resulting Multiverse over-counts its solution bound. That slack is an
// accepted, documented approximation rather than a bug.
func distributeSeparated(scope []hexcoord.Coords, blueCount int) multiverse.Multiverse {
	scopeSet := hexcoord.NewCoordSet(scope...)
	pivotPositionCount := len(scope) - 2

	var layouts []layout.Layout
	for ipivot := 1; ipivot < 1+pivotPositionCount; ipivot++ {
		before := scope[:ipivot]
		pivot := scope[ipivot]
		after := scope[ipivot+1:]

		for i := 1; i < blueCount; i++ {
			j := blueCount - i
			if i > len(before) || j > len(after) {
				continue
			}
			entries := []layout.Entry{
				{Group: hexcoord.NewCoordSet(before...), Blues: i},
				{Group: hexcoord.NewCoordSet(pivot), Blues: 0},
				{Group: hexcoord.NewCoordSet(after...), Blues: j},
			}
			layouts = append(layouts, layout.New(entries))
		}
	}
	return multiverse.New(scopeSet, layouts)
}

// hasCompatibleContiguity decides whether a blue/black split of ring
// indices 0..5 matches the requested together/separated shape. A color is
// "grouped together" when its highest and lowest index span exactly its
// own count minus one. When only one color is grouped that way, the other
// color wraps around index 0 and is still grouped together on the ring;
// when neither is, both colors are split on the ring.
func hasCompatibleContiguity(blues, blacks []int, together bool) bool {
	bluesTogether := blues[len(blues)-1]-blues[0] == len(blues)-1
	blacksTogether := blacks[len(blacks)-1]-blacks[0] == len(blacks)-1

	switch {
	case bluesTogether && blacksTogether:
		return together
	case bluesTogether && !blacksTogether:
		return together
	case !bluesTogether && blacksTogether:
		return together
	default:
		return !together
	}
}

// ringSlot is one of the six neighbours of a Zone6 clue, tagged with
// whether it's a gap: a neighbour cell that is off the edge of the board
// or carries no color at all, and so can never be blue.
type ringSlot struct {
	Coord hexcoord.Coords
	Gap   bool
}

// distributeInRing is the constructor for Zone6 Together and Zone6
// Separated: it enumerates every 6-choose-blueCount subset of ring
// positions via gonum's combinatorics, discards the ones that assign a
// blue to a gap or don't match the requested contiguity shape, and emits
// one layout per survivor.
func distributeInRing(slots [6]ringSlot, blueCount int, together bool) multiverse.Multiverse {
	if !together && blueCount < 2 {
		panic("constraint: distributeInRing called with separated and fewer than 2 blues")
	}
	if together {
		var scope []hexcoord.Coords
		for _, s := range slots {
			if !s.Gap {
				scope = append(scope, s.Coord)
			}
		}
		if blueCount <= 1 || blueCount == len(scope) {
			return distributeAnywhere(scope, blueCount)
		}
	}

	var scope []hexcoord.Coords
	for _, s := range slots {
		if !s.Gap {
			scope = append(scope, s.Coord)
		}
	}
	scopeSet := hexcoord.NewCoordSet(scope...)

	var layouts []layout.Layout
	for _, blueIdxs := range combin.Combinations(6, blueCount) {
		gapIsBlue := false
		for _, i := range blueIdxs {
			if slots[i].Gap {
				gapIsBlue = true
				break
			}
		}
		if gapIsBlue {
			continue
		}

		blackIdxs := complement(blueIdxs, 6)
		if !hasCompatibleContiguity(blueIdxs, blackIdxs, together) {
			continue
		}

		blues := make([]hexcoord.Coords, 0, len(blueIdxs))
		for _, i := range blueIdxs {
			blues = append(blues, slots[i].Coord)
		}
		var blacks []hexcoord.Coords
		for _, i := range blackIdxs {
			if !slots[i].Gap {
				blacks = append(blacks, slots[i].Coord)
			}
		}

		entries := []layout.Entry{{Group: hexcoord.NewCoordSet(blues...), Blues: blueCount}}
		if len(blacks) > 0 {
			entries = append(entries, layout.Entry{Group: hexcoord.NewCoordSet(blacks...), Blues: 0})
		}
		layouts = append(layouts, layout.New(entries))
	}
	if len(layouts) == 0 {
		panic("constraint: distributeInRing produced no layouts")
	}
	return multiverse.New(scopeSet, layouts)
}

// complement returns the ascending indices in [0, n) not present in idxs.
func complement(idxs []int, n int) []int {
	in := make([]bool, n)
	for _, i := range idxs {
		in[i] = true
	}
	out := make([]int, 0, n-len(idxs))
	for i := 0; i < n; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}
