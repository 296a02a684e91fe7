package constraint

import (
	"hexsolver/internal/hexcoord"
	"hexsolver/internal/multiverse"
	"hexsolver/internal/puzzle"
	"hexsolver/pkg/constants"
)

// colorAt looks up a coordinate's color if it has one at all: absent
// coordinates and cells with no color of their own (Empty, Line) both
// report ok=false.
func colorAt(defn puzzle.Defn, c hexcoord.Coords) (puzzle.Color, bool) {
	cell, ok := defn.Get(c)
	if !ok {
		return 0, false
	}
	return puzzle.ColorOf(cell)
}

// Zone6 builds the Multiverse for a 6-neighbour numeric clue centered on
// coords. Neighbours with no color of their own are gaps: they can never
// be blue, and under Anywhere they're dropped from the scope entirely.
func Zone6(defn puzzle.Defn, coords hexcoord.Coords, modifier puzzle.Modifier) multiverse.Multiverse {
	neighbors := coords.Neighbors6()
	var slots [constants.RingSize6]ringSlot
	blueCount := 0
	for i, c := range neighbors {
		color, ok := colorAt(defn, c)
		if !ok {
			slots[i] = ringSlot{Coord: c, Gap: true}
			continue
		}
		slots[i] = ringSlot{Coord: c, Gap: false}
		if color == puzzle.Blue {
			blueCount++
		}
	}

	switch modifier {
	case puzzle.Anywhere:
		var scope []hexcoord.Coords
		for _, s := range slots {
			if !s.Gap {
				scope = append(scope, s.Coord)
			}
		}
		return distributeAnywhere(scope, blueCount)
	case puzzle.Together:
		return distributeInRing(slots, blueCount, true)
	case puzzle.Separated:
		return distributeInRing(slots, blueCount, false)
	default:
		panic("constraint: unknown modifier for Zone6")
	}
}

// Zone18 builds the Multiverse for an 18-neighbour numeric clue, which is
// always Anywhere.
func Zone18(defn puzzle.Defn, coords hexcoord.Coords) multiverse.Multiverse {
	var scope []hexcoord.Coords
	blueCount := 0
	for _, c := range coords.Neighbors18() {
		color, ok := colorAt(defn, c)
		if !ok {
			continue
		}
		scope = append(scope, c)
		if color == puzzle.Blue {
			blueCount++
		}
	}
	return distributeAnywhere(scope, blueCount)
}

// Line builds the Multiverse for a diagonal numeric clue, walking away
// from coords in the direction orientation names for MaxLineWalkSteps
// steps and collecting every coloured cell on the way; cells with no color
// are skipped without ending the walk.
func Line(defn puzzle.Defn, coords hexcoord.Coords, orientation puzzle.Orientation, modifier puzzle.Modifier) multiverse.Multiverse {
	delta := orientation.Delta()
	var scope []hexcoord.Coords
	blueCount := 0
	cur := coords
	for i := 0; i < constants.MaxLineWalkSteps; i++ {
		color, ok := colorAt(defn, cur)
		if ok {
			scope = append(scope, cur)
			if color == puzzle.Blue {
				blueCount++
			}
		}
		cur = cur.Add(delta)
	}

	switch modifier {
	case puzzle.Anywhere:
		return distributeAnywhere(scope, blueCount)
	case puzzle.Together:
		return distributeTogether(scope, blueCount)
	case puzzle.Separated:
		return distributeSeparated(scope, blueCount)
	default:
		panic("constraint: unknown modifier for Line")
	}
}

// GlobalBlueCount builds the whole-board clue: the total blue count over
// every coloured cell in the definition.
func GlobalBlueCount(defn puzzle.Defn) multiverse.Multiverse {
	var scope []hexcoord.Coords
	blueCount := 0
	defn.Each(func(c hexcoord.Coords, cell puzzle.Cell) {
		color, ok := puzzle.ColorOf(cell)
		if !ok {
			return
		}
		scope = append(scope, c)
		if color == puzzle.Blue {
			blueCount++
		}
	})
	return distributeAnywhere(scope, blueCount)
}
