package solver

import (
	"fmt"
	"sort"

	"hexsolver/internal/constraint"
	"hexsolver/internal/hexcoord"
	"hexsolver/internal/multiverse"
	"hexsolver/internal/puzzle"
)

// uniqueCoords is a sentinel coordinate, well outside any real board, used
// as the key for the whole-board global blue-count constraint.
var uniqueCoords = hexcoord.New(999, 0, -999)

// Constraints tracks every clue's Multiverse, split into hidden (the clue
// cell itself hasn't been revealed yet, so the constraint can't be used)
// and visible (revealed, and available to narrow). Exhausted records
// clues whose Multiverse has collapsed to Empty: fully accounted for, with
// nothing left to learn from them.
type Constraints struct {
	Defn      puzzle.Defn
	Hidden    map[hexcoord.Coords]multiverse.Multiverse
	Visible   map[hexcoord.Coords]multiverse.Multiverse
	Exhausted hexcoord.CoordSet
}

// ConstraintsOfDefn builds the initial Constraints for a board: Line
// clues start visible (their own cell is always shown), Zone6/Zone18
// clues start hidden until their cell is revealed, and the whole-board
// global constraint is always visible under uniqueCoords.
func ConstraintsOfDefn(defn puzzle.Defn) Constraints {
	hidden := map[hexcoord.Coords]multiverse.Multiverse{}
	visible := map[hexcoord.Coords]multiverse.Multiverse{}

	defn.Each(func(c hexcoord.Coords, cell puzzle.Cell) {
		switch cell.Kind {
		case puzzle.KindEmpty, puzzle.KindZone0:
			return
		case puzzle.KindLine:
			visible[c] = constraint.Line(defn, c, cell.Orientation, cell.Modifier)
		case puzzle.KindZone6:
			hidden[c] = constraint.Zone6(defn, c, cell.Modifier)
		case puzzle.KindZone18:
			hidden[c] = constraint.Zone18(defn, c)
		}
	})
	visible[uniqueCoords] = constraint.GlobalBlueCount(defn)

	return Constraints{Defn: defn, Hidden: hidden, Visible: visible, Exhausted: hexcoord.NewCoordSet()}
}

// record inserts coord/color into invariants, asserting that it agrees with
// any color already recorded for coord and with the cell's true color in
// the puzzle definition. A disagreement here means the solver itself
// miscalculated, which is a programmer error, not a puzzle that failed to
// solve, so it panics rather than returning it as an error.
func (c *Constraints) record(invariants map[hexcoord.Coords]puzzle.Color, coord hexcoord.Coords, color puzzle.Color) {
	if existing, ok := invariants[coord]; ok && existing != color {
		panic(fmt.Sprintf("solver: invariant disagreement at %v: %v vs %v", coord, existing, color))
	}
	invariants[coord] = color
	cell, ok := c.Defn.Get(coord)
	if !ok {
		panic(fmt.Sprintf("solver: invariant at %v but the cell is not in the puzzle definition", coord))
	}
	trueColor, ok := puzzle.ColorOf(cell)
	if !ok || trueColor != color {
		panic(fmt.Sprintf("solver: invariant color %v at %v disagrees with the puzzle's true cell color", color, coord))
	}
}

func sortedKeys(m map[hexcoord.Coords]multiverse.Multiverse) []hexcoord.Coords {
	keys := make([]hexcoord.Coords, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Reveal moves every hidden constraint whose home cell is now visible into
// the visible map.
func (c *Constraints) Reveal(visibleCells hexcoord.CoordSet) {
	for _, k := range sortedKeys(c.Hidden) {
		if visibleCells.Contains(k) {
			c.Visible[k] = c.Hidden[k]
			delete(c.Hidden, k)
		}
	}
}

// Narrow feeds every cell whose color progress has already settled into
// the visible constraints whose scope contains it.
func (c *Constraints) Narrow(visibleCells hexcoord.CoordSet, progress Progress) {
	for _, k := range sortedKeys(c.Visible) {
		mv := c.Visible[k]
		inter := mv.Scope.Intersect(visibleCells)
		if inter.IsEmpty() {
			continue
		}
		for _, coord := range inter.Intersect(progress.Blues).Items() {
			mv = multiverse.Learn(mv, coord, puzzle.Blue)
		}
		for _, coord := range inter.Intersect(progress.Blacks).Items() {
			mv = multiverse.Learn(mv, coord, puzzle.Black)
		}
		c.Visible[k] = mv
	}
}

// GC drops every visible constraint that has collapsed to Empty (fully
// accounted for) into Exhausted. A Stuck constraint means the board
// definition itself is contradictory, which should never happen for a
// well-formed puzzle, so it's treated as a fatal error.
func (c *Constraints) GC() {
	for _, k := range sortedKeys(c.Visible) {
		switch c.Visible[k].State() {
		case multiverse.Running:
			// still in play
		case multiverse.Stuck:
			panic("solver: the grid is bugged and has no solutions")
		case multiverse.Empty:
			delete(c.Visible, k)
			c.Exhausted = c.Exhausted.Insert(k)
		}
	}
}

// IsSolved reports whether every constraint has been exhausted.
func (c *Constraints) IsSolved() bool {
	return len(c.Visible) == 0 && len(c.Hidden) == 0
}

// TrivialInvariants is Tier 1: any coordinate whose color every visible
// constraint agrees on, looking at each constraint in isolation.
func (c *Constraints) TrivialInvariants() map[hexcoord.Coords]puzzle.Color {
	invariants := map[hexcoord.Coords]puzzle.Color{}
	for _, k := range sortedKeys(c.Visible) {
		for coord, color := range c.Visible[k].Invariants() {
			c.record(invariants, coord, color)
		}
	}
	return invariants
}

// constraintGroup is one node of the merge-tree compound_invariants walks:
// the set of clue-coordinates whose constraints have been folded together,
// and the resulting Multiverse.
type constraintGroup struct {
	Keys hexcoord.CoordSet
	MV   multiverse.Multiverse
}

func findGroup(groups []constraintGroup, keys hexcoord.CoordSet) (int, bool) {
	for i, g := range groups {
		if g.Keys.Equal(keys) {
			return i, true
		}
	}
	return -1, false
}

// CompoundInvariants is Tier 2: it builds an adjacency graph of visible
// constraints (excluding the global one, which is handled separately to
// avoid combinatorial blowup) that share at least one coordinate, then
// repeatedly grows every group by one neighbouring constraint until an
// invariant turns up or the graph is exhausted. Difficulty grows with how
// many rounds of merging were needed.
func (c *Constraints) CompoundInvariants(env *Env) (map[hexcoord.Coords]puzzle.Color, Difficulty, error) {
	invariants := map[hexcoord.Coords]puzzle.Color{}
	difficulty := 2

	keys := sortedKeys(c.Visible)
	localKeys := make([]hexcoord.Coords, 0, len(keys))
	for _, k := range keys {
		if k != uniqueCoords {
			localKeys = append(localKeys, k)
		}
	}

	connections := map[hexcoord.Coords]hexcoord.CoordSet{}
	for _, k := range localKeys {
		connections[k] = hexcoord.NewCoordSet()
	}
	for i := 0; i < len(localKeys); i++ {
		for j := i + 1; j < len(localKeys); j++ {
			k0, k1 := localKeys[i], localKeys[j]
			if !c.Visible[k0].Scope.IsDisjoint(c.Visible[k1].Scope) {
				connections[k0] = connections[k0].Insert(k1)
				connections[k1] = connections[k1].Insert(k0)
			}
		}
	}

	var groups []constraintGroup
	for _, k := range localKeys {
		groups = append(groups, constraintGroup{Keys: hexcoord.NewCoordSet(k), MV: c.Visible[k]})
	}
	if len(groups) == 0 {
		return invariants, Difficulty{Kind: DifficultyLocal, Value: difficulty}, nil
	}

	for {
		var nextGroups []constraintGroup
		for _, g := range groups {
			if err := env.CheckTimeout(); err != nil {
				return nil, Difficulty{}, err
			}
			neighbors := hexcoord.NewCoordSet()
			for _, k := range g.Keys.Items() {
				neighbors = neighbors.Union(connections[k])
			}
			neighbors = neighbors.Difference(g.Keys)

			for _, kNew := range neighbors.Items() {
				ksetNew := g.Keys.Insert(kNew)
				if _, found := findGroup(nextGroups, ksetNew); found {
					continue
				}
				if _, found := findGroup(groups, ksetNew); found {
					continue
				}
				merged := multiverse.Merge(g.MV, c.Visible[kNew])
				nextGroups = append(nextGroups, constraintGroup{Keys: ksetNew, MV: merged})
			}
		}
		groups = nextGroups

		for _, g := range groups {
			for coord, color := range g.MV.Invariants() {
				c.record(invariants, coord, color)
			}
		}
		if len(invariants) > 0 {
			break
		}
		if len(groups) == 0 {
			break
		}
		difficulty++
	}
	return invariants, Difficulty{Kind: DifficultyLocal, Value: difficulty}, nil
}

// GlobalInvariants is Tier 3: it folds every visible constraint (including
// the global blue-count one) into a single Multiverse and looks for
// invariants there. The global constraint is folded in first since that
// ordering keeps the intermediate Multiverse's layout count from
// exploding as early as possible.
func (c *Constraints) GlobalInvariants(env *Env) (map[hexcoord.Coords]puzzle.Color, error) {
	invariants := map[hexcoord.Coords]puzzle.Color{}
	keys := sortedKeys(c.Visible)

	mv := multiverse.Empty()
	for i := len(keys) - 1; i >= 0; i-- {
		if err := env.CheckTimeout(); err != nil {
			return nil, err
		}
		mv = multiverse.Merge(mv, c.Visible[keys[i]])
	}
	for coord, color := range mv.Invariants() {
		c.record(invariants, coord, color)
	}
	return invariants, nil
}
