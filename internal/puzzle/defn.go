package puzzle

import (
	"fmt"
	"sort"

	"hexsolver/internal/hexcoord"
)

// entry is one coordinate -> cell pair within a Defn.
type entry struct {
	Coord hexcoord.Coords
	Cell  Cell
}

// Defn is the parsed board: an ordered coordinate -> Cell mapping, kept
// sorted so iteration is deterministic everywhere it's consumed (constraint
// builders, progress tracking, reporting).
type Defn struct {
	entries []entry
}

// NewDefn builds a Defn from a set of coordinate -> cell pairs, sorted by
// coordinate.
func NewDefn(pairs map[hexcoord.Coords]Cell) Defn {
	entries := make([]entry, 0, len(pairs))
	for c, cell := range pairs {
		entries = append(entries, entry{Coord: c, Cell: cell})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Coord.Less(entries[j].Coord) })
	return Defn{entries: entries}
}

// Get looks up the cell at a coordinate.
func (d Defn) Get(c hexcoord.Coords) (Cell, bool) {
	i := sort.Search(len(d.entries), func(i int) bool { return !d.entries[i].Coord.Less(c) })
	if i < len(d.entries) && d.entries[i].Coord == c {
		return d.entries[i].Cell, true
	}
	return Cell{}, false
}

// Len returns the number of coordinates in the definition.
func (d Defn) Len() int { return len(d.entries) }

// Coords returns every coordinate in ascending order.
func (d Defn) Coords() []hexcoord.Coords {
	out := make([]hexcoord.Coords, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.Coord
	}
	return out
}

// Each calls f for every coordinate/cell pair in ascending coordinate
// order.
func (d Defn) Each(f func(hexcoord.Coords, Cell)) {
	for _, e := range d.entries {
		f(e.Coord, e.Cell)
	}
}

// Scope returns the coordinates of every cell that isn't Empty, Line clue
// cells included.
func (d Defn) Scope() hexcoord.CoordSet {
	items := make([]hexcoord.Coords, 0, len(d.entries))
	for _, e := range d.entries {
		if e.Cell.Kind != KindEmpty {
			items = append(items, e.Coord)
		}
	}
	return hexcoord.NewCoordSet(items...)
}

// String renders the definition's shape for diagnostics, never for parsing
// round-trips.
func (d Defn) String() string {
	return fmt.Sprintf("Defn{%d cells}", len(d.entries))
}
