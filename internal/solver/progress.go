package solver

import (
	"hexsolver/internal/hexcoord"
	"hexsolver/internal/puzzle"
)

// Progress is the solver's running picture of the board: every coloured
// cell, split into the ones still unknown and the ones whose color is
// known, either revealed from the start or settled since.
type Progress struct {
	Blues    hexcoord.CoordSet
	Blacks   hexcoord.CoordSet
	Unknowns hexcoord.CoordSet
}

// ProgressOfDefn seeds a Progress from a parsed board: revealed coloured
// cells start in Blues/Blacks, everything else that carries a color at all
// (plain tiles, Zone6, Zone18) starts in Unknowns. Line cells and Empty
// cells have no color and never appear in Progress.
func ProgressOfDefn(defn puzzle.Defn) Progress {
	var blues, blacks, unknowns []hexcoord.Coords
	defn.Each(func(c hexcoord.Coords, cell puzzle.Cell) {
		switch cell.Kind {
		case puzzle.KindEmpty, puzzle.KindLine:
			return
		case puzzle.KindZone0:
			addCell(&blues, &blacks, &unknowns, c, cell.Revealed, cell.Color)
		case puzzle.KindZone6:
			addCell(&blues, &blacks, &unknowns, c, cell.Revealed, puzzle.Black)
		case puzzle.KindZone18:
			addCell(&blues, &blacks, &unknowns, c, cell.Revealed, puzzle.Blue)
		}
	})
	return Progress{
		Blues:    hexcoord.NewCoordSet(blues...),
		Blacks:   hexcoord.NewCoordSet(blacks...),
		Unknowns: hexcoord.NewCoordSet(unknowns...),
	}
}

func addCell(blues, blacks, unknowns *[]hexcoord.Coords, c hexcoord.Coords, revealed bool, color puzzle.Color) {
	if !revealed {
		*unknowns = append(*unknowns, c)
		return
	}
	if color == puzzle.Blue {
		*blues = append(*blues, c)
	} else {
		*blacks = append(*blacks, c)
	}
}

// IsSolved reports whether every cell's color is known.
func (p Progress) IsSolved() bool { return p.Unknowns.IsEmpty() }

// Update folds a batch of newly-learned colors into the progress,
// removing each from Unknowns and adding it to the matching color set.
func (p Progress) Update(findings map[hexcoord.Coords]puzzle.Color) Progress {
	unknowns := p.Unknowns
	blues := p.Blues
	blacks := p.Blacks
	for c, color := range findings {
		unknowns = hexcoord.NewCoordSet(removeCoord(unknowns.Items(), c)...)
		if color == puzzle.Blue {
			blues = blues.Insert(c)
		} else {
			blacks = blacks.Insert(c)
		}
	}
	return Progress{Blues: blues, Blacks: blacks, Unknowns: unknowns}
}

func removeCoord(items []hexcoord.Coords, target hexcoord.Coords) []hexcoord.Coords {
	out := make([]hexcoord.Coords, 0, len(items))
	for _, c := range items {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}
