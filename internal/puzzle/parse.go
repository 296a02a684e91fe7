package puzzle

import (
	"fmt"
	"strings"

	"hexsolver/internal/hexcoord"
	"hexsolver/pkg/constants"
)

// tokenLeft is the lexed value of a data cell's left character.
type tokenLeft int

const (
	leftDot tokenLeft = iota
	leftSmallO
	leftBigO
	leftSmallX
	leftBigX
	leftSlash
	leftBackslash
	leftPipe
)

// tokenRight is the lexed value of a data cell's right character.
type tokenRight int

const (
	rightDot tokenRight = iota
	rightPlus
	rightC
	rightN
)

type charPair struct {
	left, right byte
}

// charGrid splits the 33 data rows into a 33x33 grid of raw two-character
// tokens. Input must be exactly HeaderLines+DataRows lines, trimmed, with
// every data row exactly DataRowWidth characters.
func charGrid(input string) ([constants.DataRows][constants.GridSize]charPair, error) {
	var grid [constants.DataRows][constants.GridSize]charPair

	lines := strings.Split(strings.TrimSpace(input), "\n")
	if len(lines) != constants.TotalInputLines {
		return grid, fmt.Errorf("puzzle: wrong number of lines, got %d, expected %d", len(lines), constants.TotalInputLines)
	}
	dataLines := lines[constants.HeaderLines:]

	for i, line := range dataLines {
		line = strings.TrimSpace(line)
		if len(line) != constants.DataRowWidth {
			return grid, fmt.Errorf("puzzle: row %d has length %d, expected %d", i, len(line), constants.DataRowWidth)
		}
		for j := 0; j < constants.GridSize; j++ {
			grid[i][j] = charPair{left: line[2*j], right: line[2*j+1]}
		}
	}
	return grid, nil
}

func lexLeft(c byte) (tokenLeft, error) {
	switch c {
	case '.':
		return leftDot, nil
	case 'o':
		return leftSmallO, nil
	case 'O':
		return leftBigO, nil
	case 'x':
		return leftSmallX, nil
	case 'X':
		return leftBigX, nil
	case '/':
		return leftSlash, nil
	case '\\':
		return leftBackslash, nil
	case '|':
		return leftPipe, nil
	default:
		return 0, fmt.Errorf("puzzle: unknown left token '%c'", c)
	}
}

func lexRight(c byte) (tokenRight, error) {
	switch c {
	case '.':
		return rightDot, nil
	case '+':
		return rightPlus, nil
	case 'c':
		return rightC, nil
	case 'n':
		return rightN, nil
	default:
		return 0, fmt.Errorf("puzzle: unknown right token '%c'", c)
	}
}

func parseModifier(r tokenRight) Modifier {
	switch r {
	case rightPlus:
		return Anywhere
	case rightC:
		return Together
	case rightN:
		return Separated
	default:
		panic("puzzle: parseModifier called with a non-modifier token")
	}
}

// parseCell is the exhaustive left/right token table that decides a data
// cell's kind. It mirrors the original format's rule that every left token
// pairs with exactly one family of right tokens.
func parseCell(l tokenLeft, r tokenRight) (Cell, error) {
	switch {
	case l == leftDot && r == rightDot:
		return EmptyCell(), nil
	case l == leftDot:
		return Cell{}, fmt.Errorf("puzzle: invalid pair, dot left requires dot right")

	case l == leftSmallO && isModifier(r):
		return Zone6Cell(false, parseModifier(r)), nil
	case l == leftSmallO && r == rightDot:
		return Zone0Cell(false, Black), nil

	case l == leftBigO && isModifier(r):
		return Zone6Cell(true, parseModifier(r)), nil
	case l == leftBigO && r == rightDot:
		return Zone0Cell(true, Black), nil

	case l == leftSmallX && r == rightDot:
		return Zone0Cell(false, Blue), nil
	case l == leftSmallX && r == rightPlus:
		return Zone18Cell(false), nil
	case l == leftSmallX:
		return Cell{}, fmt.Errorf("puzzle: invalid pair, small-x with c/n modifier")

	case l == leftBigX && r == rightDot:
		return Zone0Cell(true, Blue), nil
	case l == leftBigX && r == rightPlus:
		return Zone18Cell(true), nil
	case l == leftBigX:
		return Cell{}, fmt.Errorf("puzzle: invalid pair, big-x with c/n modifier")

	case isLineLeft(l) && r == rightDot:
		return Cell{}, fmt.Errorf("puzzle: invalid pair, line marker requires a modifier")
	case l == leftSlash && isModifier(r):
		return LineCell(BottomLeft, parseModifier(r)), nil
	case l == leftBackslash && isModifier(r):
		return LineCell(BottomRight, parseModifier(r)), nil
	case l == leftPipe && isModifier(r):
		return LineCell(Bottom, parseModifier(r)), nil

	default:
		return Cell{}, fmt.Errorf("puzzle: unreachable token pair")
	}
}

func isModifier(r tokenRight) bool { return r == rightPlus || r == rightC || r == rightN }
func isLineLeft(l tokenLeft) bool  { return l == leftSlash || l == leftBackslash || l == leftPipe }

func cellGrid(chars [constants.DataRows][constants.GridSize]charPair) ([constants.DataRows][constants.GridSize]Cell, error) {
	var cells [constants.DataRows][constants.GridSize]Cell
	for i := range chars {
		for j := range chars[i] {
			l, err := lexLeft(chars[i][j].left)
			if err != nil {
				return cells, err
			}
			r, err := lexRight(chars[i][j].right)
			if err != nil {
				return cells, err
			}
			cell, err := parseCell(l, r)
			if err != nil {
				return cells, err
			}
			cells[i][j] = cell
		}
	}
	return cells, nil
}

// mapCellGrid folds the offset grid into cube coordinates under one of the
// two possible alignments. Non-empty cells whose offset position doesn't
// land exactly on the cube tiling make the whole alignment invalid.
func mapCellGrid(cells [constants.DataRows][constants.GridSize]Cell, iCorrection, jCorrection int) (map[hexcoord.Coords]Cell, error) {
	out := map[hexcoord.Coords]Cell{}
	for i := range cells {
		ii := i + iCorrection
		for j := range cells[i] {
			cell := cells[i][j]
			if cell.Kind == KindEmpty {
				continue
			}
			jj := j + jCorrection

			// q = j, r = (i-j)/2, s = -(i+j)/2, which is only an integer
			// lattice point when i+j is even.
			if (ii+jj)%2 != 0 {
				return nil, fmt.Errorf("puzzle: bad alignment in hexcells definition")
			}
			q := jj
			r := (ii - jj) / 2
			s := -q - r
			coord := hexcoord.New(q, r, s)
			if _, exists := out[coord]; exists {
				return nil, fmt.Errorf("puzzle: two cells mapped to the same coordinate %v", coord)
			}
			out[coord] = cell
		}
	}
	return out, nil
}

// ParseDefn parses the 38-line hexcells level text format, as described at
// https://www.redblobgames.com/grids/hexagons/, into a Defn. Two grid
// alignments are tried in turn; the first that places every occupied cell
// onto the cube-coordinate lattice wins.
func ParseDefn(input string) (Defn, error) {
	chars, err := charGrid(input)
	if err != nil {
		return Defn{}, err
	}
	cells, err := cellGrid(chars)
	if err != nil {
		return Defn{}, err
	}

	var lastErr error
	for _, correction := range [][2]int{{0, 0}, {1, 0}} {
		mapped, err := mapCellGrid(cells, correction[0], correction[1])
		if err == nil {
			return NewDefn(mapped), nil
		}
		lastErr = err
	}
	return Defn{}, fmt.Errorf("puzzle: input grid is incompatible with cube coordinates, the level is made of at least two zones that don't lie on the same hexagon tiling: %w", lastErr)
}
