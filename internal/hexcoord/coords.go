// Package hexcoord implements cube coordinates for a flat-top hexagon
// tiling, following https://www.redblobgames.com/grids/hexagons/.
package hexcoord

import "fmt"

// Coords is an immutable cube coordinate. The q+r+s=0 relation is an
// invariant of every instance; New panics if it doesn't hold.
type Coords struct {
	Q, R, S int
}

// New builds a Coords, panicking if q+r+s != 0.
func New(q, r, s int) Coords {
	if q+r+s != 0 {
		panic(fmt.Sprintf("hexcoord: invalid coords q=%d r=%d s=%d (q+r+s != 0)", q, r, s))
	}
	return Coords{Q: q, R: r, S: s}
}

// Add returns the componentwise sum.
func (c Coords) Add(other Coords) Coords {
	return New(c.Q+other.Q, c.R+other.R, c.S+other.S)
}

// Sub returns the componentwise difference.
func (c Coords) Sub(other Coords) Coords {
	return New(c.Q-other.Q, c.R-other.R, c.S-other.S)
}

// Less gives the lexicographic (Q, R, S) order used everywhere in this
// module to make iteration over sets of coordinates deterministic.
func (c Coords) Less(other Coords) bool {
	if c.Q != other.Q {
		return c.Q < other.Q
	}
	if c.R != other.R {
		return c.R < other.R
	}
	return c.S < other.S
}

// Compare returns -1, 0 or 1, mirroring the lexicographic order of Less.
func (c Coords) Compare(other Coords) int {
	switch {
	case c.Less(other):
		return -1
	case other.Less(c):
		return 1
	default:
		return 0
	}
}

// Neighbors6 returns the 6 direct neighbors, clockwise starting from the
// top.
func (c Coords) Neighbors6() [6]Coords {
	q, r, s := c.Q, c.R, c.S
	return [6]Coords{
		New(q+0, r-1, s+1), // top
		New(q+1, r-1, s+0), // top-right
		New(q+1, r+0, s-1), // bottom-right
		New(q+0, r+1, s-1), // bottom
		New(q-1, r+1, s+0), // bottom-left
		New(q-1, r+0, s+1), // top-left
	}
}

// Neighbors18 returns the 6-ring followed by the outer 12-ring, in a fixed
// but otherwise unspecified order.
func (c Coords) Neighbors18() [18]Coords {
	q, r, s := c.Q, c.R, c.S
	return [18]Coords{
		New(q+0, r-1, s+1),
		New(q+1, r-1, s+0),
		New(q+1, r+0, s-1),
		New(q+0, r+1, s-1),
		New(q-1, r+1, s+0),
		New(q-1, r+0, s+1),
		New(q+0, r-2, s+2),
		New(q+1, r-2, s+1),
		New(q+2, r-2, s+0),
		New(q+2, r-1, s-1),
		New(q+2, r+0, s-2),
		New(q+1, r+1, s-2),
		New(q+0, r+2, s-2),
		New(q-1, r+2, s-1),
		New(q-2, r+2, s+0),
		New(q-2, r+1, s+1),
		New(q-2, r+0, s+2),
		New(q-1, r-1, s+2),
	}
}

func (c Coords) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.Q, c.R, c.S)
}
