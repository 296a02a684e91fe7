package constants

import "time"

// Grid constants. A hexcells level definition is always a 33x33 grid of
// offset positions, of which only the ones that land on the cube-coordinate
// tiling are occupied.
const (
	GridSize        = 33
	HeaderLines     = 5
	DataRows        = 33
	DataRowWidth    = 66
	TotalInputLines = HeaderLines + DataRows
)

// Neighbourhood sizes for the two ring-shaped numeric clues.
const (
	RingSize6  = 6
	RingSize18 = 18
)

// Line clues walk in a straight diagonal away from their home cell; this
// bounds how far a walk is followed before giving up (one full grid
// traversal is always enough).
const MaxLineWalkSteps = GridSize

// Solver limits
const (
	MaxSolverSteps     = 10000
	SolutionCountLimit = 2
)

// Difficulty tiers, named after how far the solver had to reach to make
// progress: a local invariant is found within a single clue or a small
// merged neighbourhood, a global one needs the whole board folded together.
const (
	TierLocal  = "local"
	TierGlobal = "global"
)

// Outcome classifications for a solve attempt.
const (
	OutcomeSolved     = "solved"
	OutcomeUnsolvable = "unsolvable"
	OutcomeTimeout    = "timeout"
)

// API version
const APIVersion = "0.1.0"

// Default ports and timeouts
const (
	DefaultPort         = "8080"
	DefaultSolveTimeout = 30 * time.Second
	DefaultBatchTimeout = 20 * time.Minute
	DefaultCacheDir     = "/data/hexsolver-cache"
)

// Date format
const DateFormat = "2006-01-02"
