package constraint

import (
	"testing"

	"gonum.org/v1/gonum/stat/combin"

	"hexsolver/internal/hexcoord"
	"hexsolver/internal/multiverse"
)

func nk(n, k int) uint64 {
	return uint64(combin.Binomial(n, k))
}

func mockZone6Anywhere(center hexcoord.Coords, blueCount int) multiverse.Multiverse {
	n := center.Neighbors6()
	return distributeAnywhere(n[:], blueCount)
}

func mockLineTogether(topmost hexcoord.Coords, cellCount, blueCount int) multiverse.Multiverse {
	scope := walkBottom(topmost, cellCount)
	return distributeTogether(scope, blueCount)
}

func mockLineSeparated(topmost hexcoord.Coords, cellCount, blueCount int) multiverse.Multiverse {
	scope := walkBottom(topmost, cellCount)
	return distributeSeparated(scope, blueCount)
}

func walkBottom(topmost hexcoord.Coords, cellCount int) []hexcoord.Coords {
	scope := make([]hexcoord.Coords, 0, cellCount)
	for i := 0; i < cellCount; i++ {
		scope = append(scope, hexcoord.New(topmost.Q, topmost.R+i, topmost.S-i))
	}
	return scope
}

func mockRingTogether(center hexcoord.Coords, blueCount int) multiverse.Multiverse {
	return ringFromNeighbors(center, blueCount, true)
}

func mockRingSeparated(center hexcoord.Coords, blueCount int) multiverse.Multiverse {
	return ringFromNeighbors(center, blueCount, false)
}

func ringFromNeighbors(center hexcoord.Coords, blueCount int, together bool) multiverse.Multiverse {
	n := center.Neighbors6()
	var slots [6]ringSlot
	for i, c := range n {
		slots[i] = ringSlot{Coord: c, Gap: false}
	}
	return distributeInRing(slots, blueCount, together)
}

func testTwoZone6HorizontalNeighbors(t *testing.T, blueLeft, blueRight, invariantCount int, solutionCount uint64) {
	t.Helper()
	mv0 := mockZone6Anywhere(hexcoord.New(0, 0, 0), blueLeft)
	mv1 := mockZone6Anywhere(hexcoord.New(2, -1, -1), blueRight)
	mv := multiverse.Merge(mv0, mv1)
	invariants := mv.Invariants()

	if got := mv0.SolutionCountUpperBound(); got != nk(6, blueLeft) {
		t.Fatalf("mv0 solution count = %d, want %d", got, nk(6, blueLeft))
	}
	if got := mv1.SolutionCountUpperBound(); got != nk(6, blueRight) {
		t.Fatalf("mv1 solution count = %d, want %d", got, nk(6, blueRight))
	}
	if got := mv.SolutionCountUpperBound(); got != solutionCount {
		t.Fatalf("merged solution count = %d, want %d", got, solutionCount)
	}
	if len(invariants) != invariantCount {
		t.Fatalf("invariant count = %d, want %d", len(invariants), invariantCount)
	}
}

func TestZone6(t *testing.T) {
	testTwoZone6HorizontalNeighbors(t, 0, 0, 10, 1)
	testTwoZone6HorizontalNeighbors(t, 0, 1, 6, 4)
	testTwoZone6HorizontalNeighbors(t, 1, 1, 0, nk(2, 1)+nk(4, 1)*nk(4, 1))
	testTwoZone6HorizontalNeighbors(t, 2, 2, 0, nk(4, 2)*nk(4, 2)+nk(4, 1)*nk(4, 1)*nk(2, 1)+1)
	testTwoZone6HorizontalNeighbors(t, 4, 4, 0, nk(4, 2)*nk(4, 2)+nk(4, 1)*nk(4, 1)*nk(2, 1)+1)
	testTwoZone6HorizontalNeighbors(t, 5, 5, 0, nk(2, 1)+nk(4, 1)*nk(4, 1))
	testTwoZone6HorizontalNeighbors(t, 6, 5, 6, 4)
	testTwoZone6HorizontalNeighbors(t, 6, 6, 10, 1)
}

func TestLineTogether(t *testing.T) {
	mv0 := mockLineTogether(hexcoord.New(0, 0, 0), 5, 3)
	if got := mv0.SolutionCountUpperBound(); got != 3 {
		t.Fatalf("solution count = %d, want 3", got)
	}
	if got := len(mv0.Invariants()); got != 1 {
		t.Fatalf("invariant count = %d, want 1 (the middle cell)", got)
	}

	mv1 := mockZone6Anywhere(hexcoord.New(-1, 4, -3), 0)
	mv := multiverse.Merge(mv0, mv1)
	if got := mv.SolutionCountUpperBound(); got != 1 {
		t.Fatalf("solution count = %d, want 1", got)
	}
	if got := len(mv.Invariants()); got != 9 {
		t.Fatalf("invariant count = %d, want 9", got)
	}

	mv1b := mockZone6Anywhere(hexcoord.New(-1, 3, -2), 0)
	mvb := multiverse.Merge(mv0, mv1b)
	if got := mvb.SolutionCountUpperBound(); got != 0 {
		t.Fatalf("solution count = %d, want 0 (contradiction)", got)
	}

	mv1c := mockZone6Anywhere(hexcoord.New(-1, 3, -2), 6)
	mvc := multiverse.Merge(mv0, mv1c)
	if got := mvc.SolutionCountUpperBound(); got != 2 {
		t.Fatalf("solution count = %d, want 2", got)
	}
	if got := len(mvc.Invariants()); got != 7 {
		t.Fatalf("invariant count = %d, want 7", got)
	}

	single := mockLineTogether(hexcoord.New(0, 0, 0), 5, 1)
	if got := single.SolutionCountUpperBound(); got != 5 {
		t.Fatalf("solution count = %d, want 5", got)
	}
	if got := len(single.Invariants()); got != 0 {
		t.Fatalf("invariant count = %d, want 0", got)
	}

	none := mockLineTogether(hexcoord.New(0, 0, 0), 5, 0)
	if got := none.SolutionCountUpperBound(); got != 1 {
		t.Fatalf("solution count = %d, want 1", got)
	}
	if got := len(none.Invariants()); got != 5 {
		t.Fatalf("invariant count = %d, want 5", got)
	}

	all := mockLineTogether(hexcoord.New(0, 0, 0), 5, 5)
	if got := all.SolutionCountUpperBound(); got != 1 {
		t.Fatalf("solution count = %d, want 1", got)
	}
	if got := len(all.Invariants()); got != 5 {
		t.Fatalf("invariant count = %d, want 5", got)
	}
}

func TestLineSeparated(t *testing.T) {
	mv0 := mockLineSeparated(hexcoord.New(0, 0, 0), 3, 2)
	if got := mv0.SolutionCountUpperBound(); got != 1 {
		t.Fatalf("solution count = %d, want 1", got)
	}
	if got := len(mv0.Invariants()); got != 3 {
		t.Fatalf("invariant count = %d, want 3", got)
	}

	// mv1 and mv3 below deliberately over-count: distributeSeparated's
	// pivot-based construction produces overlapping layouts, so the bound
	// is higher than the true solution count.
	mv1 := mockLineSeparated(hexcoord.New(0, 0, 0), 4, 2)
	if got := mv1.SolutionCountUpperBound(); got != 4 {
		t.Fatalf("solution count = %d, want 4 (true count is 3)", got)
	}
	if got := len(mv1.Invariants()); got != 0 {
		t.Fatalf("invariant count = %d, want 0", got)
	}

	mv2 := mockLineSeparated(hexcoord.New(0, 0, 0), 4, 3)
	if got := mv2.SolutionCountUpperBound(); got != 2 {
		t.Fatalf("solution count = %d, want 2", got)
	}
	if got := len(mv2.Invariants()); got != 2 {
		t.Fatalf("invariant count = %d, want 2 (the two extremities)", got)
	}

	mv3 := mockLineSeparated(hexcoord.New(0, 0, 0), 5, 3)
	if got := mv3.SolutionCountUpperBound(); got != 10 {
		t.Fatalf("solution count = %d, want 10 (true count is 7)", got)
	}
	if got := len(mv3.Invariants()); got != 0 {
		t.Fatalf("invariant count = %d, want 0", got)
	}

	blackCircle := mockZone6Anywhere(hexcoord.New(-1, 3, -2), 0)
	merged := multiverse.Merge(mv3, blackCircle)
	if got := merged.SolutionCountUpperBound(); got != 2 {
		t.Fatalf("solution count = %d, want 2 (true count is 1)", got)
	}
	if got := len(merged.Invariants()); got != 9 {
		t.Fatalf("invariant count = %d, want 9", got)
	}

	blueCircle := mockZone6Anywhere(hexcoord.New(-1, 3, -2), 6)
	merged2 := multiverse.Merge(mv3, blueCircle)
	if got := merged2.SolutionCountUpperBound(); got != 1 {
		t.Fatalf("solution count = %d, want 1", got)
	}
	if got := len(merged2.Invariants()); got != 9 {
		t.Fatalf("invariant count = %d, want 9", got)
	}
}

func TestRingTogether(t *testing.T) {
	for _, blueCount := range []int{0, 6} {
		mv0 := mockRingTogether(hexcoord.New(0, 0, 0), blueCount)
		if got := mv0.SolutionCountUpperBound(); got != 1 {
			t.Fatalf("blueCount=%d: solution count = %d, want 1", blueCount, got)
		}
		if got := len(mv0.Invariants()); got != 6 {
			t.Fatalf("blueCount=%d: invariant count = %d, want 6", blueCount, got)
		}
	}
	for _, blueCount := range []int{1, 2, 3, 4, 5} {
		mv0 := mockRingTogether(hexcoord.New(0, 0, 0), blueCount)
		if got := mv0.SolutionCountUpperBound(); got != 6 {
			t.Fatalf("blueCount=%d: solution count = %d, want 6", blueCount, got)
		}
		if got := len(mv0.Invariants()); got != 0 {
			t.Fatalf("blueCount=%d: invariant count = %d, want 0", blueCount, got)
		}
	}

	mv0 := mockLineTogether(hexcoord.New(0, 0, 0), 5, 3)
	mv1 := mockRingTogether(hexcoord.New(-1, 3, -2), 4)
	mv := multiverse.Merge(mv0, mv1)
	if got := mv.SolutionCountUpperBound(); got != 7 {
		t.Fatalf("solution count = %d, want 7", got)
	}
	if got := len(mv.Invariants()); got != 1 {
		t.Fatalf("invariant count = %d, want 1 (the line's middle cell)", got)
	}

	mvA := mockZone6Anywhere(hexcoord.New(0, 0, 0), 4)
	mvB := mockRingTogether(hexcoord.New(0, 0, 0), 4)
	mvAB := multiverse.Merge(mvA, mvB)
	if got := mvAB.SolutionCountUpperBound(); got != 6 {
		t.Fatalf("solution count = %d, want 6", got)
	}
	if got := len(mvAB.Invariants()); got != 0 {
		t.Fatalf("invariant count = %d, want 0", got)
	}

	tri0 := mockZone6Anywhere(hexcoord.New(0, 0, 0), 6)
	tri1 := mockRingTogether(hexcoord.New(2, -1, -1), 3)
	tri2 := mockRingTogether(hexcoord.New(1, -2, 1), 3)
	tri := multiverse.Merge(multiverse.Merge(tri0, tri1), tri2)
	if got := tri.SolutionCountUpperBound(); got != 2 {
		t.Fatalf("solution count = %d, want 2", got)
	}
	if got := len(tri.Invariants()); got != 10 {
		t.Fatalf("invariant count = %d, want 10", got)
	}
}

func TestRingSeparated(t *testing.T) {
	mv0 := mockRingSeparated(hexcoord.New(0, 0, 0), 2)
	if got := mv0.SolutionCountUpperBound(); got != 9 {
		t.Fatalf("solution count = %d, want 9", got)
	}
	if got := len(mv0.Invariants()); got != 0 {
		t.Fatalf("invariant count = %d, want 0", got)
	}

	mv1 := mockRingSeparated(hexcoord.New(0, 0, 0), 3)
	if got := mv1.SolutionCountUpperBound(); got != 14 {
		t.Fatalf("solution count = %d, want 14", got)
	}

	mv2 := mockRingSeparated(hexcoord.New(0, 0, 0), 4)
	if got := mv2.SolutionCountUpperBound(); got != 9 {
		t.Fatalf("solution count = %d, want 9", got)
	}

	mv3 := mockRingSeparated(hexcoord.New(0, 0, 0), 3)
	blueCircle := mockZone6Anywhere(hexcoord.New(2, -1, -1), 6)
	merged := multiverse.Merge(mv3, blueCircle)
	if got := merged.SolutionCountUpperBound(); got != 2 {
		t.Fatalf("solution count = %d, want 2", got)
	}
	if got := len(merged.Invariants()); got != 8 {
		t.Fatalf("invariant count = %d, want 8", got)
	}

	mv4 := mockRingSeparated(hexcoord.New(0, 0, 0), 2)
	blueCircle2 := mockZone6Anywhere(hexcoord.New(2, -1, -1), 5)
	merged2 := multiverse.Merge(mv4, blueCircle2)
	if got := merged2.SolutionCountUpperBound(); got != 6 {
		t.Fatalf("solution count = %d, want 6", got)
	}
	if got := len(merged2.Invariants()); got != 4 {
		t.Fatalf("invariant count = %d, want 4", got)
	}
}
