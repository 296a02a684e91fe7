package hexcoord

import (
	"encoding/json"
	"testing"
)

func TestNewPanicsOnInvalidTriple(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for q+r+s != 0")
		}
	}()
	New(1, 1, 1)
}

func TestNeighbors6Count(t *testing.T) {
	c := New(0, 0, 0)
	ns := c.Neighbors6()
	seen := map[Coords]bool{}
	for _, n := range ns {
		if n.Q+n.R+n.S != 0 {
			t.Fatalf("neighbor %v violates q+r+s=0", n)
		}
		if seen[n] {
			t.Fatalf("duplicate neighbor %v", n)
		}
		seen[n] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected 6 distinct neighbors, got %d", len(seen))
	}
}

func TestNeighbors18ContainsNeighbors6(t *testing.T) {
	c := New(1, -2, 1)
	n6 := c.Neighbors6()
	n18 := c.Neighbors18()
	for _, n := range n6 {
		found := false
		for _, m := range n18 {
			if m == n {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("neighbors18 missing direct neighbor %v", n)
		}
	}
	seen := map[Coords]bool{}
	for _, n := range n18 {
		seen[n] = true
	}
	if len(seen) != 18 {
		t.Fatalf("expected 18 distinct neighbors, got %d", len(seen))
	}
}

func TestAddSub(t *testing.T) {
	a := New(1, -1, 0)
	b := New(0, 1, -1)
	sum := a.Add(b)
	if sum != New(1, 0, -1) {
		t.Fatalf("unexpected sum %v", sum)
	}
	if sum.Sub(b) != a {
		t.Fatalf("sub did not invert add")
	}
}

func TestCoordSetOrdering(t *testing.T) {
	s := NewCoordSet(New(2, -1, -1), New(0, 0, 0), New(-1, 1, 0))
	items := s.Items()
	for i := 1; i < len(items); i++ {
		if !items[i-1].Less(items[i]) {
			t.Fatalf("CoordSet not sorted: %v", items)
		}
	}
}

func TestCoordSetSetOps(t *testing.T) {
	a := NewCoordSet(New(0, 0, 0), New(1, -1, 0), New(2, -2, 0))
	b := NewCoordSet(New(1, -1, 0), New(3, -3, 0))
	if a.Intersect(b).Len() != 1 {
		t.Fatalf("expected intersection of size 1")
	}
	if a.Union(b).Len() != 4 {
		t.Fatalf("expected union of size 4")
	}
	if a.Difference(b).Len() != 2 {
		t.Fatalf("expected difference of size 2")
	}
	if a.IsDisjoint(b) {
		t.Fatalf("sets should not be disjoint")
	}
}

func TestCoordSetJSONRoundTrip(t *testing.T) {
	original := NewCoordSet(New(2, -1, -1), New(0, 0, 0), New(-1, 1, 0))
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded CoordSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decoded.Equal(original) {
		t.Fatalf("round trip mismatch: got %v, want %v", decoded.Items(), original.Items())
	}
}

func TestCoordSetJSONEmptySet(t *testing.T) {
	data, err := json.Marshal(NewCoordSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected an empty array, got %s", data)
	}
}
