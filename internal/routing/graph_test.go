package routing

import (
	"reflect"
	"testing"
)

func TestShortestPathRow(t *testing.T) {
	g := Corridor("A", 20, 1)

	route, ok := g.ShortestPath(Entrance, "A3")
	if !ok {
		t.Fatal("expected a route to A3")
	}
	wantPath := []string{"ENTRANCE", "A1", "A2", "A3"}
	if !reflect.DeepEqual(route.Path, wantPath) {
		t.Errorf("path = %v, want %v", route.Path, wantPath)
	}
	if route.Cost != 3 {
		t.Errorf("cost = %d, want 3", route.Cost)
	}
}

func TestShortestPathTargetOutsideRow(t *testing.T) {
	g := Corridor("A", 20, 1)
	if _, ok := g.ShortestPath(Entrance, "A99"); ok {
		t.Error("expected no route for node outside the modeled row")
	}
}

func TestShortestPathUnknownStart(t *testing.T) {
	g := Corridor("A", 5, 1)
	if _, ok := g.ShortestPath("LOBBY", "A1"); ok {
		t.Error("expected no route from unknown start node")
	}
}

func TestShortestPathSelf(t *testing.T) {
	g := Corridor("A", 5, 1)
	route, ok := g.ShortestPath(Entrance, Entrance)
	if !ok {
		t.Fatal("expected trivial route to self")
	}
	if route.Cost != 0 || len(route.Path) != 1 || route.Path[0] != Entrance {
		t.Errorf("got %+v, want single-node path with cost 0", route)
	}
}

func TestShortestPathUsesEntranceFan(t *testing.T) {
	// With a fan of 5 the entrance reaches A5 directly at cost 5,
	// which is no worse than walking the row; the route found must
	// still cost 5.
	g := Corridor("A", 50, 5)
	route, ok := g.ShortestPath(Entrance, "A5")
	if !ok {
		t.Fatal("expected a route to A5")
	}
	if route.Cost != 5 {
		t.Errorf("cost = %d, want 5", route.Cost)
	}
}

func TestCorridorShape(t *testing.T) {
	g := Corridor("A", 3, 5) // fan larger than the row is clamped
	if len(g[Entrance]) != 3 {
		t.Errorf("entrance fan = %d, want 3", len(g[Entrance]))
	}
	if g["A2"]["A1"] != 1 || g["A2"]["A3"] != 1 {
		t.Error("interior node must link both neighbors with weight 1")
	}
	if _, ok := g["A3"]["A4"]; ok {
		t.Error("row must end at A3")
	}
}

func TestShortestPathDeterministicOnTies(t *testing.T) {
	// Two equal-cost routes; repeated queries must agree.
	g := Graph{
		"ENTRANCE": {"A1": 1, "B1": 1},
		"A1":       {"X": 1},
		"B1":       {"X": 1},
		"X":        {},
	}
	first, ok := g.ShortestPath("ENTRANCE", "X")
	if !ok {
		t.Fatal("expected a route")
	}
	for i := 0; i < 20; i++ {
		again, ok := g.ShortestPath("ENTRANCE", "X")
		if !ok || !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %+v vs %+v", i, first, again)
		}
	}
}
