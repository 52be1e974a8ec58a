package routing

import "strconv"

// Entrance is the node every guidance query starts from.
const Entrance = "ENTRANCE"

// Corridor models a single row of slots behind one entrance.  The
// entrance gets a direct edge to each of the first fan slot nodes
// with weight equal to the slot's index, and consecutive slot nodes
// are linked both ways with weight 1.  It is deliberately simple: a
// stand-in for a real facility map that can be swapped for any other
// Graph without touching ShortestPath.
func Corridor(row string, n, fan int) Graph {
	g := Graph{Entrance: map[string]int{}}
	if fan > n {
		fan = n
	}
	for i := 1; i <= fan; i++ {
		g[Entrance][row+strconv.Itoa(i)] = i
	}
	for i := 1; i <= n; i++ {
		node := row + strconv.Itoa(i)
		g[node] = map[string]int{}
		if i < n {
			g[node][row+strconv.Itoa(i+1)] = 1
		}
		if i > 1 {
			g[node][row+strconv.Itoa(i-1)] = 1
		}
	}
	return g
}
