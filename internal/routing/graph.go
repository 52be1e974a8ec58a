// Package routing computes in-facility routes from the entrance to a
// parking slot over a fixed topology graph.  The graph is built once
// at startup and never mutated, so route queries are safe for
// unlimited concurrent use.
package routing

import (
	"container/heap"
	"sort"
)

// Graph is a weighted directed graph keyed by node name.  Edge
// weights must be non-negative.
type Graph map[string]map[string]int

// Route is the result of a shortest-path query: the ordered node
// sequence from start to target and the summed edge cost.
type Route struct {
	Path []string `json:"path"`
	Cost int      `json:"distance"`
}

// frontierItem is one entry in the Dijkstra priority queue.  seq
// keeps pops deterministic when costs tie: the earliest push wins.
type frontierItem struct {
	node string
	cost int
	path []string
	seq  int
}

type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(*frontierItem)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return it
}

// ShortestPath runs Dijkstra from start to target.  Because weights
// are non-negative, the first pop of any node carries its minimum
// cost, so the search stops as soon as the target is popped.  The
// boolean result is false when the target cannot be reached, which
// includes target nodes absent from the graph entirely.
func (g Graph) ShortestPath(start, target string) (Route, bool) {
	if _, ok := g[start]; !ok {
		return Route{}, false
	}
	visited := make(map[string]bool, len(g))
	seq := 0
	pq := &frontier{{node: start, cost: 0, path: nil, seq: seq}}
	heap.Init(pq)
	for pq.Len() > 0 {
		it := heap.Pop(pq).(*frontierItem)
		if visited[it.node] {
			continue
		}
		visited[it.node] = true
		path := append(append([]string(nil), it.path...), it.node)
		if it.node == target {
			return Route{Path: path, Cost: it.cost}, true
		}
		// Expand neighbors in name order so equal-cost routes resolve
		// the same way on every run.
		next := make([]string, 0, len(g[it.node]))
		for n := range g[it.node] {
			next = append(next, n)
		}
		sort.Strings(next)
		for _, n := range next {
			if visited[n] {
				continue
			}
			seq++
			heap.Push(pq, &frontierItem{node: n, cost: it.cost + g[it.node][n], path: path, seq: seq})
		}
	}
	return Route{}, false
}
