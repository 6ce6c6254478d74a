package assignment

import (
	"github.com/sxm-mobility/roadflow/pkg"
	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
)

// shortestPath runs Dijkstra from origin over current edge times and returns
// the node sequence of a min-time path to dest, or ok=false when dest is
// unreachable. Heap ranks tie-break on node id and out-edges are visited in
// insertion order, so the chosen path is deterministic for a given graph.
func shortestPath(g *da.RoadNetwork, origin, dest int64) ([]int64, bool) {
	if origin == dest {
		return []int64{origin}, true
	}

	pq := da.NewFourAryHeap[int64]()
	entries := make(map[int64]*da.PriorityQueueNode[int64])
	dist := make(map[int64]float64)
	parent := make(map[int64]int64)
	settled := make(map[int64]bool)

	dist[origin] = 0
	src := da.NewPriorityQueueNode(0, origin, origin)
	entries[origin] = src
	pq.Insert(src)

	found := false
	for !pq.IsEmpty() {
		minNode, _ := pq.ExtractMin()
		u := minNode.GetItem()
		if settled[u] {
			continue
		}
		settled[u] = true

		if u == dest {
			found = true
			break
		}

		du := dist[u]
		if du >= pkg.INF_WEIGHT {
			break
		}

		for _, id := range g.OutEdges(u) {
			v := id.To
			if settled[v] {
				continue
			}
			e, _ := g.Edge(id)
			alt := du + da.AttrOr(e.Time, 1.0)

			dv, seen := dist[v]
			if !seen {
				dist[v] = alt
				parent[v] = u
				entry := da.NewPriorityQueueNode(alt, v, v)
				entries[v] = entry
				pq.Insert(entry)
			} else if alt < dv {
				dist[v] = alt
				parent[v] = u
				pq.DecreaseKey(entries[v], alt)
			}
		}
	}

	if !found {
		return nil, false
	}

	path := []int64{dest}
	for at := dest; at != origin; {
		at = parent[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
