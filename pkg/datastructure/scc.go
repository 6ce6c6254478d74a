package datastructure

// StronglyConnectedComponents runs Kosaraju's algorithm on the node graph.
// Components come back in no particular order; nodes inside one component
// follow the second DFS pass order. DFS is iterative, road networks are too
// deep for the call stack.
func (g *RoadNetwork) StronglyConnectedComponents() [][]int64 {
	visited := make(map[int64]bool, len(g.nodes))
	order := make([]int64, 0, len(g.nodes))

	for _, v := range g.nodeIDs {
		if visited[v] {
			continue
		}
		g.dfsForward(v, visited, &order)
	}

	rev := make(map[int64][]int64, len(g.nodes))
	for _, id := range g.edgeIDs {
		rev[id.To] = append(rev[id.To], id.From)
	}

	visited = make(map[int64]bool, len(g.nodes))
	components := make([][]int64, 0)

	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		if visited[v] {
			continue
		}
		component := make([]int64, 0)
		stack := []int64{v}
		visited[v] = true
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, u)
			for _, w := range rev[u] {
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
		}
		components = append(components, component)
	}

	return components
}

// dfsForward appends nodes to order in post-order (finish time ascending).
func (g *RoadNetwork) dfsForward(start int64, visited map[int64]bool, order *[]int64) {
	type frame struct {
		node int64
		next int
	}
	stack := []frame{{node: start}}
	visited[start] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		outs := g.out[top.node]
		advanced := false
		for top.next < len(outs) {
			w := outs[top.next].To
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{node: w})
				advanced = true
				break
			}
		}
		if !advanced && top.next >= len(outs) {
			*order = append(*order, top.node)
			stack = stack[:len(stack)-1]
		}
	}
}

// LargestStronglyConnectedComponent returns the subgraph induced by the
// biggest SCC. Assignment expects a graph where every retained OD pair has a
// chance of being connected, which is what this reduction buys.
func (g *RoadNetwork) LargestStronglyConnectedComponent() *RoadNetwork {
	components := g.StronglyConnectedComponents()
	if len(components) == 0 {
		return NewRoadNetwork()
	}

	largest := components[0]
	for _, c := range components[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}

	keep := make(map[int64]bool, len(largest))
	for _, v := range largest {
		keep[v] = true
	}

	sub := NewRoadNetwork()
	for _, v := range g.nodeIDs {
		if keep[v] {
			sub.AddNode(g.nodes[v])
		}
	}
	for _, id := range g.edgeIDs {
		if keep[id.From] && keep[id.To] {
			cp := *g.edges[id]
			sub.AddEdgeWithID(id, &cp)
		}
	}
	return sub
}
