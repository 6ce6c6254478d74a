package datastructure

import (
	"math"
)

// EdgeID identifies one edge of the multigraph. Parallel edges between the
// same ordered node pair are disambiguated by Key.
type EdgeID struct {
	From int64
	To   int64
	Key  int32
}

type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

// Edge carries the assignment attributes of one directed road segment.
// T0, Time and LengthM use NaN as the "attribute not set" sentinel so that a
// zero value stays distinguishable from a missing one; use AttrOr to read
// them with a fallback.
type Edge struct {
	T0       float64 // free-flow travel time, seconds
	Capacity float64 // vehicles/hour, <= 0 means uncapacitated
	Flow     float64 // assigned volume
	Time     float64 // current travel time, seconds
	LengthM  float64 // meters

	// raw osm tag values, possibly several candidates when compressed
	// segments disagree; consumed once by the attribute initializer
	MaxSpeedRaw []string
	LanesRaw    []string

	ScenarioEdge bool // true for edges inserted by a scenario
}

// NewEdge returns an edge with every optional attribute unset.
func NewEdge() *Edge {
	return &Edge{
		T0:      math.NaN(),
		Time:    math.NaN(),
		LengthM: math.NaN(),
	}
}

// AttrOr reads a NaN-sentinel attribute with a fallback.
func AttrOr(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// HasAttr reports whether a NaN-sentinel attribute is set.
func HasAttr(v float64) bool {
	return !math.IsNaN(v)
}

// RoadNetwork is a directed multigraph stored as an arena of edges keyed by
// (From, To, Key). Node and edge id slices preserve insertion order so that
// every iteration (and therefore every floating point accumulation downstream)
// is reproducible run to run.
type RoadNetwork struct {
	nodes   map[int64]Node
	nodeIDs []int64

	edges   map[EdgeID]*Edge
	edgeIDs []EdgeID

	out map[int64][]EdgeID
}

func NewRoadNetwork() *RoadNetwork {
	return &RoadNetwork{
		nodes: make(map[int64]Node),
		edges: make(map[EdgeID]*Edge),
		out:   make(map[int64][]EdgeID),
	}
}

func (g *RoadNetwork) AddNode(n Node) {
	if _, ok := g.nodes[n.ID]; ok {
		g.nodes[n.ID] = n
		return
	}
	g.nodes[n.ID] = n
	g.nodeIDs = append(g.nodeIDs, n.ID)
}

func (g *RoadNetwork) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *RoadNetwork) Node(id int64) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns node ids in insertion order. The slice is shared, callers
// must not mutate it.
func (g *RoadNetwork) Nodes() []int64 {
	return g.nodeIDs
}

func (g *RoadNetwork) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *RoadNetwork) NumberOfEdges() int {
	return len(g.edges)
}

// AddEdge inserts e between from and to under the smallest unused key and
// returns the resulting id. Missing endpoints are added as bare nodes.
func (g *RoadNetwork) AddEdge(from, to int64, e *Edge) EdgeID {
	key := int32(0)
	for {
		if _, ok := g.edges[EdgeID{From: from, To: to, Key: key}]; !ok {
			break
		}
		key++
	}
	id := EdgeID{From: from, To: to, Key: key}
	g.addEdgeWithID(id, e)
	return id
}

// AddEdgeWithID inserts e under an explicit id, replacing any edge already
// stored there. Used when loading a persisted graph.
func (g *RoadNetwork) AddEdgeWithID(id EdgeID, e *Edge) {
	if _, ok := g.edges[id]; ok {
		g.edges[id] = e
		return
	}
	g.addEdgeWithID(id, e)
}

func (g *RoadNetwork) addEdgeWithID(id EdgeID, e *Edge) {
	if !g.HasNode(id.From) {
		g.AddNode(Node{ID: id.From})
	}
	if !g.HasNode(id.To) {
		g.AddNode(Node{ID: id.To})
	}
	g.edges[id] = e
	g.edgeIDs = append(g.edgeIDs, id)
	g.out[id.From] = append(g.out[id.From], id)
}

func (g *RoadNetwork) HasEdge(id EdgeID) bool {
	_, ok := g.edges[id]
	return ok
}

func (g *RoadNetwork) Edge(id EdgeID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

// RemoveEdge removes exactly one (from, to, key) edge. Removing an absent
// edge is a no-op returning false.
func (g *RoadNetwork) RemoveEdge(id EdgeID) bool {
	if _, ok := g.edges[id]; !ok {
		return false
	}
	delete(g.edges, id)
	g.edgeIDs = removeID(g.edgeIDs, id)
	g.out[id.From] = removeID(g.out[id.From], id)
	return true
}

func removeID(ids []EdgeID, id EdgeID) []EdgeID {
	for i := range ids {
		if ids[i] == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// OutEdges returns the ids of edges leaving node in insertion order. The
// slice is shared, callers must not mutate it.
func (g *RoadNetwork) OutEdges(node int64) []EdgeID {
	return g.out[node]
}

// EdgeIDs returns every edge id in insertion order. The slice is shared,
// callers must not mutate it.
func (g *RoadNetwork) EdgeIDs() []EdgeID {
	return g.edgeIDs
}

// ForEachEdge visits every edge in insertion order.
func (g *RoadNetwork) ForEachEdge(fn func(id EdgeID, e *Edge)) {
	for _, id := range g.edgeIDs {
		fn(id, g.edges[id])
	}
}

// Copy returns an independent copy of the graph. Edge structs are copied by
// value; the raw tag slices keep their backing arrays since nothing mutates
// them after ingestion, so a mutation on the copy is never observable on the
// original.
func (g *RoadNetwork) Copy() *RoadNetwork {
	h := &RoadNetwork{
		nodes:   make(map[int64]Node, len(g.nodes)),
		nodeIDs: make([]int64, len(g.nodeIDs)),
		edges:   make(map[EdgeID]*Edge, len(g.edges)),
		edgeIDs: make([]EdgeID, len(g.edgeIDs)),
		out:     make(map[int64][]EdgeID, len(g.out)),
	}
	for id, n := range g.nodes {
		h.nodes[id] = n
	}
	copy(h.nodeIDs, g.nodeIDs)
	copy(h.edgeIDs, g.edgeIDs)
	for id, e := range g.edges {
		cp := *e
		h.edges[id] = &cp
	}
	for node, ids := range g.out {
		cp := make([]EdgeID, len(ids))
		copy(cp, ids)
		h.out[node] = cp
	}
	return h
}

// MinTimeEdge picks, among the parallel edges from u to v, the one with the
// smallest current travel time, ties broken by the smaller key. Returns false
// when no edge connects the pair.
func (g *RoadNetwork) MinTimeEdge(u, v int64) (EdgeID, bool) {
	best := EdgeID{}
	bestTime := math.Inf(1)
	found := false
	for _, id := range g.out[u] {
		if id.To != v {
			continue
		}
		t := AttrOr(g.edges[id].Time, 1.0)
		if !found || t < bestTime || (t == bestTime && id.Key < best.Key) {
			best = id
			bestTime = t
			found = true
		}
	}
	return best, found
}
