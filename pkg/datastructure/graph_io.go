package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/dsnet/compress/bzip2"
)

// WriteGraph persists the network as bzip2-compressed text: a header with the
// node and edge counts, one row per node, one row per edge. Floats are
// written with FormatFloat(-1) so the round trip is exact. Raw osm tags are
// not persisted, they are consumed by the attribute initializer before a
// graph is ever written.
func (g *RoadNetwork) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfNodes(), g.NumberOfEdges())

	for _, id := range g.nodeIDs {
		n := g.nodes[id]
		latF := strconv.FormatFloat(n.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(n.Lon, 'f', -1, 64)
		fmt.Fprintf(w, "%d %s %s\n", n.ID, latF, lonF)
	}

	for _, id := range g.edgeIDs {
		e := g.edges[id]
		scenarioEdge := 0
		if e.ScenarioEdge {
			scenarioEdge = 1
		}
		fmt.Fprintf(w, "%d %d %d %s %s %s %s %s %d\n",
			id.From, id.To, id.Key,
			strconv.FormatFloat(e.T0, 'f', -1, 64),
			strconv.FormatFloat(e.Capacity, 'f', -1, 64),
			strconv.FormatFloat(e.Flow, 'f', -1, 64),
			strconv.FormatFloat(e.Time, 'f', -1, 64),
			strconv.FormatFloat(e.LengthM, 'f', -1, 64),
			scenarioEdge)
	}

	return w.Flush()
}

func ReadGraph(filename string) (*RoadNetwork, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	r := bufio.NewReader(bz)

	var numNodes, numEdges int
	if _, err := fmt.Fscanf(r, "%d %d\n", &numNodes, &numEdges); err != nil {
		return nil, fmt.Errorf("graph header: %w", err)
	}

	g := NewRoadNetwork()

	for i := 0; i < numNodes; i++ {
		var n Node
		if _, err := fmt.Fscanf(r, "%d %f %f\n", &n.ID, &n.Lat, &n.Lon); err != nil {
			return nil, fmt.Errorf("graph node row %d: %w", i, err)
		}
		g.AddNode(n)
	}

	for i := 0; i < numEdges; i++ {
		var (
			id           EdgeID
			e            Edge
			scenarioEdge int
		)
		if _, err := fmt.Fscanf(r, "%d %d %d %f %f %f %f %f %d\n",
			&id.From, &id.To, &id.Key,
			&e.T0, &e.Capacity, &e.Flow, &e.Time, &e.LengthM,
			&scenarioEdge); err != nil {
			return nil, fmt.Errorf("graph edge row %d: %w", i, err)
		}
		e.ScenarioEdge = scenarioEdge == 1
		g.AddEdgeWithID(id, &e)
	}

	return g, nil
}
