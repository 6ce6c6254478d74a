package datastructure

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphIORoundTrip(t *testing.T) {
	g := NewRoadNetwork()
	g.AddNode(Node{ID: 1, Lat: 18.0425, Lon: -63.0548})
	g.AddNode(Node{ID: 2, Lat: 18.0431, Lon: -63.0522})
	g.AddNode(Node{ID: 3, Lat: 18.0467, Lon: -63.0499})

	e1 := NewEdge()
	e1.T0 = 12.34567890123
	e1.Capacity = 1800
	e1.Flow = 101.5
	e1.Time = 13.1
	e1.LengthM = 240.25
	g.AddEdge(1, 2, e1)

	e2 := NewEdge()
	e2.T0 = 9.0
	e2.Capacity = 900
	e2.ScenarioEdge = true
	g.AddEdge(1, 2, e2) // parallel edge, key 1

	e3 := NewEdge() // everything optional left unset
	e3.Capacity = 900
	g.AddEdge(2, 3, e3)

	path := filepath.Join(t.TempDir(), "graph.bz2")
	require.NoError(t, g.WriteGraph(path))

	got, err := ReadGraph(path)
	require.NoError(t, err)

	require.Equal(t, g.NumberOfNodes(), got.NumberOfNodes())
	require.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())
	assert.Equal(t, g.Nodes(), got.Nodes())
	assert.Equal(t, g.EdgeIDs(), got.EdgeIDs())

	n1, _ := got.Node(1)
	assert.Equal(t, 18.0425, n1.Lat)
	assert.Equal(t, -63.0548, n1.Lon)

	r1, _ := got.Edge(EdgeID{From: 1, To: 2, Key: 0})
	assert.Equal(t, 12.34567890123, r1.T0)
	assert.Equal(t, 101.5, r1.Flow)
	assert.Equal(t, 240.25, r1.LengthM)
	assert.False(t, r1.ScenarioEdge)

	r2, _ := got.Edge(EdgeID{From: 1, To: 2, Key: 1})
	assert.True(t, r2.ScenarioEdge)

	r3, _ := got.Edge(EdgeID{From: 2, To: 3, Key: 0})
	assert.True(t, math.IsNaN(r3.T0))
	assert.True(t, math.IsNaN(r3.Time))
	assert.True(t, math.IsNaN(r3.LengthM))
}

func TestReadGraphMissingFile(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "nope.bz2"))
	assert.Error(t, err)
}
