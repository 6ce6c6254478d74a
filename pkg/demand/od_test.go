package demand

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

func lineGraph(n int) *datastructure.RoadNetwork {
	g := datastructure.NewRoadNetwork()
	for i := 0; i < n; i++ {
		g.AddNode(datastructure.Node{ID: int64(i)})
	}
	for i := 0; i+1 < n; i++ {
		g.AddEdge(int64(i), int64(i+1), datastructure.NewEdge())
	}
	return g
}

func TestRandomODReproducible(t *testing.T) {
	g := lineGraph(20)
	params := Params{NumPairs: 50, MinDemand: 50, MaxDemand: 150, Seed: 42}

	first, err := RandomOD(g, params)
	require.NoError(t, err)
	second, err := RandomOD(g, params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRandomODDifferentSeeds(t *testing.T) {
	g := lineGraph(20)

	a, err := RandomOD(g, Params{NumPairs: 50, MinDemand: 50, MaxDemand: 150, Seed: 1})
	require.NoError(t, err)
	b, err := RandomOD(g, Params{NumPairs: 50, MinDemand: 50, MaxDemand: 150, Seed: 2})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestRandomODProperties(t *testing.T) {
	g := lineGraph(10)

	od, err := RandomOD(g, Params{NumPairs: 200, MinDemand: 50, MaxDemand: 150, Seed: 7})
	require.NoError(t, err)
	require.Len(t, od, 200)

	for _, p := range od {
		assert.NotEqual(t, p.Origin, p.Destination)
		assert.GreaterOrEqual(t, p.Demand, 50.0)
		assert.LessOrEqual(t, p.Demand, 150.0)
		assert.True(t, g.HasNode(p.Origin))
		assert.True(t, g.HasNode(p.Destination))
	}
}

func TestRandomODValidation(t *testing.T) {
	tests := []struct {
		name   string
		graph  *datastructure.RoadNetwork
		params Params
	}{
		{"negative pair count", lineGraph(10), Params{NumPairs: -1, MinDemand: 50, MaxDemand: 150}},
		{"min above max", lineGraph(10), Params{NumPairs: 10, MinDemand: 10, MaxDemand: 5}},
		{"single node graph", lineGraph(1), Params{NumPairs: 10, MinDemand: 50, MaxDemand: 150}},
		{"empty graph", lineGraph(0), Params{NumPairs: 10, MinDemand: 50, MaxDemand: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RandomOD(tt.graph, tt.params)
			require.Error(t, err)

			var coded *util.Error
			require.True(t, errors.As(err, &coded))
			assert.Equal(t, util.ErrBadParamInput, coded.Code())
		})
	}
}

func TestRandomODZeroPairs(t *testing.T) {
	od, err := RandomOD(lineGraph(5), Params{NumPairs: 0, MinDemand: 50, MaxDemand: 150})
	require.NoError(t, err)
	assert.Empty(t, od)
}

func TestTotalDemand(t *testing.T) {
	od := []ODPair{{1, 2, 10.0}, {2, 3, 5.5}}
	assert.InDelta(t, 15.5, TotalDemand(od), 1e-12)
}
