package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
)

func newBaseGraph() *da.RoadNetwork {
	g := da.NewRoadNetwork()
	add := func(u, v int64, t0, capacity float64) {
		e := da.NewEdge()
		e.T0 = t0
		e.Time = t0
		e.Capacity = capacity
		g.AddEdge(u, v, e)
	}
	add(1, 2, 10, 900)
	add(2, 3, 10, 900)
	add(1, 3, 25, 450)
	return g
}

func TestIncreaseCapacityApply(t *testing.T) {
	base := newBaseGraph()
	id := da.EdgeID{From: 1, To: 2}

	s := IncreaseCapacity{ScenarioName: "widen 1-2", Edge: id, Pct: 0.25}
	mutated := s.Apply(base)

	got, ok := mutated.Edge(id)
	require.True(t, ok)
	assert.InDelta(t, 1125.0, got.Capacity, 1e-9)

	// base graph untouched
	orig, _ := base.Edge(id)
	assert.Equal(t, 900.0, orig.Capacity)
}

func TestIncreaseCapacityMissingEdgeNoOp(t *testing.T) {
	base := newBaseGraph()
	s := IncreaseCapacity{ScenarioName: "nope", Edge: da.EdgeID{From: 9, To: 9}, Pct: 0.25}

	mutated := s.Apply(base)
	assert.Equal(t, base.NumberOfEdges(), mutated.NumberOfEdges())
	assert.Equal(t, base.EdgeIDs(), mutated.EdgeIDs())
}

func TestClosureApply(t *testing.T) {
	base := newBaseGraph()
	id := da.EdgeID{From: 1, To: 3}

	s := Closure{ScenarioName: "close 1-3", Edge: id}
	mutated := s.Apply(base)

	assert.False(t, mutated.HasEdge(id))
	assert.True(t, base.HasEdge(id))
	assert.Equal(t, base.NumberOfEdges()-1, mutated.NumberOfEdges())
}

func TestClosureMissingEdgeEqualsInput(t *testing.T) {
	base := newBaseGraph()
	s := Closure{ScenarioName: "nope", Edge: da.EdgeID{From: 9, To: 9}}

	mutated := s.Apply(base)

	require.Equal(t, base.EdgeIDs(), mutated.EdgeIDs())
	for _, id := range base.EdgeIDs() {
		want, _ := base.Edge(id)
		got, _ := mutated.Edge(id)
		assert.Equal(t, *want, *got)
	}
}

func TestAddConnectorApply(t *testing.T) {
	base := newBaseGraph()

	s := AddConnector{
		ScenarioName: "new link",
		U:            3,
		V:            1,
		LengthM:      350,
		SpeedKPH:     40,
		CapacityVPH:  900,
	}
	mutated := s.Apply(base)

	assert.Equal(t, base.NumberOfEdges()+1, mutated.NumberOfEdges())

	id := da.EdgeID{From: 3, To: 1}
	e, ok := mutated.Edge(id)
	require.True(t, ok)
	assert.InDelta(t, 350.0/(40.0*1000.0/3600.0), e.T0, 1e-9)
	assert.Equal(t, e.T0, e.Time)
	assert.Equal(t, 900.0, e.Capacity)
	assert.Equal(t, 0.0, e.Flow)
	assert.True(t, e.ScenarioEdge)
}

func TestAddConnectorAllowsParallelEdge(t *testing.T) {
	base := newBaseGraph()

	s := AddConnector{ScenarioName: "duplicate", U: 1, V: 2, LengthM: 100, SpeedKPH: 40, CapacityVPH: 900}
	once := s.Apply(base)
	twice := s.Apply(once)

	assert.True(t, twice.HasEdge(da.EdgeID{From: 1, To: 2, Key: 1}))
	assert.True(t, twice.HasEdge(da.EdgeID{From: 1, To: 2, Key: 2}))
	assert.Equal(t, base.NumberOfEdges()+2, twice.NumberOfEdges())
}

func TestScenarioParamsExcludeNameAndDescription(t *testing.T) {
	s := IncreaseCapacity{ScenarioName: "widen", Desc: "d", Edge: da.EdgeID{From: 1, To: 2, Key: 0}, Pct: 0.25}
	params := s.Params()
	assert.NotContains(t, params, "name")
	assert.NotContains(t, params, "description")
	assert.Equal(t, 0.25, params["pct"])
}
