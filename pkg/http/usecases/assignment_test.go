package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/scenario"
)

func newBaseGraph() *da.RoadNetwork {
	g := da.NewRoadNetwork()
	g.AddNode(da.Node{ID: 1})
	g.AddNode(da.Node{ID: 2})
	g.AddNode(da.Node{ID: 3})

	e12 := da.NewEdge()
	e12.T0 = 60
	e12.Capacity = 1000
	g.AddEdge(1, 2, e12)

	e23 := da.NewEdge()
	e23.T0 = 60
	e23.Capacity = 1000
	g.AddEdge(2, 3, e23)

	e13 := da.NewEdge()
	e13.T0 = 150
	e13.Capacity = 1000
	g.AddEdge(1, 3, e13)

	return g
}

func testRunParams() RunParams {
	return RunParams{
		ODPairs:        10,
		MinDemand:      50,
		MaxDemand:      150,
		Seed:           42,
		MSAIters:       10,
		BPRAlpha:       0.15,
		BPRBeta:        4.0,
		TopBottlenecks: 5,
	}
}

func newTestService(t *testing.T) *AssignmentService {
	t.Helper()
	svc, err := NewAssignmentService(zap.NewNop(), newBaseGraph(), "testtown", "drive")
	require.NoError(t, err)
	return svc
}

func TestRunBaseline(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.RunBaseline(testRunParams())
	require.NoError(t, err)

	assert.Equal(t, "testtown", res.Summary.Place)
	assert.Equal(t, 10, res.Summary.ODPairs)
	assert.Equal(t, 3, res.Summary.Nodes)
	assert.Equal(t, 3, res.Summary.Edges)
	assert.Greater(t, res.Summary.TSTT, 0.0)
	assert.LessOrEqual(t, len(res.Bottlenecks), 5)
}

func TestRunBaselineLeavesBaseGraphUntouched(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.RunBaseline(testRunParams())
	require.NoError(t, err)

	svc.base.ForEachEdge(func(_ da.EdgeID, e *da.Edge) {
		assert.Equal(t, 0.0, e.Flow)
	})
}

func TestRunBaselineCachesIdenticalRequests(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.RunBaseline(testRunParams())
	require.NoError(t, err)
	second, err := svc.RunBaseline(testRunParams())
	require.NoError(t, err)

	// same pointer, not just equal values
	assert.Same(t, first, second)

	p := testRunParams()
	p.Seed = 7
	third, err := svc.RunBaseline(p)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestRunBaselineRejectsBadDemandParams(t *testing.T) {
	svc := newTestService(t)

	p := testRunParams()
	p.MinDemand = 200
	p.MaxDemand = 100

	_, err := svc.RunBaseline(p)
	assert.Error(t, err)
}

func TestRunScenariosRanksByDelayImprovement(t *testing.T) {
	svc := newTestService(t)

	specs := []ScenarioSpec{
		{Name: "widen", Type: "increase_capacity", U: 1, V: 2, Pct: 0.5},
		{Name: "close", Type: "closure", U: 1, V: 2},
	}

	res, err := svc.RunScenarios(testRunParams(), specs, 2)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.GreaterOrEqual(t, res.Rows[0].DelayImprovement, res.Rows[1].DelayImprovement)
	assert.Greater(t, res.Baseline.TSTT, 0.0)
}

func TestBuildScenarios(t *testing.T) {
	scenarios, err := BuildScenarios([]ScenarioSpec{
		{Name: "widen", Type: "increase_capacity", U: 1, V: 2, Key: 0, Pct: 0.25},
		{Name: "close", Type: "closure", U: 2, V: 3},
		{Name: "link", Type: "add_connector", U: 3, V: 1, LengthM: 350, SpeedKPH: 40, CapacityVPH: 900},
	})
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	assert.IsType(t, scenario.IncreaseCapacity{}, scenarios[0])
	assert.IsType(t, scenario.Closure{}, scenarios[1])
	assert.IsType(t, scenario.AddConnector{}, scenarios[2])
	assert.Equal(t, "widen", scenarios[0].Name())
}

func TestBuildScenariosUnknownType(t *testing.T) {
	_, err := BuildScenarios([]ScenarioSpec{{Name: "bad", Type: "teleporter"}})
	assert.Error(t, err)
}
