package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg/assignment"
	"github.com/sxm-mobility/roadflow/pkg/costfunction"
	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/demand"
)

func newTestRunner(iters int) *Runner {
	engine := assignment.NewEngine(costfunction.NewDefaultBPRFunction(), zap.NewNop())
	return NewRunner(engine, iters, zap.NewNop())
}

func testOD() []demand.ODPair {
	return []demand.ODPair{
		{Origin: 1, Destination: 3, Demand: 800},
		{Origin: 2, Destination: 3, Demand: 200},
	}
}

func TestRunScenarioLeavesBaseGraphUntouched(t *testing.T) {
	base := newBaseGraph()
	runner := newTestRunner(10)

	s := IncreaseCapacity{ScenarioName: "widen", Edge: da.EdgeID{From: 1, To: 2}, Pct: 0.5}
	res := runner.Run(base, testOD(), s)

	base.ForEachEdge(func(_ da.EdgeID, e *da.Edge) {
		assert.Equal(t, 0.0, e.Flow)
	})
	assert.Greater(t, res.Scores.TSTT, 0.0)
	assert.Equal(t, 2, res.Stats.AssignedPairs)
}

func TestRunScenarioDeterministic(t *testing.T) {
	runner := newTestRunner(15)
	s := Closure{ScenarioName: "close 1-3", Edge: da.EdgeID{From: 1, To: 3}}

	first := runner.Run(newBaseGraph(), testOD(), s)
	second := runner.Run(newBaseGraph(), testOD(), s)

	assert.Equal(t, first.Scores, second.Scores)
}

func TestRunAllParallelMatchesSequential(t *testing.T) {
	base := newBaseGraph()
	runner := newTestRunner(10)

	scenarios := []Scenario{
		IncreaseCapacity{ScenarioName: "widen 1-2", Edge: da.EdgeID{From: 1, To: 2}, Pct: 0.25},
		Closure{ScenarioName: "close 1-3", Edge: da.EdgeID{From: 1, To: 3}},
		AddConnector{ScenarioName: "connector", U: 3, V: 1, LengthM: 350, SpeedKPH: 40, CapacityVPH: 900},
	}

	sequential := runner.RunAll(base, testOD(), scenarios)
	parallel := runner.RunAllParallel(base, testOD(), scenarios, 3)

	require.Len(t, parallel, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].Scenario.Name(), parallel[i].Scenario.Name())
		assert.Equal(t, sequential[i].Scores, parallel[i].Scores)
	}
}

func TestScoreGraph(t *testing.T) {
	g := da.NewRoadNetwork()
	e := da.NewEdge()
	e.T0 = 10
	e.Time = 12
	e.Flow = 100
	e.Capacity = 900
	g.AddEdge(1, 2, e)

	scores := ScoreGraph(g)
	assert.InDelta(t, 1200.0, scores.TSTT, 1e-9)
	assert.InDelta(t, 200.0, scores.Delay, 1e-9)
}
