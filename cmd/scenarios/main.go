package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg"
	"github.com/sxm-mobility/roadflow/pkg/assignment"
	"github.com/sxm-mobility/roadflow/pkg/costfunction"
	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/demand"
	"github.com/sxm-mobility/roadflow/pkg/export"
	"github.com/sxm-mobility/roadflow/pkg/logger"
	"github.com/sxm-mobility/roadflow/pkg/scenario"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

var (
	graphPath = flag.String("graph", "./data/roadflow.graph", "graph file built by cmd/buildgraph")
	outDir    = flag.String("out", "./data/processed", "output directory for result tables")
	workers   = flag.Int("workers", runtime.NumCPU(), "number of parallel scenario workers")
)

// prototypeCatalog builds example what-if scenarios against the base graph:
// capacity increases on a few early edges, one closure, one hypothetical
// connector. Replace with generated candidates later.
func prototypeCatalog(g *datastructure.RoadNetwork) []scenario.Scenario {
	edges := g.EdgeIDs()
	scenarios := []scenario.Scenario{}

	for i, id := range edges {
		if i >= 5 {
			break
		}
		scenarios = append(scenarios, scenario.IncreaseCapacity{
			ScenarioName: fmt.Sprintf("Increase capacity %d", i+1),
			Desc:         "Prototype: increase capacity on a selected edge",
			Edge:         id,
			Pct:          0.25,
		})
	}

	if len(edges) > 0 {
		scenarios = append(scenarios, scenario.Closure{
			ScenarioName: "Closure test (first edge)",
			Desc:         "Prototype: remove one edge to test fragility",
			Edge:         edges[0],
		})
	}

	nodes := g.Nodes()
	if len(nodes) >= 2 {
		scenarios = append(scenarios, scenario.AddConnector{
			ScenarioName: "Add connector (prototype)",
			Desc:         "Prototype: add a hypothetical connector edge",
			U:            nodes[0],
			V:            nodes[len(nodes)-1],
			LengthM:      350.0,
			SpeedKPH:     40.0,
			CapacityVPH:  900.0,
		})
	}

	return scenarios
}

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		log.Info("no config file found, using defaults")
	}
	viper.SetDefault("MSA_ITERS", pkg.DEFAULT_MSA_ITERS)
	viper.SetDefault("BPR_ALPHA", pkg.DEFAULT_BPR_ALPHA)
	viper.SetDefault("BPR_BETA", pkg.DEFAULT_BPR_BETA)
	viper.SetDefault("OD_PAIRS", 200)
	viper.SetDefault("OD_SEED", pkg.DEFAULT_OD_SEED)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	base, err := datastructure.ReadGraph(*graphPath)
	if err != nil {
		panic(err)
	}

	od, err := demand.RandomOD(base, demand.Params{
		NumPairs:  viper.GetInt("OD_PAIRS"),
		MinDemand: pkg.DEFAULT_MIN_DEMAND,
		MaxDemand: pkg.DEFAULT_MAX_DEMAND,
		Seed:      viper.GetInt64("OD_SEED"),
	})
	if err != nil {
		panic(err)
	}

	iters := viper.GetInt("MSA_ITERS")
	alpha := viper.GetFloat64("BPR_ALPHA")
	beta := viper.GetFloat64("BPR_BETA")

	engine := assignment.NewEngine(costfunction.NewBPRFunction(alpha, beta), log)

	log.Info("running baseline assignment", zap.Int("iters", iters))
	baselineGraph := base.Copy()
	engine.Run(baselineGraph, od, iters)
	baseline := scenario.ScoreGraph(baselineGraph)

	scenarios := prototypeCatalog(base)
	log.Info("running scenarios", zap.Int("count", len(scenarios)))

	runner := scenario.NewRunner(engine, iters, log)
	results := runner.RunAllParallel(base, od, scenarios, *workers)

	rows := export.BuildScenarioRows(baseline, results, len(od), export.RunParams{
		MSAIters: iters,
		BPRAlpha: alpha,
		BPRBeta:  beta,
	})

	if err := export.WriteScenarioResults(*outDir+"/results_scenarios.csv", rows); err != nil {
		panic(err)
	}
	if err := export.WriteScenarioDetails(*outDir+"/scenario_details.csv", scenarios); err != nil {
		panic(err)
	}

	log.Info("scenario evaluation completed",
		zap.Int("scenarios", len(scenarios)),
		zap.String("out", *outDir),
	)
}
