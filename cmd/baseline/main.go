package main

import (
	"flag"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg"
	"github.com/sxm-mobility/roadflow/pkg/assignment"
	"github.com/sxm-mobility/roadflow/pkg/costfunction"
	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/demand"
	"github.com/sxm-mobility/roadflow/pkg/export"
	"github.com/sxm-mobility/roadflow/pkg/logger"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

var (
	graphPath = flag.String("graph", "./data/roadflow.graph", "graph file built by cmd/buildgraph")
	outDir    = flag.String("out", "./data/processed", "output directory for result tables")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		log.Info("no config file found, using defaults")
	}
	viper.SetDefault("PLACE_QUERY", "unknown")
	viper.SetDefault("NETWORK_TYPE", "drive")
	viper.SetDefault("MSA_ITERS", pkg.DEFAULT_MSA_ITERS)
	viper.SetDefault("BPR_ALPHA", pkg.DEFAULT_BPR_ALPHA)
	viper.SetDefault("BPR_BETA", pkg.DEFAULT_BPR_BETA)
	viper.SetDefault("OD_PAIRS", pkg.DEFAULT_OD_PAIRS)
	viper.SetDefault("OD_SEED", pkg.DEFAULT_OD_SEED)
	viper.SetDefault("TOP_BOTTLENECKS", 50)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}

	graph, err := datastructure.ReadGraph(*graphPath)
	if err != nil {
		panic(err)
	}

	od, err := demand.RandomOD(graph, demand.Params{
		NumPairs:  viper.GetInt("OD_PAIRS"),
		MinDemand: pkg.DEFAULT_MIN_DEMAND,
		MaxDemand: pkg.DEFAULT_MAX_DEMAND,
		Seed:      viper.GetInt64("OD_SEED"),
	})
	if err != nil {
		panic(err)
	}
	log.Info("generated synthetic demand",
		zap.Int("od_pairs", len(od)),
		zap.Float64("total_demand", demand.TotalDemand(od)),
	)

	iters := viper.GetInt("MSA_ITERS")
	alpha := viper.GetFloat64("BPR_ALPHA")
	beta := viper.GetFloat64("BPR_BETA")

	engine := assignment.NewEngine(costfunction.NewBPRFunction(alpha, beta), log)
	engine.Run(graph, od, iters)

	rows, err := assignment.TopBottlenecks(graph, viper.GetInt("TOP_BOTTLENECKS"))
	if err != nil {
		panic(err)
	}
	if err := export.WriteBottlenecks(*outDir+"/baseline_bottlenecks.csv", rows); err != nil {
		panic(err)
	}

	summary := export.Summary{
		Place:       viper.GetString("PLACE_QUERY"),
		NetworkType: viper.GetString("NETWORK_TYPE"),
		MSAIters:    iters,
		BPRAlpha:    alpha,
		BPRBeta:     beta,
		ODPairs:     len(od),
		Nodes:       graph.NumberOfNodes(),
		Edges:       graph.NumberOfEdges(),
		TSTT:        assignment.TotalSystemTravelTime(graph),
		Delay:       assignment.TotalDelay(graph),
	}
	if err := export.WriteSummary(*outDir+"/results_baseline.csv", summary); err != nil {
		panic(err)
	}

	log.Info("baseline assignment completed",
		zap.Float64("tstt", summary.TSTT),
		zap.Float64("delay", summary.Delay),
		zap.String("out", *outDir),
	)
}
