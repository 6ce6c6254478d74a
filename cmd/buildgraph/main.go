package main

import (
	"context"
	"flag"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg"
	"github.com/sxm-mobility/roadflow/pkg/logger"
	"github.com/sxm-mobility/roadflow/pkg/network"
	"github.com/sxm-mobility/roadflow/pkg/osmparser"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

var (
	pbfPath = flag.String("pbf", "./data/map.osm.pbf", "openstreetmap pbf file to ingest")
	outPath = flag.String("out", "./data/roadflow.graph", "output graph file")
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
	viper.SetDefault("DEFAULT_SPEED_KPH", pkg.DEFAULT_SPEED_KPH)
	viper.SetDefault("DEFAULT_LANE_CAPACITY_VPH", pkg.DEFAULT_LANE_CAPACITY_VPH)

	parser := osmparser.NewParser(log)
	graph, err := parser.Parse(context.Background(), *pbfPath)
	if err != nil {
		panic(err)
	}

	network.AddFreeflowTimeAndCapacity(graph, network.InitializerParams{
		DefaultSpeedKPH:    viper.GetFloat64("DEFAULT_SPEED_KPH"),
		DefaultCapacityVPH: viper.GetFloat64("DEFAULT_LANE_CAPACITY_VPH"),
	})

	if err := graph.WriteGraph(*outPath); err != nil {
		panic(err)
	}

	log.Info("graph build completed",
		zap.String("out", *outPath),
		zap.Int("nodes", graph.NumberOfNodes()),
		zap.Int("edges", graph.NumberOfEdges()),
	)
}
