package main

import (
	"context"
	"flag"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/http"
	"github.com/sxm-mobility/roadflow/pkg/http/usecases"
	"github.com/sxm-mobility/roadflow/pkg/logger"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

var (
	graphPath    = flag.String("graph", "./data/roadflow.graph", "graph file built by cmd/buildgraph")
	useRateLimit = flag.Bool("rate_limit", false, "enable per-client rate limiting")
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

	base, err := datastructure.ReadGraph(*graphPath)
	if err != nil {
		panic(err)
	}
	log.Info("loaded road network",
		zap.Int("nodes", base.NumberOfNodes()),
		zap.Int("edges", base.NumberOfEdges()),
	)

	assignmentService, err := usecases.NewAssignmentService(log, base,
		viper.GetString("PLACE_QUERY"), viper.GetString("NETWORK_TYPE"))
	if err != nil {
		panic(err)
	}

	api := http.NewServer(log)

	ctx, cancel := context.WithCancel(context.Background())

	if _, err := api.Use(ctx, log, *useRateLimit, assignmentService); err != nil {
		panic(err)
	}

	signal := http.GracefulShutdown()

	log.Info("roadflow server stopped", zap.String("signal", signal.String()))
	cancel()
}
