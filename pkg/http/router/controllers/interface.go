package controllers

import (
	"github.com/sxm-mobility/roadflow/pkg/http/usecases"
)

type AssignmentService interface {
	RunBaseline(p usecases.RunParams) (*usecases.BaselineResult, error)
	RunScenarios(p usecases.RunParams, specs []usecases.ScenarioSpec, workers int) (*usecases.ScenarioRunResult, error)
}
