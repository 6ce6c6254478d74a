package controllers

import (
	"github.com/sxm-mobility/roadflow/pkg/assignment"
	"github.com/sxm-mobility/roadflow/pkg/export"
	"github.com/sxm-mobility/roadflow/pkg/http/usecases"
)

type runRequest struct {
	ODPairs        int     `json:"od_pairs" validate:"omitempty,min=0"`
	MinDemand      float64 `json:"min_demand" validate:"omitempty,min=0"`
	MaxDemand      float64 `json:"max_demand" validate:"omitempty,min=0"`
	Seed           int64   `json:"seed"`
	MSAIters       int     `json:"msa_iters" validate:"omitempty,min=1"`
	BPRAlpha       float64 `json:"bpr_alpha" validate:"omitempty,min=0"`
	BPRBeta        float64 `json:"bpr_beta" validate:"omitempty,min=0"`
	TopBottlenecks int     `json:"top_bottlenecks" validate:"omitempty,min=0"`
}

type scenarioSpecRequest struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=increase_capacity closure add_connector"`
	Description string  `json:"description"`
	U           int64   `json:"u"`
	V           int64   `json:"v"`
	Key         int32   `json:"key"`
	Pct         float64 `json:"pct"`
	LengthM     float64 `json:"length_m" validate:"omitempty,min=0"`
	SpeedKPH    float64 `json:"speed_kph" validate:"omitempty,min=0"`
	CapacityVPH float64 `json:"capacity_vph" validate:"omitempty,min=0"`
}

type scenariosRequest struct {
	runRequest
	Scenarios []scenarioSpecRequest `json:"scenarios" validate:"required,min=1,dive"`
	Workers   int                   `json:"workers" validate:"omitempty,min=1"`
}

type baselineResponse struct {
	Summary     export.Summary             `json:"summary"`
	Bottlenecks []assignment.BottleneckRow `json:"bottlenecks"`
	Stats       assignmentStatsResponse    `json:"stats"`
}

type assignmentStatsResponse struct {
	AssignedPairs    int `json:"assigned_pairs"`
	MissingEndpoints int `json:"missing_endpoints"`
	Unreachable      int `json:"unreachable"`
}

func NewBaselineResponse(res *usecases.BaselineResult) baselineResponse {
	return baselineResponse{
		Summary:     res.Summary,
		Bottlenecks: res.Bottlenecks,
		Stats: assignmentStatsResponse{
			AssignedPairs:    res.Stats.AssignedPairs,
			MissingEndpoints: res.Stats.MissingEndpoints,
			Unreachable:      res.Stats.Unreachable,
		},
	}
}

type scenariosResponse struct {
	BaselineTSTT  float64              `json:"baseline_tstt"`
	BaselineDelay float64              `json:"baseline_delay"`
	Results       []export.ScenarioRow `json:"results"`
}

func NewScenariosResponse(res *usecases.ScenarioRunResult) scenariosResponse {
	return scenariosResponse{
		BaselineTSTT:  res.Baseline.TSTT,
		BaselineDelay: res.Baseline.Delay,
		Results:       res.Rows,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
