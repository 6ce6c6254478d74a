package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg"
	helper "github.com/sxm-mobility/roadflow/pkg/http/router/routerhelper"
	"github.com/sxm-mobility/roadflow/pkg/http/usecases"
)

type assignmentAPI struct {
	assignmentService AssignmentService
	log               *zap.Logger
}

func New(assignmentService AssignmentService, log *zap.Logger) *assignmentAPI {
	return &assignmentAPI{
		assignmentService: assignmentService,
		log:               log,
	}
}

func (api *assignmentAPI) Routes(group *helper.RouteGroup) {
	group.GET("/health", api.health)
	group.POST("/assignment/run", api.baseline)
	group.POST("/scenarios/run", api.scenarios)
}

func (api *assignmentAPI) health(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"status": "ok"}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func toRunParams(req runRequest) usecases.RunParams {
	p := usecases.RunParams{
		ODPairs:        req.ODPairs,
		MinDemand:      req.MinDemand,
		MaxDemand:      req.MaxDemand,
		Seed:           req.Seed,
		MSAIters:       req.MSAIters,
		BPRAlpha:       req.BPRAlpha,
		BPRBeta:        req.BPRBeta,
		TopBottlenecks: req.TopBottlenecks,
	}
	if p.ODPairs == 0 {
		p.ODPairs = pkg.DEFAULT_OD_PAIRS
	}
	if p.MinDemand == 0 {
		p.MinDemand = pkg.DEFAULT_MIN_DEMAND
	}
	if p.MaxDemand == 0 {
		p.MaxDemand = pkg.DEFAULT_MAX_DEMAND
	}
	if p.Seed == 0 {
		p.Seed = pkg.DEFAULT_OD_SEED
	}
	if p.MSAIters == 0 {
		p.MSAIters = pkg.DEFAULT_MSA_ITERS
	}
	if p.BPRAlpha == 0 {
		p.BPRAlpha = pkg.DEFAULT_BPR_ALPHA
	}
	if p.BPRBeta == 0 {
		p.BPRBeta = pkg.DEFAULT_BPR_BETA
	}
	if p.TopBottlenecks == 0 {
		p.TopBottlenecks = pkg.DEFAULT_TOP_BOTTLENECKS
	}
	return p
}

func (api *assignmentAPI) validateRequest(w http.ResponseWriter, r *http.Request, request any) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *assignmentAPI) baseline(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request runRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	res, err := api.assignmentService.RunBaseline(toRunParams(request))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewBaselineResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *assignmentAPI) scenarios(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request scenariosRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	specs := make([]usecases.ScenarioSpec, 0, len(request.Scenarios))
	for _, s := range request.Scenarios {
		specs = append(specs, usecases.ScenarioSpec{
			Name:        s.Name,
			Type:        s.Type,
			Description: s.Description,
			U:           s.U,
			V:           s.V,
			Key:         s.Key,
			Pct:         s.Pct,
			LengthM:     s.LengthM,
			SpeedKPH:    s.SpeedKPH,
			CapacityVPH: s.CapacityVPH,
		})
	}

	workers := request.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	res, err := api.assignmentService.RunScenarios(toRunParams(request.runRequest), specs, workers)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewScenariosResponse(res)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
