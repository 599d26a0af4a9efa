package handler

import (
	"net/http"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/simulation"
)

// PoolRequest is one relic pool in a request body.
type PoolRequest struct {
	Relics     []string `json:"relics" validate:"required,min=1,max=16,dive,required,max=32"`
	Refinement string   `json:"refinement" validate:"refinement"`
}

func (p PoolRequest) spec() simulation.PoolSpec {
	return simulation.PoolSpec{Relics: p.Relics, Refinement: p.Refinement}
}

func poolSpecs(pools []PoolRequest) []simulation.PoolSpec {
	out := make([]simulation.PoolSpec, len(pools))
	for i, p := range pools {
		out[i] = p.spec()
	}
	return out
}

// SimulateRequest is the body of POST /relics/simulate.
type SimulateRequest struct {
	UserID         string        `json:"user_id" validate:"max=64"`
	Primary        PoolRequest   `json:"primary"`
	Style          string        `json:"style" validate:"required,runstyle"`
	Cycles         int           `json:"cycles" validate:"required,min=1,max=100000"`
	Offcycle       []PoolRequest `json:"offcycle" validate:"max=4,dive"`
	Mode           string        `json:"mode" validate:"prioritymode"`
	MinSetPrice    *float64      `json:"min_set_price" validate:"omitempty,min=0"`
	IncludeMissing bool          `json:"include_missing"`
	Verbose        *bool         `json:"verbose"`
	Seed           uint64        `json:"seed"`
}

// SimulateResponse is a finished simulation ready for display.
type SimulateResponse struct {
	Style       domain.RunStyle     `json:"style"`
	Cycles      int                 `json:"cycles"`
	Runs        int                 `json:"runs"`
	Signature   string              `json:"signature"`
	Mode        domain.PriorityMode `json:"mode"`
	MinSetPrice float64             `json:"min_set_price"`
	Overridden  bool                `json:"overridden"`
	Seed        uint64              `json:"seed"`
	Lines       []simulation.Line   `json:"lines"`
	Text        []string            `json:"text"`
	Extra       []string            `json:"extra"`
	Totals      simulation.Totals   `json:"totals"`
	Screens     []string            `json:"screens,omitempty"`
	ElapsedMS   int64               `json:"elapsed_ms"`
}

// PriorityRequest is the body of POST /relics/priority.
type PriorityRequest struct {
	UserID      string        `json:"user_id" validate:"max=64"`
	Pools       []PoolRequest `json:"pools" validate:"required,min=1,max=5,dive"`
	Mode        string        `json:"mode" validate:"prioritymode"`
	MinSetPrice *float64      `json:"min_set_price" validate:"omitempty,min=0"`
}

// OverrideRequest is the body of PUT and DELETE /relics/priority/override.
type OverrideRequest struct {
	UserID string         `json:"user_id" validate:"required,max=64"`
	Pools  []PoolRequest  `json:"pools" validate:"required,min=1,max=5,dive"`
	Ranks  map[string]int `json:"ranks" validate:"omitempty,max=64"`
}

// SimConfigRequest patches a user's saved simulation settings. Unset
// fields keep their current value.
type SimConfigRequest struct {
	UserID            string   `json:"user_id" validate:"required,max=64"`
	ShowPlatPerHour   *bool    `json:"show_plat_per_hour"`
	ShowDucatPerHour  *bool    `json:"show_ducat_per_hour"`
	ShowPerCycle      *bool    `json:"show_per_cycle"`
	ShowPerRun        *bool    `json:"show_per_run"`
	ShowTraces        *bool    `json:"show_traces"`
	ShowTraceEff      *bool    `json:"show_trace_efficiency"`
	Verbose           *bool    `json:"verbose"`
	MinutesPerMission *float64 `json:"minutes_per_mission" validate:"omitempty,gt=0,max=120"`
	MinSetPrice       *float64 `json:"min_set_price" validate:"omitempty,min=0"`
}

func (c SimConfigRequest) apply(cfg *domain.SimConfig) {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&cfg.ShowPlatPerHour, c.ShowPlatPerHour)
	setBool(&cfg.ShowDucatPerHour, c.ShowDucatPerHour)
	setBool(&cfg.ShowPerCycle, c.ShowPerCycle)
	setBool(&cfg.ShowPerRun, c.ShowPerRun)
	setBool(&cfg.ShowTraces, c.ShowTraces)
	setBool(&cfg.ShowTraceEff, c.ShowTraceEff)
	setBool(&cfg.Verbose, c.Verbose)
	if c.MinutesPerMission != nil {
		cfg.MinutesPerMission = *c.MinutesPerMission
	}
	if c.MinSetPrice != nil {
		cfg.MinSetPrice = *c.MinSetPrice
	}
}

// RelicHandler serves relic simulation and priority endpoints.
type RelicHandler struct {
	svc simulation.Service
}

// NewRelicHandler creates a relic handler.
func NewRelicHandler(svc simulation.Service) *RelicHandler {
	return &RelicHandler{svc: svc}
}

// HandleSimulate runs a relic simulation
// @Summary Simulate relic runs
// @Description Samples reward screens for a run style and reports the kept rewards with platinum and ducat totals
// @Tags relics
// @Accept json
// @Produce json
// @Param request body SimulateRequest true "Simulation parameters"
// @Success 200 {object} SimulateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/relics/simulate [post]
func (h *RelicHandler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Simulate"); err != nil {
		return
	}

	run, err := h.svc.Simulate(r.Context(), simulation.Request{
		UserID:         req.UserID,
		Primary:        req.Primary.spec(),
		Style:          req.Style,
		Cycles:         req.Cycles,
		Offcycle:       poolSpecs(req.Offcycle),
		Mode:           req.Mode,
		MinSetPrice:    req.MinSetPrice,
		IncludeMissing: req.IncludeMissing,
		Verbose:        req.Verbose,
		Seed:           req.Seed,
	})
	if err != nil {
		respondServiceError(w, r, "Simulate", err)
		return
	}

	respondJSON(w, http.StatusOK, newSimulateResponse(run))
}

func newSimulateResponse(run *simulation.Run) SimulateResponse {
	resp := SimulateResponse{
		Style:       run.Style,
		Cycles:      run.Cycles,
		Runs:        run.Runs,
		Signature:   run.Signature,
		Mode:        run.Mode,
		MinSetPrice: run.MinSetPrice,
		Overridden:  run.Overridden,
		Seed:        run.Seed,
		ElapsedMS:   run.Elapsed.Milliseconds(),
	}
	if agg := run.Aggregation; agg != nil {
		resp.Lines = agg.Lines
		resp.Text = agg.LineStrings()
		resp.Extra = agg.Extra
		resp.Totals = agg.Totals
	}
	if run.Result != nil && len(run.Result.Screens) > 0 {
		resp.Screens = simulation.FormatScreens(run.Result.Screens)
	}
	return resp
}

// HandleResolvePriority returns the drop order for a set of pools
// @Summary Resolve drop priority
// @Description Returns the ranked drop order a simulation over the pools would use
// @Tags relics
// @Accept json
// @Produce json
// @Param request body PriorityRequest true "Pools and mode"
// @Success 200 {object} simulation.PriorityResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/relics/priority [post]
func (h *RelicHandler) HandleResolvePriority(w http.ResponseWriter, r *http.Request) {
	var req PriorityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve priority"); err != nil {
		return
	}

	result, err := h.svc.ResolvePriority(r.Context(), simulation.PriorityRequest{
		UserID:      req.UserID,
		Pools:       poolSpecs(req.Pools),
		Mode:        req.Mode,
		MinSetPrice: req.MinSetPrice,
	})
	if err != nil {
		respondServiceError(w, r, "Resolve priority", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleSaveOverride stores a user's own drop ranking
// @Summary Save priority override
// @Description Saves a per-user ranking for the exact pools; auto-mode simulations over them use it
// @Tags relics
// @Accept json
// @Produce json
// @Param request body OverrideRequest true "Pools and ranks"
// @Success 200 {object} simulation.PriorityResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/relics/priority/override [put]
func (h *RelicHandler) HandleSaveOverride(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save override"); err != nil {
		return
	}
	if len(req.Ranks) == 0 {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: map[string]string{"ranks": "This field is required"},
		})
		return
	}

	result, err := h.svc.SavePriorityOverride(r.Context(), req.UserID, poolSpecs(req.Pools), req.Ranks)
	if err != nil {
		respondServiceError(w, r, "Save override", err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleDeleteOverride removes a user's saved ranking
// @Summary Delete priority override
// @Tags relics
// @Accept json
// @Produce json
// @Param request body OverrideRequest true "Pools"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/relics/priority/override [delete]
func (h *RelicHandler) HandleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete override"); err != nil {
		return
	}

	if err := h.svc.DeletePriorityOverride(r.Context(), req.UserID, poolSpecs(req.Pools)); err != nil {
		respondServiceError(w, r, "Delete override", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgOverrideDeleted})
}

// HandleGetSimConfig returns a user's simulation settings
// @Summary Get simulation settings
// @Tags relics
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.SimConfig
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/relics/config [get]
func (h *RelicHandler) HandleGetSimConfig(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}

	cfg, err := h.svc.GetSimConfig(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get sim config", err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// HandleSaveSimConfig patches a user's simulation settings
// @Summary Update simulation settings
// @Description Applies the set fields over the user's current settings
// @Tags relics
// @Accept json
// @Produce json
// @Param request body SimConfigRequest true "Settings to change"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/relics/config [put]
func (h *RelicHandler) HandleSaveSimConfig(w http.ResponseWriter, r *http.Request) {
	var req SimConfigRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save sim config"); err != nil {
		return
	}

	cfg, err := h.svc.GetSimConfig(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, "Save sim config", err)
		return
	}
	req.apply(&cfg)

	if err := h.svc.SaveSimConfig(r.Context(), cfg); err != nil {
		respondServiceError(w, r, "Save sim config", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgSimConfigSaved, Data: cfg})
}
