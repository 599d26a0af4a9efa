package handler

import (
	"net/http"
	"time"

	"github.com/osse101/FissureBot_Go/internal/domain"
	"github.com/osse101/FissureBot_Go/internal/fissure"
)

// Query filters accepted by GET /fissures
const (
	QueryEra      = "era"
	QueryMission  = "mission"
	QueryPlanet   = "planet"
	QueryCategory = "category"
	QueryLimit    = "limit"
)

// FissureResponse is one active fissure with its expiry spelled out.
type FissureResponse struct {
	domain.Fissure
	Expiry time.Time `json:"expiry"`
}

// DeleteCountResponse reports how many rows a bulk delete removed.
type DeleteCountResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// FissureHandler serves fissure listing and subscription endpoints.
type FissureHandler struct {
	svc fissure.Service
}

// NewFissureHandler creates a fissure handler.
func NewFissureHandler(svc fissure.Service) *FissureHandler {
	return &FissureHandler{svc: svc}
}

// HandleListFissures lists active fissures
// @Summary List active fissures
// @Description Returns the tracked fissures sorted by tier then expiry, optionally filtered
// @Tags fissures
// @Produce json
// @Param era query string false "Era, e.g. Axi"
// @Param mission query string false "Mission type substring"
// @Param planet query string false "Planet"
// @Param category query string false "Normal, SteelPath or VoidStorm"
// @Param limit query int false "Return at most this many"
// @Success 200 {array} FissureResponse
// @Router /api/v1/fissures [get]
func (h *FissureHandler) HandleListFissures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	active := fissure.FilterActive(h.svc.Active(), fissure.FilterFields{
		Era:      q.Get(QueryEra),
		Mission:  q.Get(QueryMission),
		Planet:   q.Get(QueryPlanet),
		Category: q.Get(QueryCategory),
	})

	if limit := getQueryInt(r, QueryLimit, 0); limit > 0 && limit < len(active) {
		active = active[:limit]
	}

	out := make([]FissureResponse, 0, len(active))
	for _, f := range active {
		out = append(out, FissureResponse{Fissure: f, Expiry: f.Expiry()})
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleCreateSubscription stores a fissure subscription
// @Summary Subscribe to fissures
// @Description Stores a pattern; new fissures matching it are delivered by DM or thread
// @Tags fissures
// @Accept json
// @Produce json
// @Param request body fissure.SubscribeRequest true "Subscription pattern"
// @Success 201 {object} domain.FissureSubscription
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/fissures/subscriptions [post]
func (h *FissureHandler) HandleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req fissure.SubscribeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Subscribe"); err != nil {
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, "Subscribe", err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

// HandleListSubscriptions lists a user's subscriptions
// @Summary List fissure subscriptions
// @Tags fissures
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.FissureSubscription
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/fissures/subscriptions [get]
func (h *FissureHandler) HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}

	subs, err := h.svc.ListSubscriptions(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List subscriptions", err)
		return
	}
	if subs == nil {
		subs = []domain.FissureSubscription{}
	}
	respondJSON(w, http.StatusOK, subs)
}

// HandleDeleteSubscription removes one subscription
// @Summary Unsubscribe
// @Tags fissures
// @Produce json
// @Param id path string true "Subscription ID"
// @Param user_id query string true "Owner user ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/fissures/subscriptions/{id} [delete]
func (h *FissureHandler) HandleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := GetPathParam(r, w, ParamSubscriptionID)
	if !ok {
		return
	}
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}

	if err := h.svc.Unsubscribe(r.Context(), userID, id); err != nil {
		respondServiceError(w, r, "Unsubscribe", err)
		return
	}
	loggerFor(r).Info(MsgSubscriptionDeleted, LogFieldUserID, userID, LogFieldSubscriptionID, id)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSubscriptionDeleted})
}

// HandleDeleteSubscriptions removes every subscription of a user
// @Summary Unsubscribe from everything
// @Tags fissures
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} DeleteCountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/fissures/subscriptions [delete]
func (h *FissureHandler) HandleDeleteSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, ParamUserID)
	if !ok {
		return
	}

	n, err := h.svc.UnsubscribeAll(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Unsubscribe all", err)
		return
	}
	respondJSON(w, http.StatusOK, DeleteCountResponse{Message: MsgSubscriptionsDeleted, Deleted: n})
}
