package wager

import (
	"net/http"
	"wager_engine/internal/api"
	dto "wager_engine/internal/api/dto/wager"
	"wager_engine/internal/converter"
	"wager_engine/internal/middleware"
	"wager_engine/internal/model"
	"wager_engine/internal/service"
	"wager_engine/pkg/req"
	"wager_engine/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type HandlerDeps struct {
	Serv service.WagerService
}

type Handler struct {
	serv service.WagerService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Start - POST /wagers
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.StartWagerRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.serv.StartWager(r.Context(), playerID, model.GameKind(payload.Game), payload.Bet, payload.Params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToWagerResponse(snap))
}

// Get - GET /wagers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	playerID, wagerID, ok := h.target(w, r)
	if !ok {
		return
	}

	snap, err := h.serv.GetState(r.Context(), playerID, wagerID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWagerResponse(snap))
}

// Act - POST /wagers/{id}/actions
func (h *Handler) Act(w http.ResponseWriter, r *http.Request) {
	playerID, wagerID, ok := h.target(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.ActionRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.serv.Act(r.Context(), playerID, wagerID, converter.ToAction(payload))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWagerResponse(snap))
}

// Settle - POST /wagers/{id}/settle, retry of a failed settlement
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	playerID, wagerID, ok := h.target(w, r)
	if !ok {
		return
	}

	snap, err := h.serv.Settle(r.Context(), playerID, wagerID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWagerResponse(snap))
}

func (h *Handler) target(w http.ResponseWriter, r *http.Request) (int, uuid.UUID, bool) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return 0, uuid.Nil, false
	}

	wagerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid wager id")
		return 0, uuid.Nil, false
	}

	return playerID, wagerID, true
}
