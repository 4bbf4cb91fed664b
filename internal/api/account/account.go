package account

import (
	"net/http"
	"strconv"
	"wager_engine/internal/api"
	dto "wager_engine/internal/api/dto/wager"
	"wager_engine/internal/converter"
	"wager_engine/internal/middleware"
	"wager_engine/internal/service"
	"wager_engine/pkg/req"
	"wager_engine/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AccountService
}

type Handler struct {
	serv service.AccountService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Account - GET /account, balance with the profit tracker
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	acc, err := h.serv.Account(r.Context(), playerID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAccountResponse(acc))
}

// Deposit - POST /account/deposit
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := h.serv.Deposit(r.Context(), playerID, payload.Amount)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// Transfer - POST /account/transfer
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.TransferRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.serv.Transfer(r.Context(), playerID, payload.To, payload.Amount)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransferResponse(t))
}

// Transfers - GET /account/transfers?limit=N
func (h *Handler) Transfers(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			resp.WriteError(w, http.StatusBadRequest, "limit must be a positive number")
			return
		}
		limit = n
	}

	transfers, err := h.serv.Transfers(r.Context(), playerID, limit)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransfersResponse(transfers))
}

// Stats - GET /games/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGameStatsResponse(h.serv.GameStats()))
}
