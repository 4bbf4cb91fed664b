package api

import (
	"errors"
	"log"
	"net/http"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"
	"wager_engine/pkg/resp"
)

// WriteError maps service errors onto HTTP statuses
func WriteError(w http.ResponseWriter, err error) {
	var (
		validation *model.ValidationError
		transition *model.TransitionError
		settlement *model.SettlementError
	)

	switch {
	case errors.As(err, &validation), errors.Is(err, model.ErrUnknownGame):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &transition), errors.Is(err, model.ErrWagerInProgress):
		resp.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrInsufficientFunds):
		resp.WriteError(w, http.StatusPaymentRequired, err.Error())
	case errors.As(err, &settlement):
		// the wager stays resolved, the client may retry the settlement
		log.Printf("settlement failed: %v", err)
		resp.WriteError(w, http.StatusInternalServerError, "settlement failed, retry later")
	case errors.Is(err, model.ErrWagerNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, rng.ErrUnavailable):
		log.Printf("rng unavailable: %v", err)
		resp.WriteError(w, http.StatusServiceUnavailable, "randomness source unavailable")
	default:
		log.Printf("internal error: %v", err)
		resp.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
