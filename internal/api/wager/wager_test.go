package wager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	dto "wager_engine/internal/api/dto/wager"
	"wager_engine/internal/middleware"
	"wager_engine/internal/model"
	"wager_engine/internal/rng"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type stubService struct {
	err      error
	lastBet  int64
	lastGame model.GameKind
	lastAct  model.Action
}

func (s *stubService) snapshot(id uuid.UUID) *model.Snapshot {
	balance := int64(109)
	return &model.Snapshot{
		Wager: model.Wager{
			ID:        id,
			PlayerID:  1,
			Game:      model.GameDice,
			Bet:       10,
			Stake:     10,
			StartedAt: time.Now(),
			Status:    model.WagerSettled,
		},
		State:   map[string]any{"roll": 49.99},
		Payout:  &model.PayoutResult{Multiplier: 1.98, Amount: 19, NetProfit: 9},
		Balance: &balance,
	}
}

func (s *stubService) StartWager(_ context.Context, _ int, game model.GameKind, bet int64, _ map[string]any) (*model.Snapshot, error) {
	s.lastGame, s.lastBet = game, bet
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot(uuid.New()), nil
}

func (s *stubService) Act(_ context.Context, _ int, id uuid.UUID, action model.Action) (*model.Snapshot, error) {
	s.lastAct = action
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot(id), nil
}

func (s *stubService) GetState(_ context.Context, _ int, id uuid.UUID) (*model.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot(id), nil
}

func (s *stubService) Settle(_ context.Context, _ int, id uuid.UUID) (*model.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot(id), nil
}

func (s *stubService) RecoverOpen(context.Context) (int, error) { return 0, s.err }

func newRouter(serv *stubService) chi.Router {
	h := NewHandler(HandlerDeps{Serv: serv})
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), 1)))
		})
	})
	r.Post("/wagers", h.Start)
	r.Get("/wagers/{id}", h.Get)
	r.Post("/wagers/{id}/actions", h.Act)
	r.Post("/wagers/{id}/settle", h.Settle)
	return r
}

func TestStartWager(t *testing.T) {
	serv := &stubService{}
	router := newRouter(serv)

	body := `{"game":"dice","bet":10,"params":{"target":50}}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wagers", strings.NewReader(body)))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if serv.lastGame != model.GameDice || serv.lastBet != 10 {
		t.Fatalf("service got %s/%d", serv.lastGame, serv.lastBet)
	}

	var res dto.WagerResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Payout == nil || res.Payout.Amount != 19 || res.Balance == nil || *res.Balance != 109 {
		t.Fatalf("response = %+v", res)
	}
}

func TestActDecodesAction(t *testing.T) {
	serv := &stubService{}
	router := newRouter(serv)

	id := uuid.New()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wagers/"+id.String()+"/actions",
		strings.NewReader(`{"action":"reveal","row":2,"col":3}`)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if serv.lastAct != (model.Action{Type: "reveal", Row: 2, Col: 3}) {
		t.Fatalf("action = %+v", serv.lastAct)
	}
}

func TestErrorStatuses(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{model.NewValidationError("bet", "too big"), http.StatusBadRequest},
		{fmt.Errorf("start dice: %w", model.NewValidationError("target", "bad")), http.StatusBadRequest},
		{fmt.Errorf("%w: %q", model.ErrUnknownGame, "roulette"), http.StatusBadRequest},
		{&model.TransitionError{State: "busted", Action: "reveal"}, http.StatusConflict},
		{model.ErrWagerInProgress, http.StatusConflict},
		{&model.SettlementError{WagerID: "x", Err: model.ErrInsufficientFunds}, http.StatusPaymentRequired},
		{&model.SettlementError{WagerID: "x", Err: errors.New("conn reset by peer")}, http.StatusInternalServerError},
		{fmt.Errorf("transfer: %w", model.ErrInsufficientFunds), http.StatusPaymentRequired},
		{model.ErrWagerNotFound, http.StatusNotFound},
		{fmt.Errorf("start dice: %w", rng.ErrUnavailable), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		router := newRouter(&stubService{err: tc.err})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wagers/"+uuid.NewString(), nil))
		if w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
	}
}

func TestBadRequests(t *testing.T) {
	router := newRouter(&stubService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/wagers/not-a-uuid", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/wagers", strings.NewReader(`{"game":`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("broken body: status = %d", w.Code)
	}
}

func TestMissingPlayer(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &stubService{}})
	w := httptest.NewRecorder()
	h.Start(w, httptest.NewRequest(http.MethodPost, "/wagers", strings.NewReader(`{}`)))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}
