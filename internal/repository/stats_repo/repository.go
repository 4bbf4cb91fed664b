package stats_repo

import (
	"log"
	"math"
	"sort"
	"sync"
	"time"
	"wager_engine/internal/model"
	repoModel "wager_engine/internal/repository/stats_repo/model"
)

const (
	// periodWagersToCheck drift is checked every N settled wagers of a game
	periodWagersToCheck = 25
	// criticalRTPDeviation percentage points off target that raise an alert
	criticalRTPDeviation = 10.0
	// normalRTPDeviation back under this the drift mode is cleared
	normalRTPDeviation = 5.0
)

// StateRepo - in-memory settlement observer: per-game RTP and per-player profit
type StateRepo struct {
	mtx        sync.RWMutex
	windowSize int
	targetRTP  float64
	targets    map[model.GameKind]float64
	games      map[model.GameKind]*repoModel.GameState
	players    map[int]*repoModel.PlayerState
}

func NewStatsRepository(windowSize int, targetRTP float64) *StateRepo {
	return &StateRepo{
		windowSize: windowSize,
		targetRTP:  targetRTP,
		targets:    make(map[model.GameKind]float64),
		games:      make(map[model.GameKind]*repoModel.GameState),
		players:    make(map[int]*repoModel.PlayerState),
	}
}

// WithTargets - per-game RTP targets in percent, games left out keep the
// default target
func (r *StateRepo) WithTargets(targets map[model.GameKind]float64) *StateRepo {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for game, target := range targets {
		r.targets[game] = target
	}
	return r
}

func (r *StateRepo) target(game model.GameKind) float64 {
	if t, ok := r.targets[game]; ok {
		return t
	}
	return r.targetRTP
}

// Record - update totals after a settled wager
func (r *StateRepo) Record(s *model.Settlement) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.recordGame(s.Wager.Game, s.Wager.Stake, s.Payout.Amount)
	r.recordPlayer(s.Wager.PlayerID, s.Payout.NetProfit)
}

func (r *StateRepo) recordGame(game model.GameKind, stake, payout int64) {
	st, ok := r.games[game]
	if !ok {
		st = &repoModel.GameState{
			TargetRTP:  r.target(game),
			WindowSize: r.windowSize,
			Window:     make([]repoModel.WagerResult, 0, r.windowSize),
		}
		r.games[game] = st
	}

	st.TotalWagers++
	st.TotalBet += stake
	st.TotalPayout += payout
	if st.TotalBet > 0 {
		st.CurrentRTP = float64(st.TotalPayout) / float64(st.TotalBet) * 100
	}

	st.Window = append(st.Window, repoModel.WagerResult{Bet: stake, Payout: payout})
	if len(st.Window) > st.WindowSize {
		st.Window = st.Window[1:]
	}

	var windowBet, windowPayout int64
	for _, w := range st.Window {
		windowBet += w.Bet
		windowPayout += w.Payout
	}
	if windowBet > 0 {
		st.WindowRTP = float64(windowPayout) / float64(windowBet) * 100
	} else {
		st.WindowRTP = 0
	}

	if st.TotalWagers%periodWagersToCheck == 0 {
		checkDrift(game, st)
	}
}

// checkDrift - raise an alert once when the window RTP leaves the critical
// band, clear it once it is back near the target
func checkDrift(game model.GameKind, st *repoModel.GameState) {
	diff := math.Abs(st.WindowRTP - st.TargetRTP)

	if diff > criticalRTPDeviation {
		direction := "low"
		if st.WindowRTP > st.TargetRTP {
			direction = "high"
		}
		if st.DriftMode && st.DriftDirection == direction {
			return
		}
		st.DriftMode = true
		st.DriftDirection = direction
		st.Alerts = append(st.Alerts, repoModel.DriftAlert{
			Timestamp: time.Now(),
			Direction: direction,
			WindowRTP: st.WindowRTP,
			Profit:    st.TotalBet - st.TotalPayout,
		})
		log.Printf("[RTP DRIFT] %s: window RTP %.1f%% is %s, target %.1f%%", game, st.WindowRTP, direction, st.TargetRTP)
		return
	}

	if st.DriftMode && diff < normalRTPDeviation {
		st.DriftMode = false
		st.DriftDirection = ""
		log.Printf("[RTP DRIFT] %s: window RTP back to %.1f%%", game, st.WindowRTP)
	}
}

func (r *StateRepo) recordPlayer(playerID int, netProfit int64) {
	p, ok := r.players[playerID]
	if !ok {
		p = &repoModel.PlayerState{}
		r.players[playerID] = p
	}
	p.TotalGames++
	p.TotalProfit += netProfit
	if netProfit > p.BiggestWin {
		p.BiggestWin = netProfit
	}
}

// GameStats - snapshot of every game that has settled wagers, sorted by name
func (r *StateRepo) GameStats() []model.GameStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]model.GameStats, 0, len(r.games))
	for game, st := range r.games {
		alerts := make([]model.RTPAlert, len(st.Alerts))
		for i, a := range st.Alerts {
			alerts[i] = model.RTPAlert{
				At:        a.Timestamp,
				Direction: a.Direction,
				WindowRTP: a.WindowRTP,
				Profit:    a.Profit,
			}
		}
		out = append(out, model.GameStats{
			Game:        game,
			TotalWagers: st.TotalWagers,
			TotalBet:    st.TotalBet,
			TotalPayout: st.TotalPayout,
			RTP:         st.CurrentRTP,
			TargetRTP:   st.TargetRTP,
			WindowRTP:   st.WindowRTP,
			WindowSize:  len(st.Window),
			Drift:       st.DriftDirection,
			Alerts:      alerts,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Game < out[j].Game })
	return out
}

func (r *StateRepo) PlayerStats(playerID int) model.PlayerStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return model.PlayerStats{}
	}
	return model.PlayerStats{
		TotalProfit: p.TotalProfit,
		BiggestWin:  p.BiggestWin,
		TotalGames:  p.TotalGames,
	}
}

// GameState - copy of the raw state of one game, alerts included
func (r *StateRepo) GameState(game model.GameKind) (repoModel.GameState, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.games[game]
	if !ok {
		return repoModel.GameState{}, false
	}
	cp := *st
	cp.Window = append([]repoModel.WagerResult(nil), st.Window...)
	cp.Alerts = append([]repoModel.DriftAlert(nil), st.Alerts...)
	return cp, true
}
