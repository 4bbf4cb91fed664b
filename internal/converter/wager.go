package converter

import (
	dto "wager_engine/internal/api/dto/wager"
	"wager_engine/internal/model"
)

func ToAction(req dto.ActionRequest) model.Action {
	return model.Action{
		Type: req.Action,
		Row:  req.Row,
		Col:  req.Col,
	}
}

func ToWagerResponse(snap *model.Snapshot) dto.WagerResponse {
	res := dto.WagerResponse{
		ID:        snap.Wager.ID.String(),
		Game:      string(snap.Wager.Game),
		Bet:       snap.Wager.Bet,
		Stake:     snap.Wager.Stake,
		Status:    string(snap.Wager.Status),
		StartedAt: snap.Wager.StartedAt,
		State:     snap.State,
		Actions:   toActionLogs(snap.Actions),
		Balance:   snap.Balance,
	}
	if snap.Payout != nil {
		res.Payout = &dto.PayoutResponse{
			Multiplier: snap.Payout.Multiplier,
			Amount:     snap.Payout.Amount,
			NetProfit:  snap.Payout.NetProfit,
		}
	}
	return res
}

func toActionLogs(log []model.ActionLog) []dto.ActionLog {
	out := make([]dto.ActionLog, len(log))
	for i, l := range log {
		out[i] = dto.ActionLog{
			Seq:    l.Seq,
			Action: l.Action.Type,
			Row:    l.Action.Row,
			Col:    l.Action.Col,
			At:     l.At,
		}
	}
	return out
}

func ToAccountResponse(acc *model.Account) dto.AccountResponse {
	return dto.AccountResponse{
		PlayerID:    acc.PlayerID,
		Balance:     acc.Balance,
		TotalProfit: acc.Profit.TotalProfit,
		BiggestWin:  acc.Profit.BiggestWin,
		TotalGames:  acc.Profit.TotalGames,
	}
}

func ToGameStatsResponse(stats []model.GameStats) []dto.GameStatsResponse {
	out := make([]dto.GameStatsResponse, len(stats))
	for i, s := range stats {
		out[i] = dto.GameStatsResponse{
			Game:        string(s.Game),
			TotalWagers: s.TotalWagers,
			TotalBet:    s.TotalBet,
			TotalPayout: s.TotalPayout,
			RTP:         s.RTP,
			TargetRTP:   s.TargetRTP,
			WindowRTP:   s.WindowRTP,
			WindowSize:  s.WindowSize,
			Drift:       s.Drift,
			Alerts:      toAlerts(s.Alerts),
		}
	}
	return out
}

func toAlerts(alerts []model.RTPAlert) []dto.RTPAlertResponse {
	out := make([]dto.RTPAlertResponse, len(alerts))
	for i, a := range alerts {
		out[i] = dto.RTPAlertResponse{
			At:        a.At,
			Direction: a.Direction,
			WindowRTP: a.WindowRTP,
			Profit:    a.Profit,
		}
	}
	return out
}
