package converter

import (
	"sort"
	dto "wager_engine/internal/api/dto/wager"
	"wager_engine/internal/config"
	"wager_engine/internal/games"
	"wager_engine/internal/model"
)

func ToTransferResponse(t *model.Transfer) dto.TransferResponse {
	balance := t.Balance
	res := toTransfer(*t)
	res.Balance = &balance
	return res
}

func ToTransfersResponse(transfers []model.Transfer) []dto.TransferResponse {
	out := make([]dto.TransferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = toTransfer(t)
	}
	return out
}

func toTransfer(t model.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:        t.ID.String(),
		From:      t.From,
		To:        t.To,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}

func ToGamesResponse(kinds []model.GameKind, cases []config.CaseSettings, tiers []games.PlinkoTierInfo) dto.GamesResponse {
	res := dto.GamesResponse{
		Games:  make([]string, len(kinds)),
		Cases:  make([]dto.CaseResponse, len(cases)),
		Plinko: make([]dto.PlinkoTierResponse, len(tiers)),
	}
	for i, k := range kinds {
		res.Games[i] = string(k)
	}
	sort.Strings(res.Games)

	for i, c := range cases {
		items := make([]dto.CaseItemResponse, len(c.Items))
		for j, it := range c.Items {
			items[j] = dto.CaseItemResponse{Name: it.Name, Value: it.Value, Chance: it.Chance, Rarity: it.Rarity}
		}
		res.Cases[i] = dto.CaseResponse{ID: c.ID, Name: c.Name, Price: c.Price, Items: items}
	}
	for i, t := range tiers {
		res.Plinko[i] = dto.PlinkoTierResponse{Name: t.Name, Rows: t.Rows, Multipliers: t.Multipliers, Default: t.Default}
	}
	return res
}
