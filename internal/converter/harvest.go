package converter

import (
	dto "harvest_slots/internal/api/dto/harvest"
	"harvest_slots/internal/model"
)

func ToSpinRequest(req dto.SpinRequest) model.SpinRequest {
	return model.SpinRequest{
		Bet:        req.Bet,
		Multiplier: req.Multiplier,
		AutoSpin:   req.AutoSpin,
	}
}

func ToSpinResponse(res model.SpinResult) dto.SpinResponse {
	return dto.SpinResponse{
		Grid:           toGrid(res.Grid),
		TotalWinAmount: res.Outcome.TotalWinAmount,
		WinningLines:   toWinLines(res.Outcome.WinningLines),
		Balance:        res.Balance.InexactFloat64(),
		Rejected:       res.Rejected,
	}
}

func ToDataResponse(data model.PlayerData) dto.DataResponse {
	return dto.DataResponse{
		Balance:      data.Balance.InexactFloat64(),
		TotalSpins:   data.TotalSpins,
		TotalWagered: data.TotalWagered.InexactFloat64(),
		TotalWon:     data.TotalWon.InexactFloat64(),
		BiggestWin:   data.BiggestWin.InexactFloat64(),
	}
}

func ToHistoryResponse(records []model.SpinRecord) dto.HistoryResponse {
	spins := make([]dto.SpinRecord, len(records))
	for i, r := range records {
		spins[i] = dto.SpinRecord{
			ID:         r.ID.String(),
			Bet:        r.Bet,
			Multiplier: r.Multiplier,
			TotalWin:   r.TotalWin,
			Lines:      toWinLines(r.Lines),
			Grid:       toGrid(r.Grid),
			CreatedAt:  r.CreatedAt,
		}
	}
	return dto.HistoryResponse{Spins: spins}
}

func ToStatsResponse(st model.HouseStats) dto.StatsResponse {
	return dto.StatsResponse{
		TotalSpins:  st.TotalSpins,
		TotalBet:    st.TotalBet,
		TotalPayout: st.TotalPayout,
		CurrentRTP:  st.CurrentRTP,
		WindowRTP:   st.WindowRTP,
		WindowSize:  st.WindowSize,
		WindowFill:  st.WindowFill,
	}
}

func ToCatalogResponse(symbols []model.SymbolInfo) dto.CatalogResponse {
	out := make([]dto.Symbol, len(symbols))
	for i, s := range symbols {
		out[i] = dto.Symbol{ID: string(s.ID), Value: s.Value}
	}
	return dto.CatalogResponse{Symbols: out}
}

// ToStreamMessage - событие спина для websocket
func ToStreamMessage(ev model.SpinEvent) dto.StreamMessage {
	return dto.StreamMessage{
		Type: "spin_resolved",
		Data: dto.SpinResolved{
			Grid:           toGrid(ev.Grid),
			TotalWinAmount: ev.Outcome.TotalWinAmount,
			WinningLines:   toWinLines(ev.Outcome.WinningLines),
			Bet:            ev.Bet,
			Multiplier:     ev.Multiplier,
			At:             ev.At,
		},
	}
}

func toGrid(g model.Grid) [][]string {
	out := make([][]string, len(g))
	for r, row := range g {
		out[r] = make([]string, len(row))
		for c, s := range row {
			out[r][c] = string(s)
		}
	}
	return out
}

func toWinLines(lines []model.WinLine) []dto.WinLine {
	result := make([]dto.WinLine, len(lines))
	for i, l := range lines {
		positions := make([][2]int, len(l.Positions))
		for j, p := range l.Positions {
			positions[j] = [2]int{p.Row, p.Col}
		}
		result[i] = dto.WinLine{
			Positions: positions,
			Symbol:    string(l.Symbol),
			Count:     l.Count,
			Direction: string(l.Direction),
			WinAmount: l.WinAmount,
		}
	}
	return result
}
