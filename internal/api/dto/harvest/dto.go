package harvest

import "time"

type SpinRequest struct {
	Bet        float64 `json:"bet"`        // Ставка (>0, не выше max_bet)
	Multiplier float64 `json:"multiplier"` // Множитель (>=1). 0 - по умолчанию
	AutoSpin   bool    `json:"auto_spin"`  // Автоспин без множителя играет с auto_spin_multiplier
}

type SpinResponse struct {
	Grid           [][]string `json:"grid"`             // grid[row][col], ID символов
	TotalWinAmount float64    `json:"total_win_amount"` // Сумма по всем линиям
	WinningLines   []WinLine  `json:"winning_lines"`    // Порядок: строки, столбцы, ↘, ↙
	Balance        float64    `json:"balance"`          // Баланс после спина
	Rejected       bool       `json:"rejected"`         // Автомат был занят
}

type WinLine struct {
	Positions [][2]int `json:"positions"` // [row, col]
	Symbol    string   `json:"symbol"`
	Count     int      `json:"count"`
	Direction string   `json:"direction"`
	WinAmount float64  `json:"win_amount"`
}

type DepositRequest struct {
	Amount float64 `json:"amount"` // Сумма депозита
}

type DataResponse struct {
	Balance      float64 `json:"balance"`
	TotalSpins   int64   `json:"total_spins"`
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
	BiggestWin   float64 `json:"biggest_win"`
}

type HistoryResponse struct {
	Spins []SpinRecord `json:"spins"`
}

type SpinRecord struct {
	ID         string     `json:"id"`
	Bet        float64    `json:"bet"`
	Multiplier float64    `json:"multiplier"`
	TotalWin   float64    `json:"total_win"`
	Lines      []WinLine  `json:"lines"`
	Grid       [][]string `json:"grid"`
	CreatedAt  time.Time  `json:"created_at"`
}

type StatsResponse struct {
	TotalSpins  int     `json:"total_spins"`
	TotalBet    float64 `json:"total_bet"`
	TotalPayout float64 `json:"total_payout"`
	CurrentRTP  float64 `json:"current_rtp"`
	WindowRTP   float64 `json:"window_rtp"`
	WindowSize  int     `json:"window_size"`
	WindowFill  int     `json:"window_fill"`
}

type Symbol struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

type CatalogResponse struct {
	Symbols []Symbol `json:"symbols"`
}

// StreamMessage - сообщение websocket-канала
type StreamMessage struct {
	Type string       `json:"type"`
	Data SpinResolved `json:"data"`
}

type SpinResolved struct {
	Grid           [][]string `json:"grid"`
	TotalWinAmount float64    `json:"total_win_amount"`
	WinningLines   []WinLine  `json:"winning_lines"`
	Bet            float64    `json:"bet"`
	Multiplier     float64    `json:"multiplier"`
	At             time.Time  `json:"at"`
}
