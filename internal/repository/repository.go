package repository

import (
	"context"
	"harvest_slots/internal/model"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	// GetBalance внутри транзакции блокирует строку игрока до коммита
	GetBalance(ctx context.Context, id int) (decimal.Decimal, error)
	UpdateBalance(ctx context.Context, id int, balance decimal.Decimal) error

	GetPlayerData(ctx context.Context, id int) (*model.PlayerData, error)
	AddSpinTotals(ctx context.Context, id int, wagered, won decimal.Decimal) error
}

type SpinRepository interface {
	CreateSpin(ctx context.Context, rec *model.SpinRecord) error
	ListSpins(ctx context.Context, userID int, limit int) ([]model.SpinRecord, error)
}

type StatsRepository interface {
	UpdateState(bet, payout float64)
	HouseStats() model.HouseStats
}
