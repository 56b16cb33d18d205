package service

import (
	"context"
	"harvest_slots/internal/model"
	"time"
)

type HarvestService interface {
	Spin(ctx context.Context, req model.SpinRequest) (*model.SpinResult, error)
	Deposit(ctx context.Context, amount float64) error
	CheckData(ctx context.Context) (*model.PlayerData, error)
	History(ctx context.Context, limit int) ([]model.SpinRecord, error)
	HouseStats() model.HouseStats
	Symbols() []model.SymbolInfo

	// SubscribeSpins - подписка на завершенные спины всех игроков
	SubscribeSpins(fn func(model.SpinEvent)) (unsubscribe func())
	EvictIdle(maxIdle time.Duration) int

	Start()
	Close()
}
