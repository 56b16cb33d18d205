package harvest

import (
	"context"
	"fmt"
	"harvest_slots/internal/middleware"
	"harvest_slots/internal/model"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Deposit - пополнение баланса игрока
func (s *serv) Deposit(ctx context.Context, amount float64) error {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return model.ErrNoUser
	}
	if !(amount > 0) {
		return fmt.Errorf("%w: got %v", model.ErrInvalidAmount, amount)
	}

	return newUserLedger(userID, s.userRepo, s.txManager).Credit(ctx, amount)
}

// CheckData - баланс и статистика игрока
func (s *serv) CheckData(ctx context.Context) (*model.PlayerData, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, model.ErrNoUser
	}

	return s.userRepo.GetPlayerData(ctx, userID)
}

// History - последние спины игрока. limit вне 1..100 приводится к границам
func (s *serv) History(ctx context.Context, limit int) ([]model.SpinRecord, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, model.ErrNoUser
	}

	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}

	return s.spinRepo.ListSpins(ctx, userID, limit)
}
