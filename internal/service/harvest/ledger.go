package harvest

import (
	"context"
	"fmt"
	"harvest_slots/internal/model"
	"harvest_slots/internal/repository"
	"math"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
)

// userLedger - баланс игрока в БД. Каждая операция в своей транзакции
type userLedger struct {
	userID    int
	userRepo  repository.UserRepository
	txManager trm.Manager
}

func newUserLedger(userID int, userRepo repository.UserRepository, txManager trm.Manager) *userLedger {
	return &userLedger{
		userID:    userID,
		userRepo:  userRepo,
		txManager: txManager,
	}
}

// Debit списывает ставку. Баланс не уходит в минус
func (l *userLedger) Debit(ctx context.Context, amount float64) error {
	amt, err := toDecimal(amount)
	if err != nil {
		return err
	}

	return l.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := l.userRepo.GetBalance(txCtx, l.userID)
		if err != nil {
			return err
		}
		if balance.LessThan(amt) {
			return model.ErrInsufficientBalance
		}
		return l.userRepo.UpdateBalance(txCtx, l.userID, balance.Sub(amt))
	})
}

// Credit начисляет выигрыш, возврат ставки или депозит
func (l *userLedger) Credit(ctx context.Context, amount float64) error {
	amt, err := toDecimal(amount)
	if err != nil {
		return err
	}

	return l.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := l.userRepo.GetBalance(txCtx, l.userID)
		if err != nil {
			return err
		}
		return l.userRepo.UpdateBalance(txCtx, l.userID, balance.Add(amt))
	})
}

// toDecimal - decimal.NewFromFloat паникует на NaN и бесконечностях
func toDecimal(amount float64) (decimal.Decimal, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return decimal.Zero, fmt.Errorf("%w: got %v", model.ErrInvalidAmount, amount)
	}
	return decimal.NewFromFloat(amount), nil
}
