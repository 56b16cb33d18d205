package harvest

import (
	"context"
	"fmt"
	"harvest_slots/internal/middleware"
	"harvest_slots/internal/model"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Spin выполняет спин игрока из контекста
func (s *serv) Spin(ctx context.Context, req model.SpinRequest) (*model.SpinResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, model.ErrNoUser
	}

	// Автоспин без явного множителя играет с множителем из конфига
	multiplier := req.Multiplier
	if multiplier == 0 {
		multiplier = 1
		if req.AutoSpin {
			multiplier = s.cfg.AutoSpinMultiplier()
		}
	}

	if err := ValidateStake(req.Bet, multiplier); err != nil {
		return nil, err
	}
	if req.Bet > s.cfg.MaxBet() {
		return nil, fmt.Errorf("%w: max %v", model.ErrBetTooHigh, s.cfg.MaxBet())
	}
	if multiplier > s.cfg.MaxMultiplier() {
		return nil, fmt.Errorf("%w: max %v", model.ErrInvalidMultiplier, s.cfg.MaxMultiplier())
	}

	m, err := s.machineFor(userID)
	if err != nil {
		return nil, err
	}

	rep, err := m.spin(ctx, req.Bet, multiplier)
	if err != nil {
		return nil, err
	}

	// Спин уже проведен по балансу, ошибка чтения не отменяет результат
	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("failed to read balance after spin")
		balance = decimal.Zero
	}

	if rep.status == spinResolved {
		log.WithFields(log.Fields{
			"user_id":    userID,
			"bet":        req.Bet,
			"multiplier": multiplier,
			"total_win":  rep.outcome.TotalWinAmount,
			"lines":      len(rep.outcome.WinningLines),
		}).Debug("spin resolved")
	}

	return &model.SpinResult{
		Grid:     rep.grid,
		Outcome:  rep.outcome,
		Balance:  balance,
		Rejected: rep.status == spinRejected,
	}, nil
}
