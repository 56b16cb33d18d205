package harvest

import (
	"fmt"
	"harvest_slots/internal/model"
	"math"
)

// LineWin - выплата по одной линии: bet * multiplier * (value/100) * count.
// Без округления, форматирование остается на стороне клиента
func LineWin(bet, multiplier float64, value, count int) float64 {
	return bet * multiplier * (float64(value) / 100) * float64(count)
}

// ValidateStake Отсекает NaN и бесконечности вместе с неположительными значениями
func ValidateStake(bet, multiplier float64) error {
	if !(bet > 0) || math.IsInf(bet, 0) {
		return fmt.Errorf("%w: got %v", model.ErrInvalidBet, bet)
	}
	if !(multiplier >= 1) || math.IsInf(multiplier, 0) {
		return fmt.Errorf("%w: got %v", model.ErrInvalidMultiplier, multiplier)
	}
	return nil
}

// CalculateWinnings находит линии на поле и считает по ним выплату
func (e *Engine) CalculateWinnings(grid model.Grid, bet, multiplier float64) (model.SpinOutcome, error) {
	if err := ValidateStake(bet, multiplier); err != nil {
		return model.ZeroOutcome(), err
	}
	if err := grid.Validate(MinGridSize); err != nil {
		return model.ZeroOutcome(), err
	}

	lines := FindWinningLines(grid)
	total := 0.0
	for i := range lines {
		value, ok := e.catalog.Value(lines[i].Symbol)
		if !ok {
			return model.ZeroOutcome(), fmt.Errorf("%w: %q", model.ErrUnknownSymbol, lines[i].Symbol)
		}
		lines[i].WinAmount = LineWin(bet, multiplier, value, lines[i].Count)
		total += lines[i].WinAmount
	}
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return model.ZeroOutcome(), fmt.Errorf("%w: bet %v x%v", ErrPayoutOverflow, bet, multiplier)
	}

	return model.SpinOutcome{
		TotalWinAmount: total,
		WinningLines:   lines,
	}, nil
}
