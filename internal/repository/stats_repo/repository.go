package stats_repo

import (
	"harvest_slots/internal/model"
	repoModel "harvest_slots/internal/repository/stats_repo/model"
	"sync"
)

// DefaultWindowSize Размер окна, если в конфиге не задан
const DefaultWindowSize = 500

// StateRepo Хранит статистику зала в памяти
type StateRepo struct {
	mtx   sync.RWMutex
	state repoModel.HouseState
}

// NewStatsRepository Конструктор с пустым состоянием
func NewStatsRepository(windowSize int) *StateRepo {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	return &StateRepo{
		state: repoModel.HouseState{
			SpinWindow: make([]repoModel.SpinSample, 0, windowSize),
			WindowSize: windowSize,
		},
	}
}

// UpdateState Обновление состояния после спина
func (r *StateRepo) UpdateState(bet, payout float64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalSpins++
	r.state.TotalBet += bet
	r.state.TotalPayout += payout
	if r.state.TotalBet > 0 {
		r.state.CurrentRTP = r.state.TotalPayout / r.state.TotalBet * 100
	}

	// Добавляем спин в окно
	r.state.SpinWindow = append(r.state.SpinWindow, repoModel.SpinSample{Bet: bet, Payout: payout})
	r.state.WindowBet += bet
	r.state.WindowPayout += payout

	// Поддерживаем размер окна
	if len(r.state.SpinWindow) > r.state.WindowSize {
		oldest := r.state.SpinWindow[0]
		r.state.WindowBet -= oldest.Bet
		r.state.WindowPayout -= oldest.Payout
		r.state.SpinWindow = append(r.state.SpinWindow[:0], r.state.SpinWindow[1:]...)
	}

	if r.state.WindowBet > 0 {
		r.state.WindowRTP = r.state.WindowPayout / r.state.WindowBet * 100
	} else {
		r.state.WindowRTP = 0
	}
}

// HouseStats Снимок статистики без окна спинов
func (r *StateRepo) HouseStats() model.HouseStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return model.HouseStats{
		TotalSpins:  r.state.TotalSpins,
		TotalBet:    r.state.TotalBet,
		TotalPayout: r.state.TotalPayout,
		CurrentRTP:  r.state.CurrentRTP,
		WindowRTP:   r.state.WindowRTP,
		WindowSize:  r.state.WindowSize,
		WindowFill:  len(r.state.SpinWindow),
	}
}
