package harvest

import (
	"context"
	"errors"
	"fmt"
	"harvest_slots/internal/model"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrSpinPanicked - паника внутри генерации или расчета, перехваченная автоматом
	ErrSpinPanicked = errors.New("spin panicked")
	// ErrPayoutOverflow - выплата не помещается в float64
	ErrPayoutOverflow = errors.New("payout overflow")
)

// Ledger - списание ставки и начисление выигрыша
type Ledger interface {
	Debit(ctx context.Context, amount float64) error
	Credit(ctx context.Context, amount float64) error
}

// Presenter получает копию поля и итог спина. Ошибки презентера на итог не влияют
type Presenter interface {
	Present(ctx context.Context, grid model.Grid, outcome model.SpinOutcome) error
}

// SpinResolved - событие завершенного спина
type SpinResolved struct {
	Grid       model.Grid
	Outcome    model.SpinOutcome
	Bet        float64
	Multiplier float64
	At         time.Time
}

// Listener - подписчик на SpinResolved. Вызывается синхронно
type Listener func(SpinResolved)

type spinStatus int

const (
	spinResolved spinStatus = iota
	spinRejected
	spinFailed
)

type spinReport struct {
	grid    model.Grid
	outcome model.SpinOutcome
	status  spinStatus
}

// Machine - автомат одного игрока: состояние Idle/Spinning и текущее поле
type Machine struct {
	engine    *Engine
	size      int
	ledger    Ledger
	presenter Presenter
	logger    *log.Entry
	now       func() time.Time

	spinning atomic.Bool

	mtx        sync.RWMutex
	grid       model.Grid
	lastActive time.Time

	subsMtx sync.Mutex
	subs    map[int]Listener
	nextSub int
}

type MachineOption func(*Machine)

func WithLedger(l Ledger) MachineOption {
	return func(m *Machine) { m.ledger = l }
}

func WithPresenter(p Presenter) MachineOption {
	return func(m *Machine) { m.presenter = p }
}

func WithLogger(e *log.Entry) MachineOption {
	return func(m *Machine) { m.logger = e }
}

func withClock(now func() time.Time) MachineOption {
	return func(m *Machine) { m.now = now }
}

// NewMachine создает автомат с полем size×size, заполненным сразу
func NewMachine(engine *Engine, size int, opts ...MachineOption) (*Machine, error) {
	m := &Machine{
		engine: engine,
		size:   size,
		logger: log.NewEntry(log.StandardLogger()),
		now:    time.Now,
		subs:   make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}

	grid, err := engine.GenerateGrid(size)
	if err != nil {
		return nil, err
	}
	m.grid = grid
	m.lastActive = m.now()

	return m, nil
}

// IsSpinning - идет ли сейчас спин
func (m *Machine) IsSpinning() bool {
	return m.spinning.Load()
}

// Grid - копия текущего поля
func (m *Machine) Grid() model.Grid {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.grid.Clone()
}

// LastActive - время последнего спина (или создания автомата)
func (m *Machine) LastActive() time.Time {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.lastActive
}

// Subscribe регистрирует подписчика и возвращает функцию отписки
func (m *Machine) Subscribe(l Listener) (unsubscribe func()) {
	m.subsMtx.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = l
	m.subsMtx.Unlock()

	return func() {
		m.subsMtx.Lock()
		delete(m.subs, id)
		m.subsMtx.Unlock()
	}
}

// StartSpin выполняет спин.
// Ошибка возвращается только при неверной ставке или отказе в списании.
// Если спин уже идет, сразу возвращается нулевой итог без ошибки.
// Внутренний сбой логируется и тоже превращается в нулевой итог.
func (m *Machine) StartSpin(ctx context.Context, bet, multiplier float64) (model.SpinOutcome, error) {
	rep, err := m.spin(ctx, bet, multiplier)
	if err != nil {
		return model.ZeroOutcome(), err
	}
	return rep.outcome, nil
}

func (m *Machine) spin(ctx context.Context, bet, multiplier float64) (spinReport, error) {
	if err := ValidateStake(bet, multiplier); err != nil {
		return spinReport{outcome: model.ZeroOutcome(), status: spinRejected}, err
	}

	if !m.spinning.CompareAndSwap(false, true) {
		m.logger.WithFields(log.Fields{"bet": bet, "multiplier": multiplier}).Debug("spin ignored, machine is busy")
		return spinReport{outcome: model.ZeroOutcome(), status: spinRejected}, nil
	}
	defer m.spinning.Store(false)

	m.touch()

	if m.ledger != nil {
		if err := m.ledger.Debit(ctx, bet); err != nil {
			return spinReport{outcome: model.ZeroOutcome(), status: spinRejected}, fmt.Errorf("debit bet: %w", err)
		}
	}

	grid, outcome, err := m.resolve(bet, multiplier)
	if err != nil {
		m.logger.WithError(err).WithFields(log.Fields{
			"event":      "spin_failed",
			"bet":        bet,
			"multiplier": multiplier,
		}).Error("spin failed, resolving to zero outcome")
		m.refund(ctx, bet)
		return spinReport{grid: m.Grid(), outcome: model.ZeroOutcome(), status: spinFailed}, nil
	}

	m.mtx.Lock()
	m.grid = grid
	m.mtx.Unlock()

	m.present(ctx, grid, outcome.Clone())

	if m.ledger != nil && outcome.TotalWinAmount > 0 {
		if err := m.ledger.Credit(ctx, outcome.TotalWinAmount); err != nil {
			m.logger.WithError(err).WithField("total_win", outcome.TotalWinAmount).Error("failed to credit win")
		}
	}

	m.emit(SpinResolved{
		Grid:       grid,
		Outcome:    outcome,
		Bet:        bet,
		Multiplier: multiplier,
		At:         m.now(),
	})

	return spinReport{grid: grid.Clone(), outcome: outcome.Clone(), status: spinResolved}, nil
}

// resolve - генерация поля, поиск линий и расчет. Паника превращается в ошибку
func (m *Machine) resolve(bet, multiplier float64) (grid model.Grid, outcome model.SpinOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSpinPanicked, r)
		}
	}()

	grid, err = m.engine.GenerateGrid(m.size)
	if err != nil {
		return nil, model.SpinOutcome{}, err
	}

	outcome, err = m.engine.CalculateWinnings(grid, bet, multiplier)
	if err != nil {
		return nil, model.SpinOutcome{}, err
	}
	return grid, outcome, nil
}

func (m *Machine) refund(ctx context.Context, bet float64) {
	if m.ledger == nil {
		return
	}
	if err := m.ledger.Credit(ctx, bet); err != nil {
		m.logger.WithError(err).WithField("bet", bet).Error("failed to refund bet after spin failure")
	}
}

func (m *Machine) present(ctx context.Context, grid model.Grid, outcome model.SpinOutcome) {
	if m.presenter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("presenter panicked")
		}
	}()
	if err := m.presenter.Present(ctx, grid.Clone(), outcome); err != nil {
		m.logger.WithError(err).Warn("presenter failed")
	}
}

func (m *Machine) emit(ev SpinResolved) {
	m.subsMtx.Lock()
	listeners := make([]Listener, 0, len(m.subs))
	for _, l := range m.subs {
		listeners = append(listeners, l)
	}
	m.subsMtx.Unlock()

	for _, l := range listeners {
		e := ev
		e.Grid = ev.Grid.Clone()
		e.Outcome = ev.Outcome.Clone()
		m.notify(l, e)
	}
}

func (m *Machine) notify(l Listener, ev SpinResolved) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("spin listener panicked")
		}
	}()
	l(ev)
}

func (m *Machine) touch() {
	m.mtx.Lock()
	m.lastActive = m.now()
	m.mtx.Unlock()
}
