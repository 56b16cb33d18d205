package harvest

import (
	"fmt"
	"harvest_slots/internal/config"
	"harvest_slots/internal/model"
	"harvest_slots/internal/repository"
	"harvest_slots/internal/service"
	servModel "harvest_slots/internal/service/harvest/model"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type serv struct {
	cfg       config.HarvestConfig
	engine    *Engine
	userRepo  repository.UserRepository
	spinRepo  repository.SpinRepository
	statsRepo repository.StatsRepository
	txManager trm.Manager
	recorder  *recorder
	cron      *cron.Cron
	now       func() time.Time

	mtx      sync.Mutex
	machines map[int]*Machine

	listenersMtx sync.RWMutex
	listeners    map[int]func(model.SpinEvent)
	nextListener int
}

// NewHarvestService Сервис слота 6×6 с автоматом на каждого игрока
func NewHarvestService(
	cfg config.HarvestConfig,
	userRepo repository.UserRepository,
	spinRepo repository.SpinRepository,
	statsRepo repository.StatsRepository,
	txManager trm.Manager,
) (service.HarvestService, error) {
	catalog, err := servModel.NewCatalog(cfg.Symbols(), cfg.Active())
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	return newServ(cfg, NewEngine(catalog, nil), userRepo, spinRepo, statsRepo, txManager), nil
}

func newServ(
	cfg config.HarvestConfig,
	engine *Engine,
	userRepo repository.UserRepository,
	spinRepo repository.SpinRepository,
	statsRepo repository.StatsRepository,
	txManager trm.Manager,
) *serv {
	return &serv{
		cfg:       cfg,
		engine:    engine,
		userRepo:  userRepo,
		spinRepo:  spinRepo,
		statsRepo: statsRepo,
		txManager: txManager,
		recorder:  newRecorder(spinRepo, userRepo, txManager, cfg.RecorderBuffer()),
		cron:      cron.New(),
		now:       time.Now,
		machines:  make(map[int]*Machine),
		listeners: make(map[int]func(model.SpinEvent)),
	}
}

// machineFor возвращает автомат игрока, создавая его при первом обращении
func (s *serv) machineFor(userID int) (*Machine, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	// Выдача автомата продлевает его активность для EvictIdle
	if m, ok := s.machines[userID]; ok {
		m.touch()
		return m, nil
	}

	m, err := NewMachine(s.engine, s.cfg.GridSize(),
		WithLedger(newUserLedger(userID, s.userRepo, s.txManager)),
		WithLogger(log.WithField("user_id", userID)),
		withClock(s.now),
	)
	if err != nil {
		return nil, err
	}

	m.Subscribe(func(ev SpinResolved) {
		s.onResolved(userID, ev)
	})
	s.machines[userID] = m

	return m, nil
}

// onResolved - статистика, история и рассылка по завершенному спину
func (s *serv) onResolved(userID int, ev SpinResolved) {
	s.statsRepo.UpdateState(ev.Bet, ev.Outcome.TotalWinAmount)

	s.recorder.Record(model.SpinRecord{
		UserID:     userID,
		Bet:        ev.Bet,
		Multiplier: ev.Multiplier,
		TotalWin:   ev.Outcome.TotalWinAmount,
		Lines:      ev.Outcome.WinningLines,
		Grid:       ev.Grid,
		CreatedAt:  ev.At,
	})

	s.listenersMtx.RLock()
	defer s.listenersMtx.RUnlock()
	for _, fn := range s.listeners {
		fn(model.SpinEvent{
			UserID:     userID,
			Grid:       ev.Grid.Clone(),
			Outcome:    ev.Outcome.Clone(),
			Bet:        ev.Bet,
			Multiplier: ev.Multiplier,
			At:         ev.At,
		})
	}
}

func (s *serv) SubscribeSpins(fn func(model.SpinEvent)) func() {
	s.listenersMtx.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	s.listenersMtx.Unlock()

	return func() {
		s.listenersMtx.Lock()
		delete(s.listeners, id)
		s.listenersMtx.Unlock()
	}
}

// EvictIdle удаляет автоматы, простаивающие дольше maxIdle. Возвращает число удаленных
func (s *serv) EvictIdle(maxIdle time.Duration) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := s.now()
	evicted := 0
	for id, m := range s.machines {
		if m.IsSpinning() || now.Sub(m.LastActive()) <= maxIdle {
			continue
		}
		delete(s.machines, id)
		evicted++
	}
	return evicted
}

// Start запускает фоновую очистку автоматов
func (s *serv) Start() {
	_, err := s.cron.AddFunc("@every 1m", func() {
		if n := s.EvictIdle(s.cfg.IdleEviction()); n > 0 {
			log.WithField("evicted", n).Debug("[CRON] idle machines evicted")
		}
	})
	if err != nil {
		log.WithError(err).Error("failed to schedule idle machine eviction")
		return
	}
	s.cron.Start()
}

// Close останавливает cron и дописывает историю
func (s *serv) Close() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.recorder.Close()
}

func (s *serv) HouseStats() model.HouseStats {
	return s.statsRepo.HouseStats()
}

func (s *serv) Symbols() []model.SymbolInfo {
	catalog := s.engine.Catalog()
	active := catalog.Active()

	out := make([]model.SymbolInfo, 0, len(active))
	for _, id := range active {
		v, _ := catalog.Value(id)
		out = append(out, model.SymbolInfo{ID: id, Value: v})
	}
	return out
}
