package harvest

import (
	"context"
	"harvest_slots/internal/model"
	"harvest_slots/internal/repository"
	"sync"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const recordTimeout = 5 * time.Second

// recorder пишет историю спинов в фоне.
// Record не блокирует: при переполненной очереди запись отбрасывается
type recorder struct {
	spinRepo  repository.SpinRepository
	userRepo  repository.UserRepository
	txManager trm.Manager

	mtx    sync.RWMutex
	closed bool
	queue  chan model.SpinRecord
	done   chan struct{}
}

func newRecorder(spinRepo repository.SpinRepository, userRepo repository.UserRepository, txManager trm.Manager, buffer int) *recorder {
	r := &recorder{
		spinRepo:  spinRepo,
		userRepo:  userRepo,
		txManager: txManager,
		queue:     make(chan model.SpinRecord, buffer),
		done:      make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *recorder) Record(rec model.SpinRecord) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	if r.closed {
		return
	}

	select {
	case r.queue <- rec:
	default:
		log.WithFields(log.Fields{
			"user_id":   rec.UserID,
			"total_win": rec.TotalWin,
		}).Warn("spin log queue is full, dropping record")
	}
}

func (r *recorder) run() {
	defer close(r.done)

	for rec := range r.queue {
		r.write(rec)
	}
}

func (r *recorder) write(rec model.SpinRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	err := r.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := r.spinRepo.CreateSpin(txCtx, &rec); err != nil {
			return err
		}
		return r.userRepo.AddSpinTotals(txCtx, rec.UserID, decimal.NewFromFloat(rec.Bet), decimal.NewFromFloat(rec.TotalWin))
	})
	if err != nil {
		log.WithError(err).WithField("user_id", rec.UserID).Error("failed to record spin")
	}
}

// Close дожидается записи всего, что уже в очереди
func (r *recorder) Close() {
	r.mtx.Lock()
	if r.closed {
		r.mtx.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mtx.Unlock()

	<-r.done
}
