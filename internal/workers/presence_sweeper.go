package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AC-Rodriguez5/SafeAlert-Emergency-Response/internal/domain"
)

type AlertStore interface {
	List(ctx context.Context, filter domain.AlertFilter) ([]*domain.Alert, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*domain.Alert) error) (*domain.Alert, error)
}

type sweepJob struct {
	id uuid.UUID
}

// PresenceSweeper periodically scans pending and responding alerts and marks
// the reporter offline once no location sample has arrived within the silence
// window. Location appends flip the flag back through SetPresence or a fresh
// sample.
type PresenceSweeper struct {
	store    AlertStore
	logger   *slog.Logger
	interval time.Duration
	silence  time.Duration
	jobs     chan sweepJob
	poolSize int
}

func NewPresenceSweeper(store AlertStore, logger *slog.Logger, interval, silence time.Duration) *PresenceSweeper {
	return &PresenceSweeper{
		store:    store,
		logger:   logger,
		interval: interval,
		silence:  silence,
		jobs:     make(chan sweepJob, 100),
		poolSize: 4,
	}
}

func (w *PresenceSweeper) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.worker(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.producer(ctx)
	}()
	wg.Wait()
}

func (w *PresenceSweeper) producer(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.enqueueStale(ctx)
		}
	}
}

func (w *PresenceSweeper) enqueueStale(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-w.silence)

	for _, status := range []domain.AlertStatus{domain.AlertPending, domain.AlertResponding} {
		status := status
		alerts, err := w.store.List(ctx, domain.AlertFilter{Status: &status})
		if err != nil {
			w.logger.Warn("presence sweep list failed",
				slog.String("status", string(status)),
				slog.Any("error", err),
			)
			continue
		}
		for _, a := range alerts {
			if !a.Online || a.LastLocationAt.After(cutoff) {
				continue
			}
			select {
			case w.jobs <- sweepJob{id: a.ID}:
			case <-ctx.Done():
				return
			default:
				// queue full, the alert is picked up again next tick
			}
		}
	}
}

func (w *PresenceSweeper) worker(ctx context.Context) {
	for {
		select {
		case job := <-w.jobs:
			w.markOffline(ctx, job.id)
		case <-ctx.Done():
			return
		}
	}
}

func (w *PresenceSweeper) markOffline(ctx context.Context, id uuid.UUID) {
	cutoff := time.Now().UTC().Add(-w.silence)

	_, err := w.store.Update(ctx, id, func(a *domain.Alert) error {
		// re-check under the record lock, a sample may have landed meanwhile
		if !a.Online || a.LastLocationAt.After(cutoff) {
			return nil
		}
		a.Online = false
		a.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		w.logger.Warn("presence sweep update failed",
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
		return
	}
	w.logger.Info("reporter marked offline", slog.String("id", id.String()))
}
