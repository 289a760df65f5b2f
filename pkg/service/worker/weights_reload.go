package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
)

// Loader reads the current weight tables from their source of truth
type Loader func() (*model.WeightTables, error)

// WeightsReloadWorker periodically reloads weight tables and seeds them into a store.
// A failed reload keeps the tables the store already serves.
//
// Single server instance is assumed; concurrent reloads from several servers
// simply race to write the same tables.
type WeightsReloadWorker struct {
	store    interfaces.WeightTableStore
	load     Loader
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once

	mu         sync.Mutex
	lastReload time.Time
}

// NewWeightsReloadWorker creates a new worker for reloading weight tables
func NewWeightsReloadWorker(store interfaces.WeightTableStore, load Loader, interval time.Duration) *WeightsReloadWorker {
	return &WeightsReloadWorker{
		store:    store,
		load:     load,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background reload loop without blocking
func (w *WeightsReloadWorker) Start(ctx context.Context) {
	logging.Default().Info("Weight table reload worker starting",
		"interval", w.interval.String())

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *WeightsReloadWorker) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Weight table reload worker stopping")
		close(w.stopCh)
	})
	<-w.doneCh
}

// LastReload returns the time of the last successful reload
func (w *WeightsReloadWorker) LastReload() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastReload
}

func (w *WeightsReloadWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Reload(ctx); err != nil {
				logging.Default().Error("Weight table reload failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Weight table reload worker context cancelled")
			return
		}
	}
}

// Reload performs one reload cycle
func (w *WeightsReloadWorker) Reload(ctx context.Context) error {
	startTime := time.Now()

	tables, err := w.load()
	if err != nil {
		return goerr.Wrap(err, "failed to load weight tables")
	}

	if err := w.store.Seed(ctx, tables); err != nil {
		return goerr.Wrap(err, "failed to seed weight tables")
	}

	w.mu.Lock()
	w.lastReload = startTime
	w.mu.Unlock()

	logging.Default().Info("Weight table reload completed",
		"max_score", tables.MaxScore(),
		"duration", time.Since(startTime).String())

	return nil
}
