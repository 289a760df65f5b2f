package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
)

// Memory serves weight tables held in process. Each read waits for the configured
// latency to behave like a remote data source.
type Memory struct {
	mu      sync.RWMutex
	tables  *model.WeightTables
	latency time.Duration
}

var _ interfaces.WeightTableStore = &Memory{}

type Option func(*Memory)

// WithLatency delays every read by d
func WithLatency(d time.Duration) Option {
	return func(m *Memory) {
		m.latency = d
	}
}

// WithTables serves tables instead of the defaults
func WithTables(tables *model.WeightTables) Option {
	return func(m *Memory) {
		m.tables = tables.Clone()
	}
}

func New(opts ...Option) *Memory {
	m := &Memory{
		tables: model.DefaultWeightTables(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// wait simulates the round trip to a data source
func (m *Memory) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "weight table read cancelled")
	}
	if m.latency <= 0 {
		return nil
	}

	timer := time.NewTimer(m.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "weight table read cancelled")
	case <-timer.C:
		return nil
	}
}

func (m *Memory) fetch(ctx context.Context, pick func(*model.WeightTables) model.WeightTable) (model.WeightTable, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	return pick(m.tables).Clone(), nil
}

func (m *Memory) FetchDefenseWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, func(t *model.WeightTables) model.WeightTable { return t.Defense })
}

func (m *Memory) FetchEscapeWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, func(t *model.WeightTables) model.WeightTable { return t.Escape })
}

func (m *Memory) FetchToleranceWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, func(t *model.WeightTables) model.WeightTable { return t.Tolerance })
}

func (m *Memory) FetchStressWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, func(t *model.WeightTables) model.WeightTable { return t.Stress })
}

func (m *Memory) FetchLocationWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, func(t *model.WeightTables) model.WeightTable { return t.Location })
}

func (m *Memory) FetchThresholds(ctx context.Context) (model.ThresholdTable, error) {
	if err := m.wait(ctx); err != nil {
		return model.ThresholdTable{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return model.NewThresholdTable(m.tables.Thresholds.Bounds()), nil
}

// Seed replaces the served tables
func (m *Memory) Seed(ctx context.Context, tables *model.WeightTables) error {
	if err := tables.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to seed invalid weight tables")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tables = tables.Clone()
	return nil
}

func (m *Memory) Close() error {
	return nil
}
