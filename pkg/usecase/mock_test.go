package usecase_test

import (
	"context"
	"sync/atomic"

	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

// mockProvider serves fixed tables and counts every call
type mockProvider struct {
	tables *model.WeightTables
	fail   map[types.Dimension]error

	calls          atomic.Int32
	thresholdCalls atomic.Int32
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		tables: model.DefaultWeightTables(),
		fail:   map[types.Dimension]error{},
	}
}

func (m *mockProvider) fetch(ctx context.Context, dim types.Dimension) (model.WeightTable, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.fail[dim]; ok {
		return nil, err
	}
	return m.tables.Table(dim).Clone(), nil
}

func (m *mockProvider) FetchDefenseWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, types.DimensionDefense)
}

func (m *mockProvider) FetchEscapeWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, types.DimensionEscape)
}

func (m *mockProvider) FetchToleranceWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, types.DimensionTolerance)
}

func (m *mockProvider) FetchStressWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, types.DimensionStress)
}

func (m *mockProvider) FetchLocationWeights(ctx context.Context) (model.WeightTable, error) {
	return m.fetch(ctx, types.DimensionLocation)
}

func (m *mockProvider) FetchThresholds(ctx context.Context) (model.ThresholdTable, error) {
	m.calls.Add(1)
	m.thresholdCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return model.ThresholdTable{}, err
	}
	if err, ok := m.fail[types.DimensionThresholds]; ok {
		return model.ThresholdTable{}, err
	}
	return model.NewThresholdTable(m.tables.Thresholds.Bounds()), nil
}
