package interfaces

import (
	"context"

	"github.com/secmon-lab/zombiequote/pkg/domain/model"
)

// WeightTableProvider is the weight data source consulted while pricing. Every
// accessor is a read with no side effects and may be called any number of times per
// request; implementations may be slow or fail and must honor ctx.
type WeightTableProvider interface {
	// FetchDefenseWeights returns weights for the primary defense answer
	FetchDefenseWeights(ctx context.Context) (model.WeightTable, error)

	// FetchEscapeWeights returns weights for the backup escape plan answer
	FetchEscapeWeights(ctx context.Context) (model.WeightTable, error)

	// FetchToleranceWeights returns weights for the zombie tolerance answer
	FetchToleranceWeights(ctx context.Context) (model.WeightTable, error)

	// FetchStressWeights returns weights for the survival stress answer
	FetchStressWeights(ctx context.Context) (model.WeightTable, error)

	// FetchLocationWeights returns weights for each risk location
	FetchLocationWeights(ctx context.Context) (model.WeightTable, error)

	// FetchThresholds returns the tier bounds
	FetchThresholds(ctx context.Context) (model.ThresholdTable, error)
}

// WeightTableStore is a WeightTableProvider backed by storage that can be (re)seeded
type WeightTableStore interface {
	WeightTableProvider

	// Seed replaces every stored table with tables
	Seed(ctx context.Context, tables *model.WeightTables) error

	Close() error
}
