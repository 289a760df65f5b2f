package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// RiskScorer turns questionnaire answers into a risk score
type RiskScorer struct {
	provider interfaces.WeightTableProvider
}

func NewRiskScorer(provider interfaces.WeightTableProvider) *RiskScorer {
	return &RiskScorer{provider: provider}
}

// Score sums the weight of every selected answer. Unknown or empty answers weigh
// nothing and a location selected twice counts once.
func (s *RiskScorer) Score(ctx context.Context, answers *model.SurveyAnswers) (int, error) {
	if answers == nil {
		answers = &model.SurveyAnswers{}
	}

	var defense, escape, tolerance, stress, location model.WeightTable

	eg, ctx := errgroup.WithContext(ctx)
	fetch := func(dim types.Dimension, dst *model.WeightTable, fn func(context.Context) (model.WeightTable, error)) {
		eg.Go(func() error {
			table, err := fn(ctx)
			if err != nil {
				return goerr.Wrap(errors.Join(ErrProvider, err), "failed to fetch weight table", goerr.V(TableKey, dim))
			}
			*dst = table
			return nil
		})
	}

	fetch(types.DimensionDefense, &defense, s.provider.FetchDefenseWeights)
	fetch(types.DimensionEscape, &escape, s.provider.FetchEscapeWeights)
	fetch(types.DimensionTolerance, &tolerance, s.provider.FetchToleranceWeights)
	fetch(types.DimensionStress, &stress, s.provider.FetchStressWeights)
	fetch(types.DimensionLocation, &location, s.provider.FetchLocationWeights)

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	score := defense.Lookup(answers.PrimaryDefense) +
		escape.Lookup(answers.BackupEscapePlan) +
		tolerance.Lookup(answers.ZombieTolerance) +
		stress.Lookup(answers.SurvivalStress)

	for _, loc := range answers.Locations() {
		score += location.Lookup(loc)
	}

	return score, nil
}
