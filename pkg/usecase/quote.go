package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
)

type QuoteUseCase struct {
	provider interfaces.WeightTableProvider
	scorer   *RiskScorer
	timeout  time.Duration
}

func NewQuoteUseCase(provider interfaces.WeightTableProvider, scorer *RiskScorer, timeout time.Duration) *QuoteUseCase {
	if scorer == nil {
		scorer = NewRiskScorer(provider)
	}
	return &QuoteUseCase{
		provider: provider,
		scorer:   scorer,
		timeout:  timeout,
	}
}

// Quote prices one questionnaire. Any failure is returned as ErrCalculation and no
// partial quote is produced.
func (uc *QuoteUseCase) Quote(ctx context.Context, answers *model.SurveyAnswers) (*model.Quote, error) {
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	score, err := uc.scorer.Score(ctx, answers)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrCalculation, err), "failed to score answers")
	}

	thresholds, err := uc.provider.FetchThresholds(ctx)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrCalculation, ErrProvider, err), "failed to fetch thresholds",
			goerr.V(TableKey, types.DimensionThresholds))
	}

	tier, err := Classify(score, thresholds)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrCalculation, err), "failed to classify score",
			goerr.V(ScoreKey, score))
	}

	// Message selection reads its own copy of the thresholds
	msgThresholds, err := uc.provider.FetchThresholds(ctx)
	if err != nil {
		return nil, goerr.Wrap(errors.Join(ErrCalculation, ErrProvider, err), "failed to fetch thresholds",
			goerr.V(TableKey, types.DimensionThresholds))
	}

	quote := &model.Quote{
		RiskScore: score,
		Plans:     Prices(score),
		RiskLevel: tier,
		Message:   Message(score, msgThresholds),
	}

	logging.From(ctx).Debug("quote calculated",
		slog.Int("score", quote.RiskScore),
		slog.String("tier", quote.RiskLevel.String()),
	)

	return quote, nil
}
