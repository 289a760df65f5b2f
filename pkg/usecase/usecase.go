package usecase

import (
	"time"

	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
)

type UseCases struct {
	provider        interfaces.WeightTableProvider
	providerTimeout time.Duration
	Scorer          *RiskScorer
	Quote           *QuoteUseCase
}

type Option func(*UseCases)

// WithProviderTimeout bounds the total time spent fetching tables for one quote
func WithProviderTimeout(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.providerTimeout = d
	}
}

func New(provider interfaces.WeightTableProvider, opts ...Option) *UseCases {
	uc := &UseCases{
		provider: provider,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Scorer = NewRiskScorer(provider)
	uc.Quote = NewQuoteUseCase(provider, uc.Scorer, uc.providerTimeout)

	return uc
}
