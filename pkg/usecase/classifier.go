package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

// Classify returns the first tier whose bound is strictly greater than score.
// A score at or above the highest bound is declined with ErrOutOfRange.
func Classify(score int, thresholds model.ThresholdTable) (types.Tier, error) {
	for _, th := range thresholds.Entries() {
		if score < th.Bound {
			return th.Tier, nil
		}
	}

	return "", goerr.Wrap(ErrOutOfRange, "no risk tier covers score",
		goerr.V(ScoreKey, score),
		goerr.V(BoundKey, thresholds.Max()))
}
