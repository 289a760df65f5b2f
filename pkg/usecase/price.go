package usecase

import (
	"math"

	"github.com/secmon-lab/zombiequote/pkg/domain/model"
)

// Prices derives the three plan prices from a risk score. Halves round away from zero.
func Prices(score int) model.Plans {
	s := float64(score)
	return model.Plans{
		Basic:    int(math.Round(50 + 0.5*s)),
		Ultimate: int(math.Round(150 + 1.2*s)),
		Restart:  int(math.Round(300 + 2*s)),
	}
}
