package types

import "github.com/m-mizutani/goerr/v2"

// Dimension identifies one lookup table of the weight data source. The five scoring
// dimensions contribute to the risk score; DimensionThresholds holds tier bounds.
type Dimension string

const (
	DimensionDefense    Dimension = "defense"
	DimensionEscape     Dimension = "escape"
	DimensionTolerance  Dimension = "tolerance"
	DimensionStress     Dimension = "stress"
	DimensionLocation   Dimension = "location"
	DimensionThresholds Dimension = "thresholds"
)

// ScoringDimensions returns the dimensions that contribute to a risk score
func ScoringDimensions() []Dimension {
	return []Dimension{
		DimensionDefense,
		DimensionEscape,
		DimensionTolerance,
		DimensionStress,
		DimensionLocation,
	}
}

// AllDimensions returns every table held by the weight data source
func AllDimensions() []Dimension {
	return append(ScoringDimensions(), DimensionThresholds)
}

// IsValid checks if the dimension is known
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionDefense,
		DimensionEscape,
		DimensionTolerance,
		DimensionStress,
		DimensionLocation,
		DimensionThresholds:
		return true
	default:
		return false
	}
}

// Validate checks if the Dimension is valid
func (d Dimension) Validate() error {
	if !d.IsValid() {
		return goerr.New("unknown dimension", goerr.V("dimension", d))
	}
	return nil
}

// String returns the string representation of Dimension
func (d Dimension) String() string {
	return string(d)
}
