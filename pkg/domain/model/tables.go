package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

// WeightTables is a complete snapshot of the weight data source
type WeightTables struct {
	Defense    WeightTable
	Escape     WeightTable
	Tolerance  WeightTable
	Stress     WeightTable
	Location   WeightTable
	Thresholds ThresholdTable
}

// DefaultWeightTables returns the tables the questionnaire was calibrated with
func DefaultWeightTables() *WeightTables {
	return &WeightTables{
		Defense: WeightTable{
			types.DefenseLetters:     50,
			types.DefenseSlingshot:   35,
			types.DefenseBaseballBat: 25,
			types.DefenseChainsaw:    15,
			types.DefenseCrossbow:    10,
		},
		Escape: WeightTable{
			types.EscapeBefriendZombies: 50,
			types.EscapeShoppingMall:    35,
			types.EscapeRovingBand:      25,
			types.EscapeCountryside:     15,
		},
		Tolerance: WeightTable{
			types.TolerancePanic:  40,
			types.ToleranceAvoid:  30,
			types.ToleranceHandle: 15,
			types.ToleranceFight:  5,
		},
		Stress: WeightTable{
			types.StressPoorly:   40,
			types.StressSomewhat: 25,
			types.StressWell:     10,
			types.StressThrive:   0,
		},
		Location: WeightTable{
			types.LocationFlorida:           20,
			types.LocationAbandonedHospital: 15,
			types.LocationGovernmentLab:     25,
			types.LocationCemetery:          15,
			types.LocationMegaMall:          10,
			types.LocationZombieApocalypse:  0,
		},
		Thresholds: NewThresholdTable(map[types.Tier]int{
			types.TierLow:      80,
			types.TierModerate: 120,
			types.TierHigh:     160,
			types.TierVeryHigh: 200,
			types.TierExtreme:  240,
		}),
	}
}

// Table returns the weight table of a scoring dimension, or nil for thresholds and
// unknown dimensions
func (w *WeightTables) Table(d types.Dimension) WeightTable {
	switch d {
	case types.DimensionDefense:
		return w.Defense
	case types.DimensionEscape:
		return w.Escape
	case types.DimensionTolerance:
		return w.Tolerance
	case types.DimensionStress:
		return w.Stress
	case types.DimensionLocation:
		return w.Location
	default:
		return nil
	}
}

// SetTable replaces the weight table of a scoring dimension
func (w *WeightTables) SetTable(d types.Dimension, table WeightTable) error {
	switch d {
	case types.DimensionDefense:
		w.Defense = table
	case types.DimensionEscape:
		w.Escape = table
	case types.DimensionTolerance:
		w.Tolerance = table
	case types.DimensionStress:
		w.Stress = table
	case types.DimensionLocation:
		w.Location = table
	default:
		return goerr.New("not a scoring dimension", goerr.V(DimensionKey, d))
	}
	return nil
}

// MaxScore returns the highest score reachable: the best single answer of each
// single-choice dimension plus every location.
func (w *WeightTables) MaxScore() int {
	return w.Defense.Max() + w.Escape.Max() + w.Tolerance.Max() + w.Stress.Max() + w.Location.Sum()
}

// Clone returns a deep copy of the tables
func (w *WeightTables) Clone() *WeightTables {
	return &WeightTables{
		Defense:    w.Defense.Clone(),
		Escape:     w.Escape.Clone(),
		Tolerance:  w.Tolerance.Clone(),
		Stress:     w.Stress.Clone(),
		Location:   w.Location.Clone(),
		Thresholds: NewThresholdTable(w.Thresholds.Bounds()),
	}
}

// Validate checks every table
func (w *WeightTables) Validate() error {
	for _, d := range types.ScoringDimensions() {
		table := w.Table(d)
		if table == nil {
			return goerr.Wrap(ErrMissingTable, "weight table is not configured", goerr.V(DimensionKey, d))
		}
		if err := table.Validate(); err != nil {
			return goerr.Wrap(err, "invalid weight table", goerr.V(DimensionKey, d))
		}
	}
	if err := w.Thresholds.Validate(); err != nil {
		return goerr.Wrap(err, "invalid threshold table")
	}
	return nil
}
