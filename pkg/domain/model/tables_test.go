package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

func TestDefaultWeightTables(t *testing.T) {
	tables := model.DefaultWeightTables()
	gt.NoError(t, tables.Validate()).Required()

	t.Run("every selectable label has a weight", func(t *testing.T) {
		for _, d := range types.ScoringDimensions() {
			table := tables.Table(d)
			for _, label := range types.Labels(d) {
				_, ok := table[label]
				gt.Bool(t, ok).True()
			}
		}
	})

	t.Run("location weights", func(t *testing.T) {
		gt.Number(t, tables.Location.Lookup(types.LocationFlorida)).Equal(20)
		gt.Number(t, tables.Location.Lookup(types.LocationAbandonedHospital)).Equal(15)
		gt.Number(t, tables.Location.Lookup(types.LocationGovernmentLab)).Equal(25)
		gt.Number(t, tables.Location.Lookup(types.LocationCemetery)).Equal(15)
		gt.Number(t, tables.Location.Lookup(types.LocationMegaMall)).Equal(10)
		gt.Number(t, tables.Location.Lookup(types.LocationZombieApocalypse)).Equal(0)
	})

	t.Run("max score reaches past the highest bound", func(t *testing.T) {
		gt.Number(t, tables.MaxScore()).Equal(265)
		gt.Number(t, tables.Thresholds.Max()).Equal(240)
	})
}

func TestWeightTables_Clone(t *testing.T) {
	orig := model.DefaultWeightTables()
	cloned := orig.Clone()

	cloned.Defense[types.DefenseLetters] = 999
	gt.Number(t, orig.Defense[types.DefenseLetters]).Equal(50)
	gt.Value(t, cloned.Thresholds.Entries()).Equal(orig.Thresholds.Entries())
}

func TestWeightTables_Validate(t *testing.T) {
	t.Run("missing table", func(t *testing.T) {
		tables := model.DefaultWeightTables()
		tables.Stress = nil
		err := tables.Validate()
		gt.Error(t, err).Is(model.ErrMissingTable)
	})

	t.Run("negative weight", func(t *testing.T) {
		tables := model.DefaultWeightTables()
		tables.Escape[types.EscapeCountryside] = -1
		err := tables.Validate()
		gt.Bool(t, errors.Is(err, model.ErrNegativeWeight)).True()
	})

	t.Run("empty thresholds", func(t *testing.T) {
		tables := model.DefaultWeightTables()
		tables.Thresholds = model.NewThresholdTable(nil)
		gt.Error(t, tables.Validate()).Is(model.ErrInvalidThreshold)
	})
}

func TestWeightTables_SetTable(t *testing.T) {
	tables := model.DefaultWeightTables()
	gt.NoError(t, tables.SetTable(types.DimensionStress, model.WeightTable{"calm": 1}))
	gt.Number(t, tables.Table(types.DimensionStress).Lookup("calm")).Equal(1)

	gt.Value(t, tables.SetTable(types.DimensionThresholds, model.WeightTable{})).NotNil()
}
