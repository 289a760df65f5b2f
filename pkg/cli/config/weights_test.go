package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zombiequote/pkg/cli/config"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

func TestParseWeights(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, tables *model.WeightTables)
	}{
		{
			name:    "empty file keeps built-in tables",
			content: ``,
			check: func(t *testing.T, tables *model.WeightTables) {
				gt.Value(t, tables.Defense).Equal(model.DefaultWeightTables().Defense)
				gt.Number(t, tables.Thresholds.Max()).Equal(240)
			},
		},
		{
			name: "override one section",
			content: `
[location]
Florida = 40
"Government Lab" = 5
`,
			check: func(t *testing.T, tables *model.WeightTables) {
				gt.Value(t, tables.Location).Equal(model.WeightTable{
					types.LocationFlorida:       40,
					types.LocationGovernmentLab: 5,
				})
				gt.Value(t, tables.Stress).Equal(model.DefaultWeightTables().Stress)
			},
		},
		{
			name: "override thresholds",
			content: `
[thresholds]
Low = 50
Moderate = 100
High = 150
"Very High" = 250
Extreme = 300
`,
			check: func(t *testing.T, tables *model.WeightTables) {
				gt.Number(t, tables.Thresholds.Max()).Equal(300)
				gt.Value(t, tables.Thresholds.Bounds()[types.TierVeryHigh]).Equal(250)
			},
		},
		{
			name: "negative weight",
			content: `
[defense]
Crossbow = -1
`,
			wantErr: model.ErrNegativeWeight,
		},
		{
			name: "unknown tier",
			content: `
[thresholds]
Catastrophic = 300
`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "thresholds out of order",
			content: `
[thresholds]
Low = 100
Moderate = 50
`,
			wantErr: model.ErrInvalidThreshold,
		},
		{
			name:    "broken toml",
			content: `[defense`,
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "weight of wrong type",
			content: `
[stress]
well = "ten"
`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := config.ParseWeights([]byte(tt.content))
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			tt.check(t, tables)
		})
	}
}

func TestLoadWeights(t *testing.T) {
	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weights.toml")
		gt.NoError(t, os.WriteFile(path, []byte("[tolerance]\nfight = 1\n"), 0o600)).Required()

		tables, err := config.LoadWeights(path)
		gt.NoError(t, err).Required()
		gt.Number(t, tables.Tolerance.Lookup(types.ToleranceFight)).Equal(1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadWeights(filepath.Join(t.TempDir(), "nope.toml"))
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}
