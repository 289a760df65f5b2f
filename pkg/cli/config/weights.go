package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
)

// WeightsFile is the TOML layout of a weight table file. A section left out keeps
// the built-in table.
type WeightsFile struct {
	Defense    map[string]int `toml:"defense"`
	Escape     map[string]int `toml:"escape"`
	Tolerance  map[string]int `toml:"tolerance"`
	Stress     map[string]int `toml:"stress"`
	Location   map[string]int `toml:"location"`
	Thresholds map[string]int `toml:"thresholds"`
}

func (f *WeightsFile) section(d types.Dimension) map[string]int {
	switch d {
	case types.DimensionDefense:
		return f.Defense
	case types.DimensionEscape:
		return f.Escape
	case types.DimensionTolerance:
		return f.Tolerance
	case types.DimensionStress:
		return f.Stress
	case types.DimensionLocation:
		return f.Location
	case types.DimensionThresholds:
		return f.Thresholds
	}
	return nil
}

// Tables merges the file over the built-in tables and validates the result
func (f *WeightsFile) Tables() (*model.WeightTables, error) {
	tables := model.DefaultWeightTables()

	for _, d := range types.ScoringDimensions() {
		section := f.section(d)
		if section == nil {
			continue
		}
		if err := tables.SetTable(d, model.WeightTable(section).Clone()); err != nil {
			return nil, goerr.Wrap(err, "failed to set weight table", goerr.V(SectionKey, d))
		}
	}

	if f.Thresholds != nil {
		bounds := make(map[types.Tier]int, len(f.Thresholds))
		for name, bound := range f.Thresholds {
			tier, err := types.ParseTier(name)
			if err != nil {
				return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "unknown tier in thresholds",
					goerr.V(SectionKey, types.DimensionThresholds),
					goerr.V(LabelKey, name))
			}
			bounds[tier] = bound
		}
		tables.Thresholds = model.NewThresholdTable(bounds)
	}

	if err := tables.Validate(); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "invalid weight tables")
	}
	return tables, nil
}

// ParseWeights decodes a TOML weight table file
func ParseWeights(data []byte) (*model.WeightTables, error) {
	var file WeightsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "failed to parse weight tables")
	}
	return file.Tables()
}

// LoadWeights reads and validates a TOML weight table file
func LoadWeights(path string) (*model.WeightTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "weight table file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read weight table file", goerr.V(ConfigPathKey, path))
	}

	tables, err := ParseWeights(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load weight table file", goerr.V(ConfigPathKey, path))
	}
	return tables, nil
}
