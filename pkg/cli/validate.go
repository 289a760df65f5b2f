package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/cli/config"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func logTables(tables *model.WeightTables) {
	logger := logging.Default()

	for _, d := range types.ScoringDimensions() {
		table := tables.Table(d)
		logger.Info("Weight table",
			"dimension", d,
			"labels", len(table),
			"max", table.Max(),
		)
	}
	logger.Info("Thresholds", "bounds", tables.Thresholds.Bounds())

	if maxScore := tables.MaxScore(); maxScore >= tables.Thresholds.Max() {
		logger.Warn("Highest reachable score is not covered by any tier, such answers are declined",
			"max_score", maxScore,
			"highest_bound", tables.Thresholds.Max(),
		)
	}
}

func cmdValidate() *cli.Command {
	var weightsPath string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a TOML weight table file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "weights",
				Usage:       "TOML weight table file (required)",
				Required:    true,
				Sources:     cli.EnvVars("ZOMBIEQUOTE_WEIGHTS"),
				Destination: &weightsPath,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			tables, err := config.LoadWeights(weightsPath)
			if err != nil {
				return goerr.Wrap(err, "weight table validation failed")
			}

			logTables(tables)
			logging.Default().Info("Weight table validation passed", "path", weightsPath)
			return nil
		},
	}
}
