package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/cli/config"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
	"github.com/secmon-lab/zombiequote/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var dryRun bool
	var providerCfg config.Provider

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview the tables without writing them",
			Destination: &dryRun,
		},
	}
	flags = append(flags, providerCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Seed the sqlite or firestore backend with weight tables",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if providerCfg.Backend() == config.BackendMemory || providerCfg.Backend() == "" {
				return goerr.Wrap(config.ErrInvalidConfig, "memory backend has nothing to migrate",
					goerr.V(config.BackendKey, providerCfg.Backend()))
			}

			tables, err := providerCfg.Tables()
			if err != nil {
				return goerr.Wrap(err, "failed to load weight tables")
			}

			logger.Info("Migrate configuration", "provider", providerCfg, "dryRun", dryRun)
			logTables(tables)

			if dryRun {
				logger.Info("Dry run mode, no changes written")
				return nil
			}

			store, err := providerCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize weight table store")
			}
			defer safe.Close(ctx, store)

			if err := store.Seed(ctx, tables); err != nil {
				return goerr.Wrap(err, "failed to seed weight tables")
			}

			logger.Info("Weight tables seeded successfully", "backend", providerCfg.Backend())
			return nil
		},
	}
}
