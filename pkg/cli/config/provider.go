package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/repository/firestore"
	"github.com/secmon-lab/zombiequote/pkg/repository/memory"
	"github.com/secmon-lab/zombiequote/pkg/repository/sqlite"
	"github.com/secmon-lab/zombiequote/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const (
	BackendMemory    = "memory"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Provider holds CLI flags for the weight table provider
type Provider struct {
	backend          string
	latency          time.Duration
	weightsPath      string
	sqlitePath       string
	projectID        string
	databaseID       string
	collectionPrefix string
}

// Flags returns CLI flags for provider configuration
func (p *Provider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider-backend",
			Usage:       "Weight table backend (memory, sqlite, firestore)",
			Value:       BackendMemory,
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_PROVIDER_BACKEND"),
			Destination: &p.backend,
		},
		&cli.DurationFlag{
			Name:        "provider-latency",
			Usage:       "Simulated latency of each read from the memory backend",
			Value:       50 * time.Millisecond,
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_PROVIDER_LATENCY"),
			Destination: &p.latency,
		},
		&cli.StringFlag{
			Name:        "weights",
			Usage:       "TOML weight table file. Built-in tables are used when omitted",
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_WEIGHTS"),
			Destination: &p.weightsPath,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file (sqlite backend)",
			Value:       "zombiequote.db",
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_SQLITE_PATH"),
			Destination: &p.sqlitePath,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_FIRESTORE_PROJECT_ID"),
			Destination: &p.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_FIRESTORE_DATABASE_ID"),
			Destination: &p.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix of the Firestore weight table collection",
			Category:    "Provider",
			Sources:     cli.EnvVars("ZOMBIEQUOTE_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &p.collectionPrefix,
		},
	}
}

func (p Provider) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", p.backend),
		slog.Duration("latency", p.latency),
		slog.String("weights", p.weightsPath),
		slog.String("sqlite_path", p.sqlitePath),
		slog.String("firestore_project_id", p.projectID),
		slog.String("firestore_database_id", p.databaseID),
	)
}

// Backend returns the configured backend type
func (p *Provider) Backend() string {
	return p.backend
}

// HasWeightsFile reports whether tables come from a TOML file
func (p *Provider) HasWeightsFile() bool {
	return p.weightsPath != ""
}

// Tables returns the tables from the weights file, or the built-in tables when no
// file is configured
func (p *Provider) Tables() (*model.WeightTables, error) {
	if p.weightsPath == "" {
		return model.DefaultWeightTables(), nil
	}
	return LoadWeights(p.weightsPath)
}

// Configure opens the weight table store of the configured backend. The memory
// backend serves Tables() directly; the others serve whatever was seeded with migrate.
// The caller is responsible for calling Close() on the returned store.
func (p *Provider) Configure(ctx context.Context) (interfaces.WeightTableStore, error) {
	switch p.backend {
	case "", BackendMemory:
		tables, err := p.Tables()
		if err != nil {
			return nil, err
		}
		logging.Default().Info("Using in-memory weight tables", "latency", p.latency)
		return memory.New(memory.WithTables(tables), memory.WithLatency(p.latency)), nil

	case BackendSQLite:
		store, err := sqlite.New(ctx, p.sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite store")
		}
		logging.Default().Info("Using SQLite weight tables", "path", p.sqlitePath)
		return store, nil

	case BackendFirestore:
		if p.projectID == "" {
			return nil, goerr.Wrap(ErrMissingOption, "firestore-project-id is required when using firestore backend")
		}
		var opts []firestore.Option
		if p.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(p.collectionPrefix))
		}
		store, err := firestore.New(ctx, p.projectID, p.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore store")
		}
		logging.Default().Info("Using Firestore weight tables",
			"project_id", p.projectID,
			"database_id", p.databaseID,
		)
		return store, nil

	default:
		return nil, goerr.Wrap(ErrUnknownBackend, "invalid provider backend", goerr.V(BackendKey, p.backend))
	}
}
