package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"github.com/secmon-lab/zombiequote/pkg/utils/safe"

	_ "modernc.org/sqlite"
)

// openDB is swapped in tests to simulate driver failures
var openDB = sql.Open

var schema = []string{
	`CREATE TABLE IF NOT EXISTS weights (
		dimension TEXT    NOT NULL,
		label     TEXT    NOT NULL,
		weight    INTEGER NOT NULL CHECK (weight >= 0),
		PRIMARY KEY (dimension, label)
	)`,
	`CREATE TABLE IF NOT EXISTS seeded_dimensions (
		dimension TEXT PRIMARY KEY
	)`,
}

// SQLite serves weight tables from a single `weights` table keyed by dimension and
// label. Threshold rows use tier names as labels and bounds as weights.
// `seeded_dimensions` records every dimension written by Seed so an empty table
// can be told apart from one that was never seeded.
type SQLite struct {
	db *sql.DB
}

var _ interfaces.WeightTableStore = &SQLite{}

// New opens (and creates if needed) the database at path
func New(ctx context.Context, path string) (*SQLite, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			safe.Close(ctx, db)
			return nil, goerr.Wrap(err, "failed to apply pragma", goerr.V("pragma", p))
		}
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			safe.Close(ctx, db)
			return nil, goerr.Wrap(err, "failed to migrate sqlite schema", goerr.V("path", path))
		}
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) rows(ctx context.Context, dim types.Dimension) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, weight FROM weights WHERE dimension = ?`, dim.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query weight table", goerr.V(model.DimensionKey, dim))
	}
	defer safe.Close(ctx, rows)

	weights := make(map[string]int)
	for rows.Next() {
		var label string
		var weight int
		if err := rows.Scan(&label, &weight); err != nil {
			return nil, goerr.Wrap(err, "failed to scan weight row", goerr.V(model.DimensionKey, dim))
		}
		weights[label] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate weight rows", goerr.V(model.DimensionKey, dim))
	}

	if len(weights) == 0 {
		seeded, err := s.isSeeded(ctx, dim)
		if err != nil {
			return nil, err
		}
		if !seeded {
			return nil, goerr.Wrap(ErrNotFound, "weight table not seeded", goerr.V(model.DimensionKey, dim))
		}
	}
	return weights, nil
}

func (s *SQLite) isSeeded(ctx context.Context, dim types.Dimension) (bool, error) {
	var found int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM seeded_dimensions WHERE dimension = ?`, dim.String()).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to look up seeded dimension", goerr.V(model.DimensionKey, dim))
	}
	return true, nil
}

func (s *SQLite) fetch(ctx context.Context, dim types.Dimension) (model.WeightTable, error) {
	weights, err := s.rows(ctx, dim)
	if err != nil {
		return nil, err
	}
	return model.WeightTable(weights), nil
}

func (s *SQLite) FetchDefenseWeights(ctx context.Context) (model.WeightTable, error) {
	return s.fetch(ctx, types.DimensionDefense)
}

func (s *SQLite) FetchEscapeWeights(ctx context.Context) (model.WeightTable, error) {
	return s.fetch(ctx, types.DimensionEscape)
}

func (s *SQLite) FetchToleranceWeights(ctx context.Context) (model.WeightTable, error) {
	return s.fetch(ctx, types.DimensionTolerance)
}

func (s *SQLite) FetchStressWeights(ctx context.Context) (model.WeightTable, error) {
	return s.fetch(ctx, types.DimensionStress)
}

func (s *SQLite) FetchLocationWeights(ctx context.Context) (model.WeightTable, error) {
	return s.fetch(ctx, types.DimensionLocation)
}

func (s *SQLite) FetchThresholds(ctx context.Context) (model.ThresholdTable, error) {
	weights, err := s.rows(ctx, types.DimensionThresholds)
	if err != nil {
		return model.ThresholdTable{}, err
	}

	bounds := make(map[types.Tier]int, len(weights))
	for name, bound := range weights {
		tier, err := types.ParseTier(name)
		if err != nil {
			return model.ThresholdTable{}, goerr.Wrap(err, "stored threshold has unknown tier", goerr.V(model.TierKey, name))
		}
		bounds[tier] = bound
	}
	return model.NewThresholdTable(bounds), nil
}

// Seed replaces every stored row in one transaction
func (s *SQLite) Seed(ctx context.Context, tables *model.WeightTables) error {
	if err := tables.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to seed invalid weight tables")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to begin seed transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weights`); err != nil {
		return goerr.Wrap(err, "failed to clear weight tables")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seeded_dimensions`); err != nil {
		return goerr.Wrap(err, "failed to clear seeded dimensions")
	}
	for _, dim := range types.AllDimensions() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO seeded_dimensions (dimension) VALUES (?)`, dim.String()); err != nil {
			return goerr.Wrap(err, "failed to mark dimension seeded", goerr.V(model.DimensionKey, dim))
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO weights (dimension, label, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return goerr.Wrap(err, "failed to prepare weight insert")
	}
	defer safe.Close(ctx, stmt)

	for _, dim := range types.ScoringDimensions() {
		for label, w := range tables.Table(dim) {
			if _, err := stmt.ExecContext(ctx, dim.String(), label, w); err != nil {
				return goerr.Wrap(err, "failed to insert weight",
					goerr.V(model.DimensionKey, dim),
					goerr.V(model.LabelKey, label))
			}
		}
	}
	for tier, bound := range tables.Thresholds.Bounds() {
		if _, err := stmt.ExecContext(ctx, types.DimensionThresholds.String(), tier.String(), bound); err != nil {
			return goerr.Wrap(err, "failed to insert threshold", goerr.V(model.TierKey, tier))
		}
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "failed to commit seed transaction")
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
