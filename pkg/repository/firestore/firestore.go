package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/zombiequote/pkg/domain/interfaces"
	"github.com/secmon-lab/zombiequote/pkg/domain/model"
	"github.com/secmon-lab/zombiequote/pkg/domain/types"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// weightTableDocument stores one dimension. For the thresholds document, labels are
// tier names and weights are the exclusive upper bounds.
type weightTableDocument struct {
	Dimension string           `firestore:"dimension"`
	Weights   map[string]int64 `firestore:"weights"`
	UpdatedAt time.Time        `firestore:"updated_at"`
}

// Firestore serves weight tables stored as one document per dimension
type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
	clientOptions    []option.ClientOption
}

var _ interfaces.WeightTableStore = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

// WithClientOptions passes options such as credentials or an emulator endpoint to the
// Firestore client
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(f *Firestore) {
		f.clientOptions = append(f.clientOptions, opts...)
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	f := &Firestore{}
	for _, opt := range opts {
		opt(f)
	}

	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID, f.clientOptions...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}
	f.client = client

	return f, nil
}

func (f *Firestore) collection() string {
	if f.collectionPrefix != "" {
		return f.collectionPrefix + "_weight_tables"
	}
	return "weight_tables"
}

func (f *Firestore) get(ctx context.Context, dim types.Dimension) (map[string]int64, error) {
	doc, err := f.client.Collection(f.collection()).Doc(dim.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "weight table not found", goerr.V(model.DimensionKey, dim))
		}
		return nil, goerr.Wrap(err, "failed to get weight table", goerr.V(model.DimensionKey, dim))
	}

	var tableDoc weightTableDocument
	if err := doc.DataTo(&tableDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal weight table", goerr.V(model.DimensionKey, dim))
	}
	return tableDoc.Weights, nil
}

func (f *Firestore) fetch(ctx context.Context, dim types.Dimension) (model.WeightTable, error) {
	weights, err := f.get(ctx, dim)
	if err != nil {
		return nil, err
	}

	table := make(model.WeightTable, len(weights))
	for label, w := range weights {
		table[label] = int(w)
	}
	return table, nil
}

func (f *Firestore) FetchDefenseWeights(ctx context.Context) (model.WeightTable, error) {
	return f.fetch(ctx, types.DimensionDefense)
}

func (f *Firestore) FetchEscapeWeights(ctx context.Context) (model.WeightTable, error) {
	return f.fetch(ctx, types.DimensionEscape)
}

func (f *Firestore) FetchToleranceWeights(ctx context.Context) (model.WeightTable, error) {
	return f.fetch(ctx, types.DimensionTolerance)
}

func (f *Firestore) FetchStressWeights(ctx context.Context) (model.WeightTable, error) {
	return f.fetch(ctx, types.DimensionStress)
}

func (f *Firestore) FetchLocationWeights(ctx context.Context) (model.WeightTable, error) {
	return f.fetch(ctx, types.DimensionLocation)
}

func (f *Firestore) FetchThresholds(ctx context.Context) (model.ThresholdTable, error) {
	weights, err := f.get(ctx, types.DimensionThresholds)
	if err != nil {
		return model.ThresholdTable{}, err
	}

	bounds := make(map[types.Tier]int, len(weights))
	for name, bound := range weights {
		tier, err := types.ParseTier(name)
		if err != nil {
			return model.ThresholdTable{}, goerr.Wrap(err, "stored threshold has unknown tier", goerr.V(model.TierKey, name))
		}
		bounds[tier] = int(bound)
	}
	return model.NewThresholdTable(bounds), nil
}

// Seed overwrites all six documents in one transaction
func (f *Firestore) Seed(ctx context.Context, tables *model.WeightTables) error {
	if err := tables.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to seed invalid weight tables")
	}

	now := time.Now().UTC()
	docs := make(map[types.Dimension]*weightTableDocument, len(types.AllDimensions()))
	for _, dim := range types.ScoringDimensions() {
		docs[dim] = newDocument(dim, tables.Table(dim), now)
	}
	thresholds := make(model.WeightTable, tables.Thresholds.Len())
	for tier, bound := range tables.Thresholds.Bounds() {
		thresholds[tier.String()] = bound
	}
	docs[types.DimensionThresholds] = newDocument(types.DimensionThresholds, thresholds, now)

	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for dim, doc := range docs {
			ref := f.client.Collection(f.collection()).Doc(dim.String())
			if err := tx.Set(ref, doc); err != nil {
				return goerr.Wrap(err, "failed to set weight table", goerr.V(model.DimensionKey, dim))
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to seed weight tables")
	}

	return nil
}

func newDocument(dim types.Dimension, table model.WeightTable, now time.Time) *weightTableDocument {
	weights := make(map[string]int64, len(table))
	for label, w := range table {
		weights[label] = int64(w)
	}
	return &weightTableDocument{
		Dimension: dim.String(),
		Weights:   weights,
		UpdatedAt: now,
	}
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
