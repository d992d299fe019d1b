package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/distribution-service/internal/domain"
	sharedMongo "github.com/wms-platform/distribution-service/pkg/mongodb"
)

const runCollection = "distribution_runs"

// RunRepository stores completed distribution runs in MongoDB.
type RunRepository struct {
	collection *sharedMongo.InstrumentedCollection
}

func NewRunRepository(client *sharedMongo.InstrumentedClient) *RunRepository {
	repo := &RunRepository{
		collection: client.Collection(runCollection),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *RunRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: sharedMongo.SortAscending("runId"), Options: options.Index().SetUnique(true)},
		{Keys: sharedMongo.SortDescending("createdAt")},
		{Keys: sharedMongo.SortAscending("mode")},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *RunRepository) Save(ctx context.Context, run *domain.DistributionRun) error {
	if run.ID.IsZero() {
		run.ID = sharedMongo.GenerateID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = sharedMongo.Now()
	}

	if _, err := r.collection.InsertOne(ctx, run); err != nil {
		return fmt.Errorf("failed to save distribution run: %w", err)
	}
	return nil
}

func (r *RunRepository) FindByRunID(ctx context.Context, runID string) (*domain.DistributionRun, error) {
	var run domain.DistributionRun
	err := r.collection.FindOne(ctx, bson.M{"runId": runID}).Decode(&run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find distribution run: %w", err)
	}
	return &run, nil
}

func (r *RunRepository) List(ctx context.Context, limit int64) ([]*domain.DistributionRun, error) {
	opts := options.Find().
		SetSort(sharedMongo.SortDescending("createdAt")).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list distribution runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []*domain.DistributionRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode distribution runs: %w", err)
	}
	return runs, nil
}
