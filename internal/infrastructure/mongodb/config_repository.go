package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/distribution-service/internal/domain"
	sharedMongo "github.com/wms-platform/distribution-service/pkg/mongodb"
)

const configCollection = "distribution_configs"

type storedConfig struct {
	Name      string                    `bson:"name"`
	Config    domain.DistributionConfig `bson:"config"`
	UpdatedAt time.Time                 `bson:"updatedAt"`
}

// ConfigRepository stores named distribution configs in MongoDB. Saving a
// config under an existing name replaces it.
type ConfigRepository struct {
	collection *sharedMongo.InstrumentedCollection
}

func NewConfigRepository(client *sharedMongo.InstrumentedClient) *ConfigRepository {
	repo := &ConfigRepository{
		collection: client.Collection(configCollection),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ConfigRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: sharedMongo.SortAscending("name"), Options: options.Index().SetUnique(true)},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ConfigRepository) Save(ctx context.Context, name string, cfg domain.DistributionConfig) error {
	doc := storedConfig{
		Name:      name,
		Config:    cfg,
		UpdatedAt: sharedMongo.Now(),
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"name": name}, doc, opts); err != nil {
		return fmt.Errorf("failed to save config %q: %w", name, err)
	}
	return nil
}

func (r *ConfigRepository) FindByName(ctx context.Context, name string) (*domain.DistributionConfig, error) {
	var doc storedConfig
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config %q: %w", name, err)
	}
	return &doc.Config, nil
}

func (r *ConfigRepository) List(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list configs: %w", err)
	}

	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}
