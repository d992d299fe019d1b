package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/distribution-service/pkg/logging"
	"github.com/wms-platform/distribution-service/pkg/metrics"
)

// InstrumentedClient wraps a MongoDB Client with metrics and logging
type InstrumentedClient struct {
	client  *Client
	metrics *metrics.Metrics
	logger  *logging.Logger
}

// NewInstrumentedClient creates a new instrumented MongoDB client
func NewInstrumentedClient(client *Client, m *metrics.Metrics, logger *logging.Logger) *InstrumentedClient {
	return &InstrumentedClient{
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Collection returns an instrumented collection
func (c *InstrumentedClient) Collection(name string) *InstrumentedCollection {
	return &InstrumentedCollection{
		collection: c.client.Collection(name),
		name:       name,
		metrics:    c.metrics,
		logger:     c.logger,
	}
}

// Database returns the underlying database handle
func (c *InstrumentedClient) Database() *mongo.Database {
	return c.client.Database()
}

// Close disconnects the client
func (c *InstrumentedClient) Close(ctx context.Context) error {
	return c.client.Close(ctx)
}

// HealthCheck performs a health check on the MongoDB connection
func (c *InstrumentedClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}

// InstrumentedCollection wraps a MongoDB Collection with metrics and logging
type InstrumentedCollection struct {
	collection *mongo.Collection
	name       string
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

func (c *InstrumentedCollection) record(ctx context.Context, operation string, start time.Time, err error, affected int64) {
	duration := time.Since(start)
	if c.metrics != nil {
		c.metrics.RecordMongoDBOperation(c.name, operation, err == nil, duration)
	}
	if c.logger != nil {
		c.logger.DatabaseQuery(ctx, c.name, operation, duration, err == nil, affected)
	}
}

// InsertOne inserts a document with instrumentation
func (c *InstrumentedCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	start := time.Now()
	result, err := c.collection.InsertOne(ctx, document, opts...)
	affected := int64(0)
	if err == nil {
		affected = 1
	}
	c.record(ctx, "insertOne", start, err, affected)
	return result, err
}

// FindOne finds a single document with instrumentation
func (c *InstrumentedCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	start := time.Now()
	result := c.collection.FindOne(ctx, filter, opts...)
	c.record(ctx, "findOne", start, result.Err(), 1)
	return result
}

// Find finds documents with instrumentation
func (c *InstrumentedCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	start := time.Now()
	cursor, err := c.collection.Find(ctx, filter, opts...)
	c.record(ctx, "find", start, err, -1)
	return cursor, err
}

// ReplaceOne replaces a document with instrumentation
func (c *InstrumentedCollection) ReplaceOne(ctx context.Context, filter, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	start := time.Now()
	result, err := c.collection.ReplaceOne(ctx, filter, replacement, opts...)
	affected := int64(0)
	if result != nil {
		affected = result.ModifiedCount + result.UpsertedCount
	}
	c.record(ctx, "replaceOne", start, err, affected)
	return result, err
}

// UpdateOne updates a document with instrumentation
func (c *InstrumentedCollection) UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	start := time.Now()
	result, err := c.collection.UpdateOne(ctx, filter, update, opts...)
	affected := int64(0)
	if result != nil {
		affected = result.ModifiedCount
	}
	c.record(ctx, "updateOne", start, err, affected)
	return result, err
}

// DeleteOne deletes a document with instrumentation
func (c *InstrumentedCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	start := time.Now()
	result, err := c.collection.DeleteOne(ctx, filter, opts...)
	affected := int64(0)
	if result != nil {
		affected = result.DeletedCount
	}
	c.record(ctx, "deleteOne", start, err, affected)
	return result, err
}

// CountDocuments counts documents with instrumentation
func (c *InstrumentedCollection) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	start := time.Now()
	count, err := c.collection.CountDocuments(ctx, filter, opts...)
	c.record(ctx, "countDocuments", start, err, count)
	return count, err
}

// Distinct returns distinct values with instrumentation
func (c *InstrumentedCollection) Distinct(ctx context.Context, fieldName string, filter interface{}, opts ...*options.DistinctOptions) ([]interface{}, error) {
	start := time.Now()
	values, err := c.collection.Distinct(ctx, fieldName, filter, opts...)
	c.record(ctx, "distinct", start, err, int64(len(values)))
	return values, err
}

// Indexes returns the collection's index view
func (c *InstrumentedCollection) Indexes() mongo.IndexView {
	return c.collection.Indexes()
}

