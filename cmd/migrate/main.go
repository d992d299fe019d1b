package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/distribution-service/internal/domain"
)

// Bootstrap tool: creates the indexes the service relies on and optionally
// seeds a named distribution config from a YAML file.

var (
	mongoURI   = flag.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName     = flag.String("db", "distribution", "Database name")
	configFile = flag.String("config-file", "", "YAML config file to seed (optional)")
	configName = flag.String("config-name", "default", "Name to store the seeded config under")
	dryRun     = flag.Bool("dry-run", false, "Print what would be done without writing")
)

func main() {
	flag.Parse()

	log.Printf("Starting distribution migration...")
	log.Printf("MongoDB URI: %s", *mongoURI)
	log.Printf("Database: %s", *dbName)
	log.Printf("Dry Run: %v", *dryRun)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB successfully")

	db := client.Database(*dbName)

	if err := ensureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Index creation failed: %v", err)
	}

	if *configFile != "" {
		if err := seedConfig(context.Background(), db); err != nil {
			log.Fatalf("Config seeding failed: %v", err)
		}
	}

	log.Println("Migration completed successfully!")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if *dryRun {
		log.Println("Dry run: would create indexes on distribution_runs and distribution_configs")
		return nil
	}

	runIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "runId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "mode", Value: 1}}},
	}
	if _, err := db.Collection("distribution_runs").Indexes().CreateMany(ctx, runIndexes); err != nil {
		return fmt.Errorf("failed to create run indexes: %w", err)
	}
	log.Println("Created indexes on distribution_runs")

	configIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection("distribution_configs").Indexes().CreateMany(ctx, configIndexes); err != nil {
		return fmt.Errorf("failed to create config indexes: %w", err)
	}
	log.Println("Created indexes on distribution_configs")

	return nil
}

func seedConfig(ctx context.Context, db *mongo.Database) error {
	data, err := os.ReadFile(*configFile)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := domain.ParseConfigYAML(data)
	if err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}
	log.Printf("Parsed config %q: %d stores, threshold %d", *configName, len(cfg.StorePriority), cfg.BalanceThreshold)

	if *dryRun {
		log.Printf("Dry run: would store config %q", *configName)
		return nil
	}

	doc := bson.M{
		"name":      *configName,
		"config":    cfg,
		"updatedAt": time.Now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := db.Collection("distribution_configs").ReplaceOne(ctx, bson.M{"name": *configName}, doc, opts); err != nil {
		return fmt.Errorf("failed to store config: %w", err)
	}
	log.Printf("Stored config %q", *configName)

	return nil
}
