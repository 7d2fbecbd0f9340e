// Command seed creates the default accounts and, with -demo, the sample
// campaign, influencer and link.
//
//	seed -mongo-uri mongodb://localhost:27017 -db affiliate_hub -demo
//
// Connection flags default to AFFILIATEHUB_MONGO_URI and
// AFFILIATEHUB_MONGO_DATABASE.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/affiliatehub/internal/app/system/indexes"
	"github.com/dalemusser/affiliatehub/internal/app/system/seed"
	"github.com/dalemusser/affiliatehub/internal/app/system/validators"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run() error {
	uri := flag.String("mongo-uri", envOr("AFFILIATEHUB_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	dbName := flag.String("db", envOr("AFFILIATEHUB_MONGO_DATABASE", "affiliate_hub"), "MongoDB database name")
	demo := flag.Bool("demo", false, "also seed the sample campaign, influencer and link")
	timeout := flag.Duration("timeout", time.Minute, "overall time limit")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if err := wafflemongo.ValidateURI(*uri); err != nil {
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*uri))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(*dbName)
	if err := validators.EnsureAll(ctx, db, logger); err != nil {
		return fmt.Errorf("ensure validators: %w", err)
	}
	if err := indexes.EnsureAll(ctx, db, logger); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	logger.Info("seeding users", zap.String("database", *dbName))
	s := seed.New(db, logger)
	n, err := s.EnsureDefaultUsers(ctx)
	if err != nil {
		return err
	}
	logger.Info("users seeded", zap.Int("created", n))

	if *demo {
		if _, _, err := s.SeedDemo(ctx, time.Now()); err != nil {
			return err
		}
	}
	logger.Info("seeding completed")
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
