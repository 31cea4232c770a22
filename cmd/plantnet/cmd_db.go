package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/config"
	"github.com/plantnet-dev/plantnet/database/indexes"
	"github.com/plantnet-dev/plantnet/database/seeders"
	"github.com/plantnet-dev/plantnet/pkg/mongodb"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load development fixtures into Mongo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(ctx context.Context, db *mongo.Database) error {
			return seeders.RunAll(ctx, db)
		})
	},
}

var indexCmd = &cobra.Command{
	Use:   "index:ensure",
	Short: "Create the Mongo indexes the API depends on",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(indexes.Ensure)
	},
}

// withDB connects, runs fn against the configured database, and disconnects.
func withDB(fn func(ctx context.Context, db *mongo.Database) error) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongodb.Connect(ctx, config.MongoURI())
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck

	return fn(ctx, client.Database(config.MongoDB()))
}
