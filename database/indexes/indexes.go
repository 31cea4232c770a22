// Package indexes declares the Mongo indexes the API relies on and creates
// them at boot. CreateIndexes is idempotent, so running this on every start
// is safe.
package indexes

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func Ensure(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	// Upsert-by-email depends on email being unique.
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("indexes: users.email: %w", err)
	}

	_, err = db.Collection("plants").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "seller.email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("indexes: plants.seller: %w", err)
	}

	_, err = db.Collection("orders").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customer.email", Value: 1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("indexes: orders: %w", err)
	}

	// Logs rotate themselves after 30 days.
	_, err = db.Collection("logs").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "time", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(30 * 24 * 3600),
	})
	if err != nil {
		return fmt.Errorf("indexes: logs.time: %w", err)
	}
	return nil
}
