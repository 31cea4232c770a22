// Package seeders loads development fixtures. Each seeder registers itself
// in init() and the CLI runs them in registration order.
package seeders

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/pkg/logger"
)

type Seeder struct {
	Name string
	Run  func(ctx context.Context, db *mongo.Database) error
}

var registry []Seeder

func Register(name string, run func(ctx context.Context, db *mongo.Database) error) {
	registry = append(registry, Seeder{Name: name, Run: run})
}

// RunAll executes every registered seeder, stopping at the first failure.
func RunAll(ctx context.Context, db *mongo.Database) error {
	for _, s := range registry {
		logger.Info("seed: running", "seeder", s.Name)
		if err := s.Run(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
