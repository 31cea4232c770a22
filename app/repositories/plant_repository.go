package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
)

// PlantRepository wraps the plants collection.
type PlantRepository struct {
	col *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{col: db.Collection("plants")}
}

func (r *PlantRepository) All(ctx context.Context) ([]models.Plant, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("repositories: list plants: %w", err)
	}
	plants := []models.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("repositories: decode plants: %w", err)
	}
	return plants, nil
}

// FindByID takes the hex id from the URL; a malformed hex is reported as an
// ErrInvalidObjectID wrap so handlers can answer 400 instead of 500.
func (r *PlantRepository) FindByID(ctx context.Context, id string) (models.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Plant{}, fmt.Errorf("repositories: plant id %q: %w", id, err)
	}
	var p models.Plant
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&p); err != nil {
		return models.Plant{}, fmt.Errorf("repositories: find plant %s: %w", id, err)
	}
	return p, nil
}

func (r *PlantRepository) Insert(ctx context.Context, p models.Plant) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("repositories: insert plant: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *PlantRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("repositories: plant id %q: %w", id, err)
	}
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("repositories: delete plant %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

// BySeller lists a seller's own inventory.
func (r *PlantRepository) BySeller(ctx context.Context, email string) ([]models.Plant, error) {
	cur, err := r.col.Find(ctx, bson.D{{Key: "seller.email", Value: email}})
	if err != nil {
		return nil, fmt.Errorf("repositories: list seller plants: %w", err)
	}
	plants := []models.Plant{}
	if err := cur.All(ctx, &plants); err != nil {
		return nil, fmt.Errorf("repositories: decode seller plants: %w", err)
	}
	return plants, nil
}

// IncQuantity applies a signed $inc to the stock counter. The counter is not
// floor-guarded here; callers own the sign of delta.
func (r *PlantRepository) IncQuantity(ctx context.Context, id string, delta int) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("repositories: plant id %q: %w", id, err)
	}
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "quantity", Value: delta}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("repositories: adjust plant quantity: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *PlantRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("repositories: count plants: %w", err)
	}
	return n, nil
}
