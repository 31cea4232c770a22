package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
)

// OrderRepository wraps the orders collection, including the lookup pipelines
// that join plant display fields into order listings.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

func (r *OrderRepository) Insert(ctx context.Context, o models.Order) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("repositories: insert order: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, fmt.Errorf("repositories: order id %q: %w", id, err)
	}
	var o models.Order
	if err := r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&o); err != nil {
		return models.Order{}, fmt.Errorf("repositories: find order %s: %w", id, err)
	}
	return o, nil
}

func (r *OrderRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("repositories: order id %q: %w", id, err)
	}
	res, err := r.col.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("repositories: delete order %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id, status string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, fmt.Errorf("repositories: order id %q: %w", id, err)
	}
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("repositories: set order status: %w", err)
	}
	return res.ModifiedCount, nil
}

// ByCustomer returns a customer's orders enriched with the referenced plant's
// name, category and image.
func (r *OrderRepository) ByCustomer(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	return r.enriched(ctx, bson.D{{Key: "customer.email", Value: email}})
}

// BySeller is the same join filtered by the seller's email.
func (r *OrderRepository) BySeller(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	return r.enriched(ctx, bson.D{{Key: "seller", Value: email}})
}

func (r *OrderRepository) enriched(ctx context.Context, match bson.D) ([]models.EnrichedOrder, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		// plantId is stored as a hex string; convert before the lookup.
		{{Key: "$addFields", Value: bson.D{
			{Key: "plantId", Value: bson.D{{Key: "$toObjectId", Value: "$plantId"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "plants"},
			{Key: "localField", Value: "plantId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "plants"},
		}}},
		{{Key: "$unwind", Value: "$plants"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: "$plants.name"},
			{Key: "category", Value: "$plants.category"},
			{Key: "image", Value: "$plants.image"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "plants", Value: 0}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("repositories: aggregate orders: %w", err)
	}
	orders := []models.EnrichedOrder{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("repositories: decode orders: %w", err)
	}
	return orders, nil
}

// Totals sums revenue and order count across the whole collection.
func (r *OrderRepository) Totals(ctx context.Context) (revenue float64, orders int64, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "totalOrders", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("repositories: order totals: %w", err)
	}
	defer cur.Close(ctx)
	var row struct {
		TotalRevenue float64 `bson:"totalRevenue"`
		TotalOrders  int64   `bson:"totalOrders"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, 0, fmt.Errorf("repositories: decode order totals: %w", err)
		}
	}
	return row.TotalRevenue, row.TotalOrders, cur.Err()
}

// Chart buckets orders per calendar day, recovering the creation instant from
// the ObjectID timestamp.
//
// TODO: iterate the full cursor; only the first bucket is returned today,
// which matches what the dashboard currently renders but drops history.
func (r *OrderRepository) Chart(ctx context.Context) ([]models.ChartRow, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: bson.D{{Key: "$toDate", Value: "$_id"}}},
			}}}},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$quantity"}}},
			{Key: "price", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			{Key: "order", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("repositories: order chart: %w", err)
	}
	defer cur.Close(ctx)
	rows := []models.ChartRow{}
	if cur.Next(ctx) {
		var row models.ChartRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("repositories: decode chart row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, cur.Err()
}

func (r *OrderRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("repositories: count orders: %w", err)
	}
	return n, nil
}
