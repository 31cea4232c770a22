package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
)

// UserRepository wraps the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// FindByEmail returns the user or mongo.ErrNoDocuments.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u); err != nil {
		return models.User{}, fmt.Errorf("repositories: find user %q: %w", email, err)
	}
	return u, nil
}

func (r *UserRepository) Insert(ctx context.Context, u models.User) (primitive.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("repositories: insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// SetStatus updates only the status field and reports the modified count.
func (r *UserRepository) SetStatus(ctx context.Context, email, status string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: status}}}},
	)
	if err != nil {
		return 0, fmt.Errorf("repositories: set user status: %w", err)
	}
	return res.ModifiedCount, nil
}

// SetRoleAndStatus is the admin promotion path; promotion also marks the
// account Verified so a pending seller request is consumed.
func (r *UserRepository) SetRoleAndStatus(ctx context.Context, email, role, status string) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "role", Value: role},
			{Key: "status", Value: status},
		}}},
	)
	if err != nil {
		return 0, fmt.Errorf("repositories: set user role: %w", err)
	}
	return res.ModifiedCount, nil
}

// AllExcept lists every user but the given one, for the admin manage view.
func (r *UserRepository) AllExcept(ctx context.Context, email string) ([]models.User, error) {
	cur, err := r.col.Find(ctx, bson.D{{Key: "email", Value: bson.D{{Key: "$ne", Value: email}}}})
	if err != nil {
		return nil, fmt.Errorf("repositories: list users: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("repositories: decode users: %w", err)
	}
	return users, nil
}

// RoleOf resolves the live role for an email; unknown users get "".
func (r *UserRepository) RoleOf(ctx context.Context, email string) (string, error) {
	u, err := r.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (r *UserRepository) EstimatedCount(ctx context.Context) (int64, error) {
	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("repositories: count users: %w", err)
	}
	return n, nil
}
