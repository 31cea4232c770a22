package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
)

// UserStore is the slice of the user repository the services need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Insert(ctx context.Context, u models.User) (primitive.ObjectID, error)
	SetStatus(ctx context.Context, email, status string) (int64, error)
	SetRoleAndStatus(ctx context.Context, email, role, status string) (int64, error)
	AllExcept(ctx context.Context, email string) ([]models.User, error)
	RoleOf(ctx context.Context, email string) (string, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

// SellerRequestNotifier is pinged when a user asks to become a seller.
type SellerRequestNotifier interface {
	SellerRequested(u models.User)
}

type UserService struct {
	users  UserStore
	notify SellerRequestNotifier
}

func NewUserService(users UserStore, notify SellerRequestNotifier) *UserService {
	return &UserService{users: users, notify: notify}
}

// Upsert records a user on first contact. A repeat call with the same email
// returns the stored document untouched, so sign-in stays idempotent and
// never downgrades a promoted role.
func (s *UserService) Upsert(ctx context.Context, email string, input models.User) (models.User, bool, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, false, err
	}

	input.Email = email
	input.Role = models.RoleCustomer
	input.Timestamp = time.Now().UnixMilli()
	id, err := s.users.Insert(ctx, input)
	if err != nil {
		return models.User{}, false, err
	}
	input.ID = id
	return input, true, nil
}

// RequestSeller marks the user as wanting seller status. A second request
// while one is pending is rejected so admins see each ask once.
func (s *UserService) RequestSeller(ctx context.Context, email string) (int64, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("request seller: %w", ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	if u.Status == models.StatusRequested {
		return 0, ErrSellerRequestPending
	}

	n, err := s.users.SetStatus(ctx, email, models.StatusRequested)
	if err != nil {
		return 0, err
	}
	if s.notify != nil {
		s.notify.SellerRequested(u)
	}
	return n, nil
}

// RoleFor reports the stored role; unknown emails resolve to "".
func (s *UserService) RoleFor(ctx context.Context, email string) (string, error) {
	return s.users.RoleOf(ctx, email)
}

// AllExcept backs the admin user list, which hides the admin's own row.
func (s *UserService) AllExcept(ctx context.Context, email string) ([]models.User, error) {
	return s.users.AllExcept(ctx, email)
}

// UpdateRole is the admin decision on a role; it also marks the account
// Verified so any pending seller request is settled.
func (s *UserService) UpdateRole(ctx context.Context, email, role string) (int64, error) {
	return s.users.SetRoleAndStatus(ctx, email, role, models.StatusVerified)
}
