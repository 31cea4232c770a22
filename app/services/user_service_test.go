package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
)

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]models.User{}}
	for _, u := range users {
		s.users[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return models.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

func (s *fakeUserStore) Insert(_ context.Context, u models.User) (primitive.ObjectID, error) {
	u.ID = primitive.NewObjectID()
	s.users[u.Email] = u
	return u.ID, nil
}

func (s *fakeUserStore) SetStatus(_ context.Context, email, status string) (int64, error) {
	u, ok := s.users[email]
	if !ok {
		return 0, nil
	}
	u.Status = status
	s.users[email] = u
	return 1, nil
}

func (s *fakeUserStore) SetRoleAndStatus(_ context.Context, email, role, status string) (int64, error) {
	u, ok := s.users[email]
	if !ok {
		return 0, nil
	}
	u.Role = role
	u.Status = status
	s.users[email] = u
	return 1, nil
}

func (s *fakeUserStore) AllExcept(_ context.Context, email string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range s.users {
		if u.Email != email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) RoleOf(_ context.Context, email string) (string, error) {
	return s.users[email].Role, nil
}

func (s *fakeUserStore) EstimatedCount(context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type recordingSellerNotifier struct {
	requested []models.User
}

func (n *recordingSellerNotifier) SellerRequested(u models.User) {
	n.requested = append(n.requested, u)
}

func TestUpsertCreatesCustomer(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, nil)

	u, created, err := svc.Upsert(context.Background(), "new@x.com", models.User{Name: "New"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.RoleCustomer, u.Role)
	assert.Positive(t, u.Timestamp)
	assert.False(t, u.ID.IsZero())
}

func TestUpsertIsIdempotent(t *testing.T) {
	seller := models.User{
		ID:    primitive.NewObjectID(),
		Email: "s@x.com",
		Role:  models.RoleSeller,
	}
	store := newFakeUserStore(seller)
	svc := NewUserService(store, nil)

	u, created, err := svc.Upsert(context.Background(), "s@x.com", models.User{Name: "Renamed"})
	require.NoError(t, err)
	assert.False(t, created)
	// Re-login must not downgrade a promoted role or touch the record.
	assert.Equal(t, models.RoleSeller, u.Role)
	assert.Equal(t, seller.ID, u.ID)
}

func TestRequestSellerFirstTime(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "c@x.com", Role: models.RoleCustomer})
	notifier := &recordingSellerNotifier{}
	svc := NewUserService(store, notifier)

	n, err := svc.RequestSeller(context.Background(), "c@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, models.StatusRequested, store.users["c@x.com"].Status)
	assert.Len(t, notifier.requested, 1)
}

func TestRequestSellerDuplicate(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "c@x.com", Status: models.StatusRequested})
	notifier := &recordingSellerNotifier{}
	svc := NewUserService(store, notifier)

	_, err := svc.RequestSeller(context.Background(), "c@x.com")
	assert.ErrorIs(t, err, ErrSellerRequestPending)
	assert.Empty(t, notifier.requested)
}

func TestRequestSellerUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)

	_, err := svc.RequestSeller(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoleVerifies(t *testing.T) {
	store := newFakeUserStore(models.User{Email: "c@x.com", Role: models.RoleCustomer, Status: models.StatusRequested})
	svc := NewUserService(store, nil)

	n, err := svc.UpdateRole(context.Background(), "c@x.com", models.RoleSeller)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, models.RoleSeller, store.users["c@x.com"].Role)
	assert.Equal(t, models.StatusVerified, store.users["c@x.com"].Status)
}

func TestRoleForUnknownIsEmpty(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), nil)

	role, err := svc.RoleFor(context.Background(), "ghost@x.com")
	require.NoError(t, err)
	assert.Empty(t, role)
}
