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

type fakePlantStore struct {
	plants map[string]models.Plant
}

func newFakePlantStore(plants ...models.Plant) *fakePlantStore {
	s := &fakePlantStore{plants: map[string]models.Plant{}}
	for _, p := range plants {
		s.plants[p.ID.Hex()] = p
	}
	return s
}

func (s *fakePlantStore) All(context.Context) ([]models.Plant, error) {
	out := []models.Plant{}
	for _, p := range s.plants {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePlantStore) FindByID(_ context.Context, id string) (models.Plant, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return models.Plant{}, err
	}
	p, ok := s.plants[id]
	if !ok {
		return models.Plant{}, mongo.ErrNoDocuments
	}
	return p, nil
}

func (s *fakePlantStore) Insert(_ context.Context, p models.Plant) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	s.plants[p.ID.Hex()] = p
	return p.ID, nil
}

func (s *fakePlantStore) DeleteByID(_ context.Context, id string) (int64, error) {
	if _, ok := s.plants[id]; !ok {
		return 0, nil
	}
	delete(s.plants, id)
	return 1, nil
}

func (s *fakePlantStore) BySeller(_ context.Context, email string) ([]models.Plant, error) {
	out := []models.Plant{}
	for _, p := range s.plants {
		if p.Seller.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePlantStore) IncQuantity(_ context.Context, id string, delta int) (int64, error) {
	p, ok := s.plants[id]
	if !ok {
		return 0, nil
	}
	p.Quantity += delta
	s.plants[id] = p
	return 1, nil
}

func (s *fakePlantStore) EstimatedCount(context.Context) (int64, error) {
	return int64(len(s.plants)), nil
}

func TestQuantityDelta(t *testing.T) {
	assert.Equal(t, 3, QuantityDelta("increase", 3))
	assert.Equal(t, -3, QuantityDelta("decrease", 3))
	// Anything that isn't an explicit increase decrements.
	assert.Equal(t, -3, QuantityDelta("", 3))
	assert.Equal(t, -3, QuantityDelta("restock", 3))
}

func TestAdjustQuantityDecrements(t *testing.T) {
	plant := models.Plant{ID: primitive.NewObjectID(), Quantity: 10}
	store := newFakePlantStore(plant)
	svc := NewCatalogService(store)

	n, err := svc.AdjustQuantity(context.Background(), plant.ID.Hex(), 4, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 6, store.plants[plant.ID.Hex()].Quantity)
}

func TestAdjustQuantityIncrease(t *testing.T) {
	plant := models.Plant{ID: primitive.NewObjectID(), Quantity: 10}
	store := newFakePlantStore(plant)
	svc := NewCatalogService(store)

	_, err := svc.AdjustQuantity(context.Background(), plant.ID.Hex(), 4, "increase")
	require.NoError(t, err)
	assert.Equal(t, 14, store.plants[plant.ID.Hex()].Quantity)
}

func TestGetUnknownPlant(t *testing.T) {
	svc := NewCatalogService(newFakePlantStore())

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMalformedID(t *testing.T) {
	svc := NewCatalogService(newFakePlantStore())

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestSellerPlantsFilters(t *testing.T) {
	store := newFakePlantStore(
		models.Plant{ID: primitive.NewObjectID(), Seller: models.SellerRef{Email: "a@x.com"}},
		models.Plant{ID: primitive.NewObjectID(), Seller: models.SellerRef{Email: "b@x.com"}},
	)
	svc := NewCatalogService(store)

	mine, err := svc.SellerPlants(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "a@x.com", mine[0].Seller.Email)
}

func TestCreateAndDelete(t *testing.T) {
	store := newFakePlantStore()
	svc := NewCatalogService(store)

	id, err := svc.Create(context.Background(), models.Plant{Name: "Monstera"})
	require.NoError(t, err)
	assert.Len(t, store.plants, 1)

	n, err := svc.Delete(context.Background(), id.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, store.plants)
}

// List goes straight to the store when Redis is not connected.
func TestListWithoutRedis(t *testing.T) {
	store := newFakePlantStore(models.Plant{ID: primitive.NewObjectID(), Name: "Fern"})
	svc := NewCatalogService(store)

	plants, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, plants, 1)
}
