package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/cache"
	"github.com/plantnet-dev/plantnet/pkg/metrics"
)

// PlantStore is the slice of the plant repository the services need.
type PlantStore interface {
	All(ctx context.Context) ([]models.Plant, error)
	FindByID(ctx context.Context, id string) (models.Plant, error)
	Insert(ctx context.Context, p models.Plant) (primitive.ObjectID, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	BySeller(ctx context.Context, email string) ([]models.Plant, error)
	IncQuantity(ctx context.Context, id string, delta int) (int64, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

const (
	catalogCacheKey = "plants:all"
	catalogCacheTTL = 60 * time.Second
)

// CatalogService owns the public plant catalog and the seller inventory
// operations behind it.
type CatalogService struct {
	plants PlantStore
}

func NewCatalogService(plants PlantStore) *CatalogService {
	return &CatalogService{plants: plants}
}

// List serves the public catalog, via Redis when warm. Cache misses and
// Redis outages both fall through to Mongo.
func (s *CatalogService) List(ctx context.Context) ([]models.Plant, error) {
	var cached []models.Plant
	if cache.Get(catalogCacheKey, &cached) {
		metrics.CatalogCacheHits.Inc()
		return cached, nil
	}
	metrics.CatalogCacheMisses.Inc()

	plants, err := s.plants.All(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(catalogCacheKey, plants, catalogCacheTTL)
	return plants, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (models.Plant, error) {
	p, err := s.plants.FindByID(ctx, id)
	if err != nil {
		return models.Plant{}, mapPlantErr(err)
	}
	return p, nil
}

// Create inserts a seller's plant and invalidates the catalog cache.
func (s *CatalogService) Create(ctx context.Context, p models.Plant) (primitive.ObjectID, error) {
	id, err := s.plants.Insert(ctx, p)
	if err != nil {
		return primitive.NilObjectID, err
	}
	_ = cache.Del(catalogCacheKey)
	return id, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) (int64, error) {
	n, err := s.plants.DeleteByID(ctx, id)
	if err != nil {
		return 0, mapPlantErr(err)
	}
	_ = cache.Del(catalogCacheKey)
	return n, nil
}

// SellerPlants lists the inventory owned by one seller.
func (s *CatalogService) SellerPlants(ctx context.Context, email string) ([]models.Plant, error) {
	return s.plants.BySeller(ctx, email)
}

// AdjustQuantity moves the stock counter by qty in the given direction.
func (s *CatalogService) AdjustQuantity(ctx context.Context, id string, qty int, direction string) (int64, error) {
	n, err := s.plants.IncQuantity(ctx, id, QuantityDelta(direction, qty))
	if err != nil {
		return 0, mapPlantErr(err)
	}
	_ = cache.Del(catalogCacheKey)
	return n, nil
}

// QuantityDelta turns a direction keyword into a signed stock delta. Anything
// that is not an explicit "increase" decrements, which is what order
// placement relies on.
func QuantityDelta(direction string, qty int) int {
	if direction == "increase" {
		return qty
	}
	return -qty
}

func mapPlantErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("plant: %w", ErrNotFound)
	}
	if errors.Is(err, primitive.ErrInvalidHex) {
		return fmt.Errorf("plant: %w", ErrInvalidID)
	}
	return err
}
