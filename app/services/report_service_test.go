package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/plantnet-dev/plantnet/app/models"
)

func TestAdminStats(t *testing.T) {
	users := newFakeUserStore(
		models.User{Email: "a@x.com", Role: models.RoleAdmin},
		models.User{Email: "c@x.com", Role: models.RoleCustomer},
	)
	plants := newFakePlantStore(
		models.Plant{ID: primitive.NewObjectID(), Name: "Fern"},
	)
	orders := newFakeOrderStore(
		models.Order{ID: primitive.NewObjectID(), Price: 30, Quantity: 1},
		models.Order{ID: primitive.NewObjectID(), Price: 70, Quantity: 2},
	)

	svc := NewReportService(users, plants, orders)
	stats, err := svc.AdminStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalPlants)
	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, float64(100), stats.TotalRevenue)

	require.Len(t, stats.ChartData, 1)
	assert.Equal(t, 3, stats.ChartData[0].Quantity)
	assert.Equal(t, 2, stats.ChartData[0].Order)
}
