package services

import (
	"context"

	"github.com/plantnet-dev/plantnet/app/models"
)

// ReportService answers the read-side questions: per-user order history and
// the admin dashboard aggregates.
type ReportService struct {
	users  UserStore
	plants PlantStore
	orders OrderStore
}

func NewReportService(users UserStore, plants PlantStore, orders OrderStore) *ReportService {
	return &ReportService{users: users, plants: plants, orders: orders}
}

func (s *ReportService) CustomerOrders(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	return s.orders.ByCustomer(ctx, email)
}

func (s *ReportService) SellerOrders(ctx context.Context, email string) ([]models.EnrichedOrder, error) {
	return s.orders.BySeller(ctx, email)
}

// AdminStats gathers the dashboard totals. Counts are estimated, which is
// fine for a dashboard and cheap on large collections.
func (s *ReportService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats

	var err error
	if stats.TotalUsers, err = s.users.EstimatedCount(ctx); err != nil {
		return stats, err
	}
	if stats.TotalPlants, err = s.plants.EstimatedCount(ctx); err != nil {
		return stats, err
	}
	if stats.TotalRevenue, stats.TotalOrders, err = s.orders.Totals(ctx); err != nil {
		return stats, err
	}
	if stats.ChartData, err = s.orders.Chart(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}
