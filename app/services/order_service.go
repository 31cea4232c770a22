package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/metrics"
)

// OrderStore is the slice of the order repository the services need.
type OrderStore interface {
	Insert(ctx context.Context, o models.Order) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id string) (models.Order, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	SetStatus(ctx context.Context, id, status string) (int64, error)
	ByCustomer(ctx context.Context, email string) ([]models.EnrichedOrder, error)
	BySeller(ctx context.Context, email string) ([]models.EnrichedOrder, error)
	Totals(ctx context.Context) (float64, int64, error)
	Chart(ctx context.Context) ([]models.ChartRow, error)
	EstimatedCount(ctx context.Context) (int64, error)
}

// OrderNotifier fans out the purchase mails; failures must never reach the
// buyer's response.
type OrderNotifier interface {
	OrderPlaced(o models.Order)
}

type OrderService struct {
	orders OrderStore
	notify OrderNotifier
}

func NewOrderService(orders OrderStore, notify OrderNotifier) *OrderService {
	return &OrderService{orders: orders, notify: notify}
}

// Place records the purchase. The stock decrement is a separate follow-up
// call driven by the client, mirroring the two-step checkout flow.
func (s *OrderService) Place(ctx context.Context, o models.Order) (primitive.ObjectID, error) {
	if o.Status == "" {
		o.Status = models.OrderPending
	}
	id, err := s.orders.Insert(ctx, o)
	if err != nil {
		return primitive.NilObjectID, err
	}
	metrics.OrdersPlaced.Inc()
	if s.notify != nil {
		s.notify.OrderPlaced(o)
	}
	return id, nil
}

// Cancel removes an order unless it has already been delivered.
//
// TODO: restock the plant on cancel; needs a multi-document transaction so
// the delete and the $inc can't diverge.
func (s *OrderService) Cancel(ctx context.Context, id string) (int64, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return 0, mapOrderErr(err)
	}
	if o.Status == models.OrderDelivered {
		metrics.CancelConflicts.Inc()
		return 0, ErrOrderDelivered
	}
	n, err := s.orders.DeleteByID(ctx, id)
	if err != nil {
		return 0, mapOrderErr(err)
	}
	metrics.OrdersCancelled.Inc()
	return n, nil
}

// SetStatus is the seller's fulfilment update (Pending -> Processing ->
// Delivered). Transitions are not validated beyond the enum.
func (s *OrderService) SetStatus(ctx context.Context, id, status string) (int64, error) {
	n, err := s.orders.SetStatus(ctx, id, status)
	if err != nil {
		return 0, mapOrderErr(err)
	}
	return n, nil
}

func mapOrderErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("order: %w", ErrNotFound)
	}
	if errors.Is(err, primitive.ErrInvalidHex) {
		return fmt.Errorf("order: %w", ErrInvalidID)
	}
	return err
}
