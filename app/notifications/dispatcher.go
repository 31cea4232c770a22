package notifications

import (
	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/logger"
	"github.com/plantnet-dev/plantnet/pkg/metrics"
	"github.com/plantnet-dev/plantnet/pkg/notification"
	"github.com/plantnet-dev/plantnet/pkg/workerpool"
)

// Dispatcher delivers domain notifications on a bounded pool and counts
// failures. Handlers never wait on it.
type Dispatcher struct {
	pool *workerpool.Pool
}

func NewDispatcher(pool *workerpool.Pool) *Dispatcher {
	return &Dispatcher{pool: pool}
}

// OrderPlaced mails the customer confirmation and the seller alert.
func (d *Dispatcher) OrderPlaced(o models.Order) {
	d.deliver("order_confirmation", o.Customer.Email, &OrderConfirmation{Order: o})
	d.deliver("seller_order_alert", o.Seller, &SellerOrderAlert{Order: o})
}

// SellerRequested posts the admin Slack ping.
func (d *Dispatcher) SellerRequested(u models.User) {
	d.deliver("seller_requested", u.Email, &SellerRequested{User: u})
}

func (d *Dispatcher) deliver(event, address string, n notification.Notification) {
	send := func() {
		if errs := notification.Send(address, n); len(errs) > 0 {
			metrics.NotificationFailures.WithLabelValues(event).Add(float64(len(errs)))
		}
	}
	if err := d.pool.Submit(send); err != nil {
		// Pool saturated or draining. Drop the event: the request goroutine
		// must never wait on delivery.
		logger.Warn("notifications: event dropped", "event", event, "error", err)
		metrics.NotificationFailures.WithLabelValues(event).Inc()
	}
}
