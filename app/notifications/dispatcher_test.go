package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantnet-dev/plantnet/app/models"
	"github.com/plantnet-dev/plantnet/pkg/metrics"
	"github.com/plantnet-dev/plantnet/pkg/notification"
	"github.com/plantnet-dev/plantnet/pkg/workerpool"
)

func failureCount(event string) float64 {
	return testutil.ToFloat64(metrics.NotificationFailures.WithLabelValues(event))
}

func stubMail(t *testing.T, fn func(to, subject, body string) error) {
	t.Helper()
	notification.SetMailFunc(fn)
	t.Cleanup(func() {
		notification.SetMailFunc(func(string, string, string) error { return nil })
	})
}

func TestOrderPlacedNeverBlocksOnSaturatedPool(t *testing.T) {
	stubMail(t, func(string, string, string) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})

	pool := workerpool.New(1)
	release := make(chan struct{})
	for pool.Submit(func() { <-release }) == nil {
	}
	require.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)

	before := failureCount("order_confirmation") + failureCount("seller_order_alert")

	start := time.Now()
	NewDispatcher(pool).OrderPlaced(models.Order{
		Customer: models.CustomerRef{Email: "customer@x.com"},
		Seller:   "seller@x.com",
	})
	elapsed := time.Since(start)

	// Both events are dropped and counted; nothing runs on this goroutine.
	assert.Less(t, elapsed, 100*time.Millisecond)
	after := failureCount("order_confirmation") + failureCount("seller_order_alert")
	assert.Equal(t, before+2, after)

	close(release)
	pool.Shutdown()
}

func TestOrderPlacedCountsSinkFailures(t *testing.T) {
	stubMail(t, func(string, string, string) error {
		return errors.New("smtp down")
	})

	pool := workerpool.New(2)
	beforeCustomer := failureCount("order_confirmation")
	beforeSeller := failureCount("seller_order_alert")

	NewDispatcher(pool).OrderPlaced(models.Order{
		Customer: models.CustomerRef{Email: "customer@x.com"},
		Seller:   "seller@x.com",
	})
	pool.Shutdown() // drain before reading the counters

	assert.Equal(t, beforeCustomer+1, failureCount("order_confirmation"))
	assert.Equal(t, beforeSeller+1, failureCount("seller_order_alert"))
}
