package services

import (
	"context"
	"time"

	"event-storefront/internal/models"

	"github.com/sirupsen/logrus"
)

// PaymentStatusGetter is the slice of the API client the poller needs.
type PaymentStatusGetter interface {
	GetPaymentStatus(ctx context.Context, orderID int) (*models.PaymentStatus, error)
}

// StatusPoller checks an order's payment status on a fixed interval until
// the status leaves "pendente" or the context is cancelled. It is an
// explicit, cancellable task owned by its caller: stopping is deterministic,
// never left to a timer disarming itself. Checks run one at a time; a check
// that outlives the interval just pushes the next one back.
type StatusPoller struct {
	client   PaymentStatusGetter
	orderID  int
	interval time.Duration
	log      *logrus.Logger

	// OnStatus, when set, observes every status the poller sees.
	OnStatus func(models.PaymentStatus)
}

// NewStatusPoller creates a poller for the given order. interval defaults to
// 5 seconds when zero.
func NewStatusPoller(client PaymentStatusGetter, orderID int, interval time.Duration, log *logrus.Logger) *StatusPoller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &StatusPoller{
		client:   client,
		orderID:  orderID,
		interval: interval,
		log:      log,
	}
}

// Run polls until the order is no longer pending and returns the final
// status. An immediate check happens before the first tick. Transient
// request errors are logged and the next tick retries; ctx cancellation is
// the only other way out.
func (p *StatusPoller) Run(ctx context.Context) (*models.PaymentStatus, error) {
	if status, done := p.check(ctx); done {
		return status, nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			if status, done := p.check(ctx); done {
				return status, nil
			}
		}
	}
}

func (p *StatusPoller) check(ctx context.Context) (*models.PaymentStatus, bool) {
	status, err := p.client.GetPaymentStatus(ctx, p.orderID)
	if err != nil {
		p.log.WithError(err).WithField("order_id", p.orderID).Warn("payment status check failed")
		return nil, false
	}

	if p.OnStatus != nil {
		p.OnStatus(*status)
	}

	if status.Status == models.OrderPending {
		return nil, false
	}
	return status, true
}
