package notifications

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/whatsapp"
)

const (
	RecipientVendor   = "vendor"
	RecipientCustomer = "customer"
)

// Sender is the outbound text channel.
type Sender interface {
	Configured() bool
	SendText(ctx context.Context, to, body string) (*whatsapp.SendResult, error)
}

// OrderNotifier tells the vendor and the customer about a new order.
type OrderNotifier struct {
	sender  Sender
	metrics *metrics.StorefrontMetrics
	logg    *logger.Logger
}

// NewOrderNotifier wires the notifier. metrics may be nil.
func NewOrderNotifier(sender Sender, m *metrics.StorefrontMetrics, logg *logger.Logger) (*OrderNotifier, error) {
	if sender == nil {
		return nil, fmt.Errorf("notification sender required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &OrderNotifier{sender: sender, metrics: m, logg: logg}, nil
}

// OrderPlaced sends both messages. Each recipient is attempted independently and
// failures are combined. An unconfigured sender skips both sends.
func (n *OrderNotifier) OrderPlaced(ctx context.Context, order OrderPlaced) error {
	ctx = n.logg.WithField(ctx, "order_number", order.OrderNumber)
	if !n.sender.Configured() {
		n.logg.Debug(ctx, "notifications.order_placed.skipped")
		n.metrics.IncNotification(RecipientVendor, metrics.NotificationSkipped)
		n.metrics.IncNotification(RecipientCustomer, metrics.NotificationSkipped)
		return nil
	}

	var errs error
	errs = multierr.Append(errs, n.send(ctx, RecipientVendor, order.VendorWhatsApp, VendorMessage(order)))
	errs = multierr.Append(errs, n.send(ctx, RecipientCustomer, order.CustomerWhatsApp, CustomerMessage(order)))
	return errs
}

func (n *OrderNotifier) send(ctx context.Context, recipient, to, body string) error {
	ctx = n.logg.WithField(ctx, "recipient", recipient)
	if strings.TrimSpace(whatsapp.NormalizeNumber(to)) == "" {
		n.logg.Warn(ctx, "notifications.order_placed.no_number")
		n.metrics.IncNotification(recipient, metrics.NotificationSkipped)
		return nil
	}
	if _, err := n.sender.SendText(ctx, to, body); err != nil {
		n.metrics.IncNotification(recipient, metrics.NotificationFailed)
		return fmt.Errorf("notify %s: %w", recipient, err)
	}
	n.metrics.IncNotification(recipient, metrics.NotificationSent)
	return nil
}
