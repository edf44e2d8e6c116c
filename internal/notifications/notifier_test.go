package notifications

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/whatsapp"
)

type sentMessage struct {
	to   string
	body string
}

type fakeSender struct {
	configured bool
	failFor    map[string]error
	sent       []sentMessage
}

func (f *fakeSender) Configured() bool { return f.configured }

func (f *fakeSender) SendText(_ context.Context, to, body string) (*whatsapp.SendResult, error) {
	if err, ok := f.failFor[to]; ok {
		return nil, err
	}
	f.sent = append(f.sent, sentMessage{to: to, body: body})
	return &whatsapp.SendResult{MessageID: "m"}, nil
}

func sampleOrder() OrderPlaced {
	return OrderPlaced{
		OrderNumber:      "1001",
		StoreName:        "Fresh Fruits",
		VendorWhatsApp:   "+91 90000 00001",
		CustomerName:     "Asha",
		CustomerWhatsApp: "+91 90000 00002",
		Address:          "12 Market Road",
		Items: []OrderLine{
			{Name: "Mango", Quantity: 2, Unit: "kg", PriceCents: 4550},
			{Name: "Banana", Quantity: 1, Unit: "dozen", PriceCents: 5900},
		},
		TotalCents: 15000,
	}
}

func TestMessagesFormatItemsAndTotals(t *testing.T) {
	order := sampleOrder()

	customer := CustomerMessage(order)
	assert.Contains(t, customer, "Hi Asha, your order *#1001* at *Fresh Fruits* has been placed!")
	assert.Contains(t, customer, "• Mango x2 kg — ₹91")
	assert.Contains(t, customer, "• Banana x1 dozen — ₹59")
	assert.Contains(t, customer, "*Total: ₹150*")
	assert.Contains(t, customer, "Cash on Delivery")

	vendor := VendorMessage(order)
	assert.Contains(t, vendor, "*New Order #1001!*")
	assert.Contains(t, vendor, "wa.me/919000000002")
	assert.Contains(t, vendor, "*Address:* 12 Market Road")
}

func TestOrderPlacedSendsBoth(t *testing.T) {
	reg := prometheus.NewRegistry()
	sender := &fakeSender{configured: true}
	notifier, err := NewOrderNotifier(sender, metrics.NewStorefrontMetrics(reg), nil)
	require.NoError(t, err)

	require.NoError(t, notifier.OrderPlaced(context.Background(), sampleOrder()))
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "+91 90000 00001", sender.sent[0].to)
	assert.True(t, strings.HasPrefix(sender.sent[0].body, "🔔"))
	assert.Equal(t, "+91 90000 00002", sender.sent[1].to)
	assert.True(t, strings.HasPrefix(sender.sent[1].body, "✅"))
}

func TestOrderPlacedCombinesFailures(t *testing.T) {
	vendorErr := errors.New("vendor down")
	customerErr := errors.New("customer down")
	sender := &fakeSender{
		configured: true,
		failFor: map[string]error{
			"+91 90000 00001": vendorErr,
			"+91 90000 00002": customerErr,
		},
	}
	notifier, err := NewOrderNotifier(sender, nil, nil)
	require.NoError(t, err)

	err = notifier.OrderPlaced(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, vendorErr)
	assert.ErrorIs(t, err, customerErr)
}

func TestOrderPlacedVendorFailureStillNotifiesCustomer(t *testing.T) {
	sender := &fakeSender{
		configured: true,
		failFor:    map[string]error{"+91 90000 00001": errors.New("boom")},
	}
	notifier, err := NewOrderNotifier(sender, nil, nil)
	require.NoError(t, err)

	require.Error(t, notifier.OrderPlaced(context.Background(), sampleOrder()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+91 90000 00002", sender.sent[0].to)
}

func TestOrderPlacedSkipsWhenUnconfigured(t *testing.T) {
	sender := &fakeSender{configured: false}
	notifier, err := NewOrderNotifier(sender, nil, nil)
	require.NoError(t, err)

	require.NoError(t, notifier.OrderPlaced(context.Background(), sampleOrder()))
	assert.Empty(t, sender.sent)
}

func TestOrderPlacedSkipsMissingVendorNumber(t *testing.T) {
	sender := &fakeSender{configured: true}
	notifier, err := NewOrderNotifier(sender, nil, nil)
	require.NoError(t, err)

	order := sampleOrder()
	order.VendorWhatsApp = ""
	require.NoError(t, notifier.OrderPlaced(context.Background(), order))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, order.CustomerWhatsApp, sender.sent[0].to)
}

func TestNewOrderNotifierRequiresSender(t *testing.T) {
	_, err := NewOrderNotifier(nil, nil, nil)
	require.Error(t, err)
}
