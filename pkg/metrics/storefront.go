package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeConflict   = "conflict"
	OutcomeFailed     = "failed"
)

// Notification outcomes.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// StorefrontMetrics records checkout, order and notification activity.
type StorefrontMetrics struct {
	checkoutDuration *prometheus.HistogramVec
	checkouts        *prometheus.CounterVec
	ordersCreated    prometheus.Counter
	orderValue       prometheus.Counter
	notifications    *prometheus.CounterVec
}

// NewStorefrontMetrics registers the storefront metrics on the provided registerer.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	checkoutDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_submit_duration_seconds",
		Help:    "Duration of checkout submissions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_submissions_total",
		Help: "Checkout submissions by outcome.",
	}, []string{"outcome"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted by the order backend.",
	})
	orderValue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_value_cents_total",
		Help: "Sum of order totals in minor currency units.",
	})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_notifications_total",
		Help: "WhatsApp order notifications by recipient and outcome.",
	}, []string{"recipient", "outcome"})
	reg.MustRegister(checkoutDuration, checkouts, ordersCreated, orderValue, notifications)
	return &StorefrontMetrics{
		checkoutDuration: checkoutDuration,
		checkouts:        checkouts,
		ordersCreated:    ordersCreated,
		orderValue:       orderValue,
		notifications:    notifications,
	}
}

// ObserveCheckout records one checkout submission.
func (m *StorefrontMetrics) ObserveCheckout(outcome string, duration time.Duration) {
	if m == nil || m.checkouts == nil {
		return
	}
	label := normalizeLabel(outcome)
	m.checkouts.WithLabelValues(label).Inc()
	m.checkoutDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// IncOrderCreated counts a persisted order and its value.
func (m *StorefrontMetrics) IncOrderCreated(totalCents int64) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
	if totalCents > 0 {
		m.orderValue.Add(float64(totalCents))
	}
}

// IncNotification counts one notification attempt.
func (m *StorefrontMetrics) IncNotification(recipient, outcome string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(normalizeLabel(recipient), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
