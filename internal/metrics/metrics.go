// Package metrics holds the Prometheus collectors for the booking flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "event_booking",
		Name:      "bookings_created_total",
		Help:      "Pending bookings created.",
	})

	BookingsConfirmed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_booking",
		Name:      "bookings_confirmed_total",
		Help:      "Bookings confirmed after a verified payment, by gateway.",
	}, []string{"gateway"})

	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "event_booking",
		Name:      "bookings_cancelled_total",
		Help:      "Bookings cancelled, including the stale-pending sweep.",
	})

	PaymentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_booking",
		Name:      "payment_failures_total",
		Help:      "Payment callbacks that reported a failure, by gateway.",
	}, []string{"gateway"})

	WebhooksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_booking",
		Name:      "webhooks_rejected_total",
		Help:      "Callbacks rejected for a bad signature, by gateway.",
	}, []string{"gateway"})

	CheckoutDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "event_booking",
		Name:      "checkout_duration_seconds",
		Help:      "Time spent setting up a checkout with a gateway.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"gateway"})
)
