// Package metrics declares the prometheus instruments exported by edgeui.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Notification bus metrics
var (
	// NotificationsPublished counts broadcasts by notification type
	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgeui_notifications_published_total",
			Help: "Total notifications broadcast on the bus by type",
		},
		[]string{"type"},
	)

	// ObserverFailures counts observer callbacks that returned an error or panicked
	ObserverFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgeui_observer_failures_total",
			Help: "Total observer failures during broadcast by kind (error, panic)",
		},
		[]string{"kind"},
	)

	// ObserverDrops counts notifications dropped by channel observers with a full buffer
	ObserverDrops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "edgeui_observer_drops_total",
			Help: "Total notifications dropped because a channel observer was full",
		},
	)

	// Subscribers tracks live bus subscriptions
	Subscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "edgeui_bus_subscribers",
			Help: "Current number of notification bus subscribers",
		},
	)
)

// Credential store metrics
var (
	// CredentialOps counts credential operations by operation and status
	CredentialOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgeui_credential_operations_total",
			Help: "Total credential store operations by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// Locale metrics
var (
	// LocaleSwitches counts accepted and rejected locale changes
	LocaleSwitches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "edgeui_locale_switches_total",
			Help: "Total locale switch requests by target locale and result",
		},
		[]string{"locale", "result"},
	)
)
