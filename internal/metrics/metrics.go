// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auctionary"

// Bid outcomes recorded by BidsTotal
const (
	BidAccepted = "accepted"
	BidRejected = "rejected"
)

// Session events recorded by SessionEventsTotal
const (
	SessionLogin  = "login"
	SessionLogout = "logout"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status code
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests handled.",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration observes request latency by method and route template
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// BidsTotal counts bid placements by outcome
	BidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_total",
		Help:      "Bid placement attempts by outcome.",
	}, []string{"result"})

	// SessionEventsTotal counts sessions opened and closed. Tokens outlive the
	// process, so open sessions are not derivable from these.
	SessionEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Sessions opened by login and closed by logout.",
	}, []string{"event"})
)
