package prometheus

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWithPrefix("unisummarize_", registry)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeOpen    = "breaker_open"
)

var (
	// Latency buckets in milliseconds. Summaries routinely take seconds.
	latencyBuckets = []float64{
		5, 25, 100,
		250, 500, 1000,
		2500, 5000, 10000,
		30000, 60000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_total",
			Help: "Total number of requests processed",
		},
		[]string{"method", "route", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "request_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	RateLimitDecisions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_decisions_total",
			Help: "Admission decisions taken by the rate limiter",
		},
		[]string{"decision"},
	)

	CollaboratorCalls = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_calls_total",
			Help: "Calls to summarization, extraction and fetch backends",
		},
		[]string{"collaborator", "outcome"},
	)

	CollaboratorLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collaborator_latency_ms",
			Help:    "Backend call latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"collaborator"},
	)

	BreakerState = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)
)

var initOnce sync.Once

// Initialize adds the process and runtime collectors. Safe to call more than once.
func Initialize() {
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

// RegisterActiveClients exposes the number of clients currently tracked by
// the rate limiter.
func RegisterActiveClients(fn func() int) error {
	err := registerer.Register(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "rate_limit_active_clients",
			Help: "Clients with requests inside the current window",
		},
		func() float64 { return float64(fn()) },
	))
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return nil
	}
	return err
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	RequestTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	RequestLatency.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

func ObserveRateLimit(allowed bool) {
	decision := "admitted"
	if !allowed {
		decision = "denied"
	}
	RateLimitDecisions.WithLabelValues(decision).Inc()
}

func ObserveCollaborator(collaborator, outcome string, elapsed time.Duration) {
	CollaboratorCalls.WithLabelValues(collaborator, outcome).Inc()
	CollaboratorLatency.WithLabelValues(collaborator).Observe(float64(elapsed.Milliseconds()))
}

func SetBreakerState(name, state string) {
	var v float64
	switch state {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	BreakerState.WithLabelValues(name).Set(v)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
