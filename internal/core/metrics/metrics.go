package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tracking_proxy"

// Metrics groups the Prometheus collectors for provider, cache and fuzzy activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec
	ProviderDuration prometheus.Histogram
	CacheLookups     *prometheus.CounterVec
	Resolutions      *prometheus.CounterVec
	ResolutionProbes prometheus.Histogram
}

// New registers and returns the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Upstream provider calls by outcome (ok or failure reason).",
		}, []string{"outcome"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider call latency.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 4, 8, 16},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Positive-result cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fuzzy_resolutions_total",
			Help:      "Fuzzy resolutions by outcome (exact, candidate, no_match).",
		}, []string{"outcome"}),
		ResolutionProbes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fuzzy_resolution_probes",
			Help:      "Provider lookups performed per fuzzy resolution.",
			Buckets:   prometheus.LinearBuckets(1, 8, 9),
		}),
	}

	m.ProviderRequests = register(reg, m.ProviderRequests)
	m.ProviderDuration = register(reg, m.ProviderDuration)
	m.CacheLookups = register(reg, m.CacheLookups)
	m.Resolutions = register(reg, m.Resolutions)
	m.ResolutionProbes = register(reg, m.ResolutionProbes)
	return m
}

// register registers c, reusing an already registered equivalent collector.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveProvider records one upstream call.
func (m *Metrics) ObserveProvider(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(outcome).Inc()
	m.ProviderDuration.Observe(d.Seconds())
}

// CacheLookup records a cache lookup result.
func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveResolution records a finished fuzzy resolution and how many lookups it took.
func (m *Metrics) ObserveResolution(outcome string, probes int) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(outcome).Inc()
	m.ResolutionProbes.Observe(float64(probes))
}
