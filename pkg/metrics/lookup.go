package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// LookupMetrics records search, capture, and mutation activity.
type LookupMetrics struct {
	searches        *prometheus.CounterVec
	misses          prometheus.Counter
	storeFailures   *prometheus.CounterVec
	captureFailures prometheus.Counter
	mutations       *prometheus.CounterVec
}

// NewLookupMetrics registers the lookup metrics on the provided registerer.
func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	if reg == nil {
		return &LookupMetrics{}
	}
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lookup_searches_total",
		Help: "Searches performed, by scope.",
	}, []string{"scope"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lookup_misses_total",
		Help: "Searches that returned no records.",
	})
	storeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lookup_store_failures_total",
		Help: "Store adapter calls that failed, by store.",
	}, []string{"store"})
	captureFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "capture_failures_total",
		Help: "Clipboard captures rejected by validation.",
	})
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "term_mutations_total",
		Help: "Term mutations applied, by operation.",
	}, []string{"operation"})
	reg.MustRegister(searches, misses, storeFailures, captureFailures, mutations)
	return &LookupMetrics{
		searches:        searches,
		misses:          misses,
		storeFailures:   storeFailures,
		captureFailures: captureFailures,
		mutations:       mutations,
	}
}

// IncSearch counts one search under the given scope label.
func (m *LookupMetrics) IncSearch(scope string) {
	if m == nil || m.searches == nil {
		return
	}
	m.searches.WithLabelValues(normalizeLabel(scope)).Inc()
}

// IncMiss counts a search that found nothing.
func (m *LookupMetrics) IncMiss() {
	if m == nil || m.misses == nil {
		return
	}
	m.misses.Inc()
}

// IncStoreFailure counts a failed adapter call for the named store.
func (m *LookupMetrics) IncStoreFailure(store string) {
	if m == nil || m.storeFailures == nil {
		return
	}
	m.storeFailures.WithLabelValues(normalizeLabel(store)).Inc()
}

// IncCaptureFailure counts a rejected clipboard capture.
func (m *LookupMetrics) IncCaptureFailure() {
	if m == nil || m.captureFailures == nil {
		return
	}
	m.captureFailures.Inc()
}

// IncMutation counts one applied mutation under the given operation label.
func (m *LookupMetrics) IncMutation(operation string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
