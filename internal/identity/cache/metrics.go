package cache

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts Repository activity.
type Metrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Errors    prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identity", Subsystem: "account_cache", Name: "hits_total",
			Help: "Account lookups served from the cache.",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identity", Subsystem: "account_cache", Name: "misses_total",
			Help: "Account lookups that fell through to the store.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identity", Subsystem: "account_cache", Name: "evictions_total",
			Help: "Entries evicted after a committed mutation.",
		}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "identity", Subsystem: "account_cache", Name: "errors_total",
			Help: "Cache backend failures.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.Evictions, m.Errors)
	}
	return m
}
