package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/memogen/memo"
)

// Adapter implements memo.Metrics and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
//
// The size gauge tracks a single store. Give each memoized function its own
// Adapter, told apart by constLabels (e.g. {"func": "countPaths"}).
type Adapter struct {
	hits    prometheus.Counter
	misses  prometheus.Counter
	resets  prometheus.Counter
	dropped prometheus.Counter
	sizeEnt prometheus.Gauge
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        name,
			Help:        help,
			ConstLabels: constLabels,
		})
	}
	a := &Adapter{
		hits:    counter("hits_total", "Memoized calls served from the cache"),
		misses:  counter("misses_total", "Memoized calls that ran the computation"),
		resets:  counter("resets_total", "Cache resets"),
		dropped: counter("reset_dropped_entries_total", "Entries discarded by resets"),
		sizeEnt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of cached results",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.resets, a.dropped, a.sizeEnt)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Reset counts a cache reset and the entries it discarded.
func (a *Adapter) Reset(dropped int) {
	a.resets.Inc()
	a.dropped.Add(float64(dropped))
}

// Size updates the entries gauge.
func (a *Adapter) Size(entries int) {
	a.sizeEnt.Set(float64(entries))
}

// Compile-time check: ensure Adapter implements memo.Metrics.
var _ memo.Metrics = (*Adapter)(nil)
