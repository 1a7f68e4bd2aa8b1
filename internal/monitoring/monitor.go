package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects operation counters for the pantry engine. All methods
// are safe on a nil receiver so the engine can run unmetered in tests.
type Metrics struct {
	adds                  prometheus.Counter
	merges                prometheus.Counter
	consumptions          prometheus.Counter
	consumptionClamps     prometheus.Counter
	availabilityChecks    *prometheus.CounterVec
	persistenceFailures   prometheus.Counter
	substituteResolutions prometheus.Counter
}

// NewMetrics registers the engine counters with the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		adds: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_adds_total",
			Help: "Number of add operations that created a new inventory item",
		}),
		merges: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_merges_total",
			Help: "Number of add operations merged into an existing item",
		}),
		consumptions: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_consumptions_total",
			Help: "Number of consumption operations applied",
		}),
		consumptionClamps: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_consumption_clamps_total",
			Help: "Number of consumptions that exceeded on-hand stock and were clamped at zero",
		}),
		availabilityChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pantry_availability_checks_total",
			Help: "Number of availability checks by outcome",
		}, []string{"outcome"}),
		persistenceFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_persistence_failures_total",
			Help: "Number of durable-store writes that failed after the in-memory mutation applied",
		}),
		substituteResolutions: factory.NewCounter(prometheus.CounterOpts{
			Name: "pantry_substitute_resolutions_total",
			Help: "Number of pantry lookups satisfied through the substitution table",
		}),
	}
}

// RecordAdd counts a created item
func (m *Metrics) RecordAdd() {
	if m != nil {
		m.adds.Inc()
	}
}

// RecordMerge counts an add merged into an existing item
func (m *Metrics) RecordMerge() {
	if m != nil {
		m.merges.Inc()
	}
}

// RecordConsumption counts a consumption, clamped or not
func (m *Metrics) RecordConsumption(clamped bool) {
	if m == nil {
		return
	}
	m.consumptions.Inc()
	if clamped {
		m.consumptionClamps.Inc()
	}
}

// RecordAvailabilityCheck counts a check by outcome label
func (m *Metrics) RecordAvailabilityCheck(outcome string) {
	if m != nil {
		m.availabilityChecks.WithLabelValues(outcome).Inc()
	}
}

// RecordPersistenceFailure counts a failed durable write
func (m *Metrics) RecordPersistenceFailure() {
	if m != nil {
		m.persistenceFailures.Inc()
	}
}

// RecordSubstituteResolution counts a lookup resolved via substitute
func (m *Metrics) RecordSubstituteResolution() {
	if m != nil {
		m.substituteResolutions.Inc()
	}
}
