package report

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wim-c/psc"
)

// MetricsReporter exposes chart activity as Prometheus metrics. One reporter
// serves one chart; the chart ID is carried as a constant label.
type MetricsReporter struct {
	eventsProcessed prometheus.Counter
	transitions     prometheus.Counter
	targets         prometheus.Counter
	errors          *prometheus.CounterVec
	lifecycle       *prometheus.CounterVec
}

// NewMetricsReporter creates the metric set for one chart ID.
func NewMetricsReporter(chartID string) *MetricsReporter {
	labels := prometheus.Labels{"chart_id": chartID}
	return &MetricsReporter{
		eventsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "psc_events_processed_total",
			Help:        "Externally submitted events fully settled by the chart.",
			ConstLabels: labels,
		}),
		transitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "psc_transition_waves_total",
			Help:        "Transition waves applied by the chart.",
			ConstLabels: labels,
		}),
		targets: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "psc_transition_targets_total",
			Help:        "Transition targets applied across all waves.",
			ConstLabels: labels,
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "psc_errors_total",
			Help:        "Reported chart errors by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		lifecycle: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "psc_lifecycle_total",
			Help:        "Chart initiations and terminations.",
			ConstLabels: labels,
		}, []string{"phase"}),
	}
}

// Register registers all metrics with the given registerer.
func (m *MetricsReporter) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.eventsProcessed, m.transitions, m.targets, m.errors, m.lifecycle,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *MetricsReporter) Initiated(psc.Report) {
	m.lifecycle.WithLabelValues("initiated").Inc()
}

func (m *MetricsReporter) Terminated(psc.Report) {
	m.lifecycle.WithLabelValues("terminated").Inc()
}

func (m *MetricsReporter) EventProcessed(psc.Report, psc.Event) {
	m.eventsProcessed.Inc()
}

func (m *MetricsReporter) Transitions(r psc.Report, targets []*psc.StateType) {
	m.transitions.Inc()
	m.targets.Add(float64(len(targets)))
}

func (m *MetricsReporter) UnprocessedEvent(psc.Report, psc.Event) {
	m.errors.WithLabelValues("unprocessed_event").Inc()
}

func (m *MetricsReporter) UnprocessedReply(psc.Report, psc.Reply) {
	m.errors.WithLabelValues("unprocessed_reply").Inc()
}

func (m *MetricsReporter) TransitionError(psc.Report, *psc.StateType) {
	m.errors.WithLabelValues("transition_error").Inc()
}

func (m *MetricsReporter) UnreachableTarget(psc.Report, *psc.StateType) {
	m.errors.WithLabelValues("unreachable_target").Inc()
}

func (m *MetricsReporter) NotInitiated(psc.Report, psc.Event) {
	m.errors.WithLabelValues("not_initiated").Inc()
}
