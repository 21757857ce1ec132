package metrics

import "github.com/prometheus/client_golang/prometheus"

// DomainMetrics counts business events that are not visible from HTTP status codes.
type DomainMetrics struct {
	logins      *prometheus.CounterVec
	orderEvents *prometheus.CounterVec
}

// NewDomainMetrics registers the domain counters on reg. A nil reg yields a no-op recorder.
func NewDomainMetrics(reg prometheus.Registerer) *DomainMetrics {
	if reg == nil {
		return &DomainMetrics{}
	}
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by outcome.",
	}, []string{"outcome"})
	orderEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_events_total",
		Help:      "Order lifecycle transitions.",
	}, []string{"event"})
	reg.MustRegister(logins, orderEvents)
	return &DomainMetrics{logins: logins, orderEvents: orderEvents}
}

// IncLogin counts a login attempt, e.g. "success" or "invalid_credentials".
func (d *DomainMetrics) IncLogin(outcome string) {
	if d == nil || d.logins == nil {
		return
	}
	d.logins.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncOrderEvent counts an order transition such as "created" or "confirmed".
func (d *DomainMetrics) IncOrderEvent(event string) {
	if d == nil || d.orderEvents == nil {
		return
	}
	d.orderEvents.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
