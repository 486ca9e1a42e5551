package twin

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds prometheus instrumentation of a Queue.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Length   prometheus.Gauge
	Sent     prometheus.Counter
	Received prometheus.Counter
	Canceled prometheus.Counter
}

// NewMetrics creates queue metrics and registers them within reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(reg prometheus.Registerer, namespace, subsystem string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_length",
			Help:      "Number of twins waiting in the queue.",
		}),
		Sent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sent_total",
			Help:      "Number of twins sent to the queue.",
		}),
		Received: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "received_total",
			Help:      "Number of twins received from the queue.",
		}),
		Canceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "canceled_total",
			Help:      "Number of canceled send and receive calls.",
		}),
	}
	cs := []prometheus.Collector{m.Length, m.Sent, m.Received, m.Canceled}
	for i, c := range cs {
		if err := reg.Register(c); err != nil {
			for _, r := range cs[:i] {
				reg.Unregister(r)
			}
			return nil, errors.Wrap(err, "twin: register queue metrics")
		}
	}
	return m, nil
}

func (m *Metrics) sent(length int) {
	if m == nil {
		return
	}
	m.Sent.Inc()
	m.Length.Set(float64(length))
}

func (m *Metrics) received(n, length int) {
	if m == nil {
		return
	}
	m.Received.Add(float64(n))
	m.Length.Set(float64(length))
}

func (m *Metrics) canceled() {
	if m == nil {
		return
	}
	m.Canceled.Inc()
}
