package metrics

import (
	"github.com/apex/log"

	statsd "github.com/creativemarket/dog-statsd"
)

// ClientWriter flushes interval snapshots through a statsd client.
// Every flushed metric is an independent client call (one datagram).
type ClientWriter struct {
	client *statsd.Client
	log    *log.Entry
}

var _ IntervalWriter = (*ClientWriter)(nil)

// NewClientWriter builds a writer on top of the given client
func NewClientWriter(client *statsd.Client) *ClientWriter {
	return &ClientWriter{
		client: client,
		log:    log.WithField("context", "metrics"),
	}
}

// Run announces the flush destination
func (w *ClientWriter) Run(interval int) error {
	w.log.Infof("Send metrics to %s every %ds", w.client.Config().Addr(), interval)
	return nil
}

func (w *ClientWriter) Stop() {
}

// Write sends counter deltas and gauge values.
// Zero counter deltas are skipped to save datagrams.
func (w *ClientWriter) Write(m *Metrics) error {
	var lastErr error

	m.EachCounter(func(counter *Counter) {
		delta := counter.IntervalValue()
		if delta == 0 {
			return
		}

		if err := w.client.Incr(counter.Name(), delta, 1.0); err != nil {
			lastErr = err
		}
	})

	m.EachGauge(func(gauge *Gauge) {
		if err := w.client.Gauge(gauge.Name(), float64(gauge.Value())); err != nil {
			lastErr = err
		}
	})

	return lastErr
}
