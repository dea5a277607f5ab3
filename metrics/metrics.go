// Package metrics implements a process instrumentation registry:
// counters and gauges rotated on an interval and flushed to writers
// (log printer, statsd client).
package metrics

import (
	"sync"
	"time"

	"github.com/apex/log"
)

// IntervalWriter describes a periodical metrics writer interface
type IntervalWriter interface {
	Run(interval int) error
	Stop()
	Write(m *Metrics) error
}

// Metrics stores process stats and flushes them to writers
type Metrics struct {
	mu             sync.RWMutex
	writers        []IntervalWriter
	rotateInterval time.Duration
	counters       map[string]*Counter
	gauges         map[string]*Gauge
	shutdownCh     chan struct{}
	log            *log.Entry
}

// FromConfig creates a new metrics instance from the provided configuration
func FromConfig(config *Config) *Metrics {
	writers := []IntervalWriter{}

	if config.Log {
		writers = append(writers, NewBasePrinter())
	}

	return NewMetrics(writers, config.RotateInterval)
}

// NewMetrics builds a new metrics struct
func NewMetrics(writers []IntervalWriter, rotateIntervalSeconds int) *Metrics {
	return &Metrics{
		writers:        writers,
		rotateInterval: time.Duration(rotateIntervalSeconds) * time.Second,
		counters:       make(map[string]*Counter),
		gauges:         make(map[string]*Gauge),
		shutdownCh:     make(chan struct{}),
		log:            log.WithField("context", "metrics"),
	}
}

// RegisterWriter adds a new writer to the list
func (m *Metrics) RegisterWriter(writer IntervalWriter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writers = append(m.writers, writer)
}

// Run periodically updates counters delta and flushes metrics to writers
func (m *Metrics) Run() error {
	interval := int(m.rotateInterval / time.Second)

	for _, writer := range m.writers {
		if err := writer.Run(interval); err != nil {
			return err
		}
	}

	for {
		select {
		case <-m.shutdownCh:
			return nil
		case <-time.After(m.rotateInterval):
			m.rotate()

			for _, writer := range m.writers {
				if err := writer.Write(m); err != nil {
					m.log.Errorf("Metrics writer failed to write: %v", err)
				}
			}
		}
	}
}

// Shutdown stops metrics updates
func (m *Metrics) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdownCh == nil {
		return
	}

	close(m.shutdownCh)
	m.shutdownCh = nil

	for _, writer := range m.writers {
		writer.Stop()
	}
}

// RegisterCounter adds new counter to the registry
func (m *Metrics) RegisterCounter(name string, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[name] = NewCounter(name, desc)
}

// RegisterGauge adds new gauge to the registry
func (m *Metrics) RegisterGauge(name string, desc string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gauges[name] = NewGauge(name, desc)
}

// Counter returns counter by name
func (m *Metrics) Counter(name string) *Counter {
	return m.counters[name]
}

// Gauge returns gauge by name
func (m *Metrics) Gauge(name string) *Gauge {
	return m.gauges[name]
}

// EachCounter applies function f(*Counter) to each counter in a set
func (m *Metrics) EachCounter(f func(c *Counter)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, counter := range m.counters {
		f(counter)
	}
}

// EachGauge applies function f(*Gauge) to each gauge in a set
func (m *Metrics) EachGauge(f func(g *Gauge)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, gauge := range m.gauges {
		f(gauge)
	}
}

// IntervalSnapshot returns recorded interval metrics snapshot
func (m *Metrics) IntervalSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]int64)

	for name, c := range m.counters {
		snapshot[name] = c.IntervalValue()
	}

	for name, g := range m.gauges {
		snapshot[name] = g.Value()
	}

	return snapshot
}

func (m *Metrics) rotate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.counters {
		c.UpdateDelta()
	}
}
