package metrics

import "sync/atomic"

// Gauge stores an int value
type Gauge struct {
	value int64
	name  string
	desc  string
}

// NewGauge initializes Gauge
func NewGauge(name string, desc string) *Gauge {
	return &Gauge{name: name, desc: desc}
}

// Name returns gauge name
func (g *Gauge) Name() string {
	return g.name
}

// Desc returns gauge description
func (g *Gauge) Desc() string {
	return g.desc
}

// Set gauge value
func (g *Gauge) Set(value int64) {
	atomic.StoreInt64(&g.value, value)
}

// Inc increments gauge value
func (g *Gauge) Inc() int64 {
	return atomic.AddInt64(&g.value, 1)
}

// Dec decrements gauge value
func (g *Gauge) Dec() int64 {
	return atomic.AddInt64(&g.value, -1)
}

// Value returns the current gauge value
func (g *Gauge) Value() int64 {
	return atomic.LoadInt64(&g.value)
}
