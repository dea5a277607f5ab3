package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGauge(t *testing.T) {
	gauge := NewGauge("test", "")

	assert.Equal(t, int64(0), gauge.Value())

	gauge.Set(123)
	assert.Equal(t, int64(123), gauge.Value())

	gauge.Inc()
	gauge.Inc()
	gauge.Dec()
	assert.Equal(t, int64(124), gauge.Value())
}
