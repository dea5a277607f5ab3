package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	counter := NewCounter("test", "")

	assert.Equal(t, int64(0), counter.Value())
	assert.Equal(t, int64(0), counter.IntervalValue())

	counter.Inc()
	counter.Add(10)

	assert.Equal(t, int64(11), counter.Value())
	assert.Equal(t, int64(0), counter.IntervalValue())

	counter.UpdateDelta()

	assert.Equal(t, int64(11), counter.Value())
	assert.Equal(t, int64(11), counter.IntervalValue())

	counter.Inc()
	counter.UpdateDelta()

	assert.Equal(t, int64(12), counter.Value())
	assert.Equal(t, int64(1), counter.IntervalValue())
}
