package metrics

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	conf := NewConfig()

	assert.False(t, conf.Log)
	assert.Equal(t, 15, conf.RotateInterval)
}

func TestConfigToToml(t *testing.T) {
	conf := NewConfig()
	conf.Log = true
	conf.RotateInterval = 5

	var decoded Config
	_, err := toml.Decode(conf.ToToml(), &decoded)
	require.NoError(t, err)

	assert.Equal(t, conf, decoded)
}

func TestFromConfig(t *testing.T) {
	t.Run("Without logging", func(t *testing.T) {
		conf := NewConfig()

		m := FromConfig(&conf)
		assert.Empty(t, m.writers)
	})

	t.Run("With logging", func(t *testing.T) {
		conf := NewConfig()
		conf.Log = true

		m := FromConfig(&conf)
		require.Len(t, m.writers, 1)
		assert.IsType(t, &BasePrinter{}, m.writers[0])
	})
}
