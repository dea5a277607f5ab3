package statsd

import (
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	conf := NewConfig()

	assert.Equal(t, "127.0.0.1", conf.Host)
	assert.Equal(t, 8125, conf.Port)
	assert.True(t, conf.Datadog)
	assert.False(t, conf.SilenceErrors)
	assert.NoError(t, conf.Validate())
}

func TestConfigValidate(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		conf := NewConfig()
		conf.Port = port

		err := conf.Validate()
		require.Error(t, err)
		assert.True(t, errorx.IsOfType(err, ErrConfig))
	}
}

func TestConfigAddr(t *testing.T) {
	conf := NewConfig()
	assert.Equal(t, "127.0.0.1:8125", conf.Addr())

	conf.Host = "::1"
	conf.Port = 9125
	assert.Equal(t, "[::1]:9125", conf.Addr())
}

func TestConfigToToml(t *testing.T) {
	conf := NewConfig()
	conf.Namespace = "app"
	conf.Timeout = 2
	conf.SilenceErrors = true
	conf.Tags = ParseTags("env:prod,canary")

	var decoded Config
	_, err := toml.Decode(conf.ToToml(), &decoded)
	require.NoError(t, err)

	assert.Equal(t, conf, decoded)
}
