package statsd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCheck(t *testing.T) {
	t.Run("Name and status only", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		require.NoError(t, client.ServiceCheck(&ServiceCheck{Name: "db", Status: Critical}))

		assert.Equal(t, "_sc|db|2", rec.payloads[0])
	})

	t.Run("Message trails the tags", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		check := &ServiceCheck{
			Name:     "db",
			Status:   OK,
			Hostname: "h1",
			Message:  "done",
		}

		require.NoError(t, client.ServiceCheck(check, StringTag("env", "prod")))

		assert.Equal(t, "_sc|db|0|h:h1|#env:prod|m:done", rec.payloads[0])
	})

	t.Run("Timestamp comes before the hostname", func(t *testing.T) {
		conf := NewConfig()
		conf.Namespace = "app"
		client, rec := buildClient(t, conf)

		check := &ServiceCheck{
			Name:     "db",
			Status:   Warning,
			Time:     time.Unix(1700000000, 0),
			Hostname: "h1",
		}

		require.NoError(t, client.ServiceCheck(check))

		assert.Equal(t, "_sc|app.db|1|d:1700000000|h:h1", rec.payloads[0])
	})

	t.Run("Vanilla dialect is a no-op", func(t *testing.T) {
		conf := NewConfig()
		conf.Datadog = false
		client, rec := buildClient(t, conf)

		require.NoError(t, client.ServiceCheck(&ServiceCheck{Name: "db", Status: OK}))

		assert.Empty(t, rec.payloads)
	})
}

func TestParseStatus(t *testing.T) {
	for str, expected := range map[string]Status{
		"ok":       OK,
		"WARNING":  Warning,
		"critical": Critical,
		"unknown":  Unknown,
		"0":        OK,
		"3":        Unknown,
	} {
		status, err := ParseStatus(str)
		require.NoError(t, err)
		assert.Equal(t, expected, status)
	}

	for _, str := range []string{"", "fatal", "4", "-1"} {
		_, err := ParseStatus(str)
		assert.Error(t, err)
	}
}
