package statsd

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is an in-memory DialFunc capturing every sent payload
type recorder struct {
	payloads []string
	failDial bool
}

type recorderChannel struct {
	rec *recorder
	buf bytes.Buffer
}

func (ch *recorderChannel) Write(p []byte) (int, error) {
	return ch.buf.Write(p)
}

func (ch *recorderChannel) Close() error {
	ch.rec.payloads = append(ch.rec.payloads, ch.buf.String())
	return nil
}

func (r *recorder) dial(host string, port int, timeout time.Duration) (io.WriteCloser, error) {
	if r.failDial {
		return nil, errors.New("network is unreachable")
	}

	return &recorderChannel{rec: r}, nil
}

func buildClient(t *testing.T, conf Config) (*Client, *recorder) {
	client, err := NewClient(conf)
	require.NoError(t, err)

	rec := &recorder{}
	client.SetDial(rec.dial)

	return client, rec
}

func TestIncr(t *testing.T) {
	t.Run("Rate 1.0 sends without a suffix", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		require.NoError(t, client.Incr("requests", 1, 1.0))

		require.Len(t, rec.payloads, 1)
		assert.Equal(t, "requests:1|c", rec.payloads[0])
		assert.Equal(t, "requests:1|c", client.LastMessage())
	})

	t.Run("Namespace is prefixed", func(t *testing.T) {
		conf := NewConfig()
		conf.Namespace = "app"
		client, rec := buildClient(t, conf)

		require.NoError(t, client.Incr("requests", 5, 1.0))

		assert.Equal(t, "app.requests:5|c", rec.payloads[0])
	})

	t.Run("Successful draw appends the rate", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())
		client.SetRand(func() float64 { return 0.3 })

		require.NoError(t, client.Incr("requests", 1, 0.5))

		assert.Equal(t, "requests:1|c|@0.5", rec.payloads[0])
	})

	t.Run("Failed draw sends an empty payload", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())
		client.SetRand(func() float64 { return 0.9 })

		require.NoError(t, client.Incr("requests", 1, 0.5))

		require.Len(t, rec.payloads, 1)
		assert.Equal(t, "", rec.payloads[0])
		assert.Equal(t, "", client.LastMessage())
	})

	t.Run("Tags are appended", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		require.NoError(t, client.Incr("requests", 1, 1.0, StringTag("env", "prod"), Tag{Key: "canary"}))

		assert.Equal(t, "requests:1|c|#env:prod,canary", rec.payloads[0])
	})
}

func TestDecr(t *testing.T) {
	client, rec := buildClient(t, NewConfig())

	require.NoError(t, client.Decr("requests", 2, 1.0))

	assert.Equal(t, "requests:-2|c", rec.payloads[0])
}

func TestIncrAll(t *testing.T) {
	t.Run("All stats share one datagram", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		require.NoError(t, client.IncrAll([]string{"a", "b", "c"}, 1, 1.0))

		require.Len(t, rec.payloads, 1)
		assert.Equal(t, "a:1|c\nb:1|c\nc:1|c", rec.payloads[0])
	})

	t.Run("Each stat draws its own sample", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		draws := []float64{0.1, 0.9, 0.2}
		client.SetRand(func() float64 {
			draw := draws[0]
			draws = draws[1:]
			return draw
		})

		require.NoError(t, client.IncrAll([]string{"a", "b", "c"}, 1, 0.5))

		assert.Equal(t, "a:1|c|@0.5\nc:1|c|@0.5", rec.payloads[0])
	})
}

func TestGauge(t *testing.T) {
	client, rec := buildClient(t, NewConfig())

	require.NoError(t, client.Gauge("sessions", 42, StringTag("env", "prod")))
	require.NoError(t, client.Gauge("load", 0.75))

	assert.Equal(t, "sessions:42|g|#env:prod", rec.payloads[0])
	assert.Equal(t, "load:0.75|g", rec.payloads[1])
}

func TestSet(t *testing.T) {
	client, rec := buildClient(t, NewConfig())

	require.NoError(t, client.Set("visitors", "user42"))

	assert.Equal(t, "visitors:user42|s", rec.payloads[0])
}

func TestTiming(t *testing.T) {
	client, rec := buildClient(t, NewConfig())

	require.NoError(t, client.Timing("render", 45.5))
	require.NoError(t, client.Timing("render", 45))

	assert.Equal(t, "render:45.5|ms", rec.payloads[0])
	assert.Equal(t, "render:45|ms", rec.payloads[1])
}

func TestHistogram(t *testing.T) {
	t.Run("Rate 1.0 always sends", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())

		require.NoError(t, client.Histogram("payload_size", 512, 1.0))

		assert.Equal(t, "payload_size:512|h", rec.payloads[0])
	})

	t.Run("Failed draw sends nothing at all", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())
		client.SetRand(func() float64 { return 0.99 })

		require.NoError(t, client.Histogram("payload_size", 512, 0.25))

		assert.Empty(t, rec.payloads)
		assert.Equal(t, "", client.LastMessage())
	})

	t.Run("Successful draw carries the rate", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())
		client.SetRand(func() float64 { return 0.1 })

		require.NoError(t, client.Histogram("payload_size", 512, 0.25))

		assert.Equal(t, "payload_size:512|h|@0.25", rec.payloads[0])
	})
}

func TestTime(t *testing.T) {
	client, rec := buildClient(t, NewConfig())

	clock := clockwork.NewFakeClock()
	client.SetClock(clock)

	require.NoError(t, client.Time("compute", func() {
		clock.Advance(1500 * time.Microsecond)
	}))

	assert.Equal(t, "compute:1.5|ms", rec.payloads[0])
}

func TestSamplingFrequency(t *testing.T) {
	client, rec := buildClient(t, NewConfig())
	client.SetRand(rand.New(rand.NewSource(42)).Float64) // nolint:gosec

	trials := 10000
	rate := 0.5

	for i := 0; i < trials; i++ {
		require.NoError(t, client.Histogram("sampled", 1, rate))
	}

	assert.InDelta(t, rate, float64(len(rec.payloads))/float64(trials), 0.02)
}

func TestSendFailures(t *testing.T) {
	t.Run("Dial failure returns a connection error", func(t *testing.T) {
		client, rec := buildClient(t, NewConfig())
		rec.failDial = true

		err := client.Incr("requests", 1, 1.0)

		require.Error(t, err)
		assert.True(t, errorx.IsOfType(err, ErrConnection))

		id, ok := ClientID(err)
		require.True(t, ok)
		assert.Equal(t, client.String(), id)
	})

	t.Run("Silenced failure returns nil and keeps the last message", func(t *testing.T) {
		conf := NewConfig()
		conf.SilenceErrors = true
		client, rec := buildClient(t, conf)

		require.NoError(t, client.Incr("requests", 1, 1.0))
		prev := client.LastMessage()

		rec.failDial = true

		require.NoError(t, client.Incr("requests", 2, 1.0))
		assert.Equal(t, prev, client.LastMessage())
	})
}

func TestUDPSend(t *testing.T) {
	socket, received := startServer(t)
	defer socket.Close()

	conf := NewConfig()
	host, port, err := net.SplitHostPort(socket.LocalAddr().String())
	require.NoError(t, err)
	conf.Host = host
	conf.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	client, err := NewClient(conf)
	require.NoError(t, err)

	require.NoError(t, client.Incr("udp_test", 1, 1.0))

	select {
	case buf := <-received:
		assert.Equal(t, "udp_test:1|c", string(buf))
	case <-time.After(time.Second):
		t.Error("timeout waiting for UDP payload")
	}
}

func startServer(t *testing.T) (*net.UDPConn, chan []byte) {
	inSocket, err := net.ListenUDP("udp4", &net.UDPAddr{
		IP: net.IPv4(127, 0, 0, 1),
	})
	if err != nil {
		t.Error(err)
	}

	received := make(chan []byte, 1024)

	go func() {
		for {
			buf := make([]byte, 1500)

			n, err := inSocket.Read(buf)
			if err != nil {
				return
			}

			received <- buf[0:n]
		}
	}()

	return inSocket, received
}
