package statsd

import (
	"io"
	"math"
	"math/rand"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/jonboulle/clockwork"
	"github.com/joomcode/errorx"
	nanoid "github.com/matoous/go-nanoid"
)

// DialFunc opens a datagram channel to the collector.
// A zero timeout means the OS default.
type DialFunc func(host string, port int, timeout time.Duration) (io.WriteCloser, error)

// UDPDial is the default DialFunc
func UDPDial(host string, port int, timeout time.Duration) (io.WriteCloser, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	return net.DialTimeout("udp", addr, timeout)
}

// Client encodes metrics, events and service checks and ships each call
// as a single datagram. Delivery is fire-and-forget: a lost packet is
// an acceptable price for a metrics pipeline that never blocks the app.
//
// There is no shared socket: every call dials its own channel, so
// concurrent use is safe (LastMessage is last-writer-wins).
type Client struct {
	config Config
	name   string
	id     string
	prefix string

	dial  DialFunc
	clock clockwork.Clock
	rand  func() float64

	log *log.Entry

	mu          sync.Mutex
	lastMessage string
}

// NewClient validates the config and returns a ready-to-use client
func NewClient(conf Config) (*Client, error) {
	return newClient("default", conf)
}

func newClient(name string, conf Config) (*Client, error) {
	if err := conf.Validate(); err != nil {
		if ex := errorx.Cast(err); ex != nil {
			return nil, ex.WithProperty(PropertyClientID, name)
		}
		return nil, err
	}

	id, err := nanoid.Nanoid(8)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if conf.Namespace != "" {
		prefix = conf.Namespace + "."
	}

	c := &Client{
		config: conf,
		name:   name,
		id:     id,
		prefix: prefix,
		dial:   UDPDial,
		clock:  clockwork.NewRealClock(),
		rand:   rand.Float64,
	}
	c.log = log.WithField("context", "statsd").WithField("client", c.String())

	return c, nil
}

// Name returns the registry name of the client ("default" for
// standalone instances)
func (c *Client) Name() string {
	return c.name
}

// ID returns the unique instance identifier
func (c *Client) ID() string {
	return c.id
}

func (c *Client) String() string {
	return c.name + "/" + c.id
}

// Config returns a copy of the client configuration
func (c *Client) Config() Config {
	return c.config
}

// SetDial replaces the transport. Call before the first send.
func (c *Client) SetDial(dial DialFunc) {
	c.dial = dial
}

// SetClock replaces the clock used by Time. Call before the first send.
func (c *Client) SetClock(clock clockwork.Clock) {
	c.clock = clock
}

// SetRand replaces the sampling source. Call before the first send.
func (c *Client) SetRand(fn func() float64) {
	c.rand = fn
}

// LastMessage returns the most recently transmitted payload
func (c *Client) LastMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastMessage
}

// Incr adds count to the stat counter.
// With rate < 1.0 the metric is sent only when the Bernoulli draw
// succeeds; the rate travels in the message so the server can re-scale.
func (c *Client) Incr(stat string, count int64, rate float64, tags ...Tag) error {
	return c.IncrAll([]string{stat}, count, rate, tags...)
}

// Decr subtracts count from the stat counter
func (c *Client) Decr(stat string, count int64, rate float64, tags ...Tag) error {
	return c.Incr(stat, -count, rate, tags...)
}

// IncrAll adds count to several counters at once. Each stat draws its
// own sample; the survivors share a single datagram.
func (c *Client) IncrAll(stats []string, count int64, rate float64, tags ...Tag) error {
	fragment := c.tagsFragment(tags)
	lines := make([]string, 0, len(stats))

	for _, stat := range stats {
		line, ok := c.metricLine(stat, strconv.FormatInt(count, 10), "c", rate, fragment)
		if ok {
			lines = append(lines, line)
		}
	}

	// Even a fully sampled-out batch goes through the send path
	return c.send(lines)
}

// Gauge sets the stat to an absolute value
func (c *Client) Gauge(stat string, value float64, tags ...Tag) error {
	line, _ := c.metricLine(stat, formatValue(value), "g", 1.0, c.tagsFragment(tags))
	return c.send([]string{line})
}

// Set counts unique occurrences of value per flush interval
func (c *Client) Set(stat string, value string, tags ...Tag) error {
	line, _ := c.metricLine(stat, value, "s", 1.0, c.tagsFragment(tags))
	return c.send([]string{line})
}

// Timing records a duration in milliseconds
func (c *Client) Timing(stat string, ms float64, tags ...Tag) error {
	line, _ := c.metricLine(stat, formatValue(ms), "ms", 1.0, c.tagsFragment(tags))
	return c.send([]string{line})
}

// Histogram records a value distribution sample, subject to the same
// sampling rule as counters. A failed draw sends nothing.
func (c *Client) Histogram(stat string, value float64, rate float64, tags ...Tag) error {
	line, ok := c.metricLine(stat, formatValue(value), "h", rate, c.tagsFragment(tags))
	if !ok {
		return nil
	}

	return c.send([]string{line})
}

// Time measures the wall-clock duration of fn and reports it via
// Timing, rounded to 4 decimal places. A panic inside fn propagates
// and nothing is reported.
func (c *Client) Time(stat string, fn func(), tags ...Tag) error {
	start := c.clock.Now()
	fn()
	elapsed := c.clock.Since(start)

	ms := float64(elapsed) / float64(time.Millisecond)
	ms = math.Round(ms*10000) / 10000

	return c.Timing(stat, ms, tags...)
}

// metricLine encodes "<prefix><stat>:<value>|<typ>[|@rate][|#tags]".
// The second return value is false when the sample draw dropped the
// metric.
func (c *Client) metricLine(stat string, value string, typ string, rate float64, tags string) (string, bool) {
	buf := make([]byte, 0, 64)
	buf = append(buf, c.prefix...)
	buf = append(buf, stat...)
	buf = append(buf, ':')
	buf = append(buf, value...)
	buf = append(buf, '|')
	buf = append(buf, typ...)

	if rate < 1.0 {
		if c.rand() > rate {
			return "", false
		}

		buf = append(buf, "|@"...)
		buf = strconv.AppendFloat(buf, rate, 'g', -1, 64)
	}

	buf = append(buf, tags...)

	return string(buf), true
}

// send joins the lines into one payload, dials, writes once and closes.
// The payload is recorded after a successful dial, before the write:
// write and close failures are never surfaced.
func (c *Client) send(lines []string) error {
	payload := strings.Join(lines, "\n")

	channel, err := c.dial(c.config.Host, c.config.Port, c.config.DialTimeout())
	if err != nil {
		if c.config.SilenceErrors {
			c.log.Warnf("Failed to reach %s: %v", c.config.Addr(), err)
			return nil
		}

		return ErrConnection.Wrap(err, "failed to open datagram channel to %s", c.config.Addr()).
			WithProperty(PropertyClientID, c.String())
	}

	c.mu.Lock()
	c.lastMessage = payload
	c.mu.Unlock()

	channel.Write([]byte(payload)) // nolint:errcheck
	channel.Close()                // nolint:errcheck

	return nil
}

// formatValue renders a float in the shortest exact decimal form
// (integral values print without a fraction)
func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
