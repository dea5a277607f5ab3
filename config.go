// Package statsd implements a DogStatsD-dialect client: metrics, events
// and service checks are encoded into the line-oriented statsd text
// protocol and shipped to the collector over UDP, one datagram per call.
package statsd

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config contains client configuration.
// It is read-only after the client has been created.
type Config struct {
	// Collector address
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// Namespace is prepended (followed by a dot) to every metric,
	// event title and service check name
	Namespace string `toml:"namespace"`
	// Timeout is the datagram channel open timeout in seconds
	// (0 means the OS default)
	Timeout int `toml:"timeout"`
	// SilenceErrors downgrades send failures to log warnings
	SilenceErrors bool `toml:"silence_errors"`
	// Datadog enables the DogStatsD dialect extensions: tags, events
	// and service checks. Disable when talking to a vanilla statsd
	// server which would reject them.
	Datadog bool `toml:"datadog"`
	// Tags are merged (first) into the tags of every outgoing message
	Tags []Tag `toml:"tags"`
}

// NewConfig returns a config pointing at a local DogStatsD agent
func NewConfig() Config {
	return Config{
		Host:    "127.0.0.1",
		Port:    8125,
		Datadog: true,
	}
}

// Validate checks that the configuration could be safely handed to the
// transport. Must be called before the first send; a malformed port must
// never reach the dialer.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrConfig.New("port must be within [1, 65535], got %d", c.Port)
	}

	return nil
}

// Addr returns the collector address in the "host:port" form
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DialTimeout returns the configured channel open timeout
func (c Config) DialTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// LoadFromFile reads configuration from a TOML file on top of the
// current values
func (c *Config) LoadFromFile(path string) error {
	_, err := toml.DecodeFile(path, c)
	return err
}

// ToToml converts the Config to a TOML string representation
func (c Config) ToToml() string {
	var result strings.Builder

	result.WriteString("# Collector host\n")
	result.WriteString(fmt.Sprintf("host = \"%s\"\n", c.Host))

	result.WriteString("# Collector UDP port\n")
	result.WriteString(fmt.Sprintf("port = %d\n", c.Port))

	result.WriteString("# Prefix for all metric, event and service check names\n")
	if c.Namespace != "" {
		result.WriteString(fmt.Sprintf("namespace = \"%s\"\n", c.Namespace))
	} else {
		result.WriteString("# namespace = \"myapp\"\n")
	}

	result.WriteString("# Channel open timeout in seconds (0 for the OS default)\n")
	if c.Timeout != 0 {
		result.WriteString(fmt.Sprintf("timeout = %d\n", c.Timeout))
	} else {
		result.WriteString("# timeout = 1\n")
	}

	result.WriteString("# Log send failures instead of returning them\n")
	if c.SilenceErrors {
		result.WriteString("silence_errors = true\n")
	} else {
		result.WriteString("# silence_errors = true\n")
	}

	result.WriteString("# DogStatsD dialect (tags, events, service checks)\n")
	result.WriteString(fmt.Sprintf("datadog = %v\n", c.Datadog))

	result.WriteString("# Default tags, merged into every message\n")
	if len(c.Tags) > 0 {
		parts := make([]string, len(c.Tags))
		for i, tag := range c.Tags {
			parts[i] = tag.String()
		}
		result.WriteString(fmt.Sprintf("tags = [ \"%s\" ]\n", strings.Join(parts, "\", \"")))
	} else {
		result.WriteString("# tags = [ \"env:prod\", \"canary\" ]\n")
	}

	result.WriteString("\n")

	return result.String()
}
