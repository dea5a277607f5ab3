package metrics

import (
	"fmt"
	"strings"
)

// Config contains metrics configuration
type Config struct {
	Log            bool `toml:"log"`
	RotateInterval int  `toml:"rotate_interval"`
}

// NewConfig creates a Config with default values
func NewConfig() Config {
	return Config{
		RotateInterval: 15,
	}
}

// ToToml converts the Config to a TOML string representation
func (c Config) ToToml() string {
	var result strings.Builder

	result.WriteString("# Enable metrics logging\n")
	if c.Log {
		result.WriteString("log = true\n")
	} else {
		result.WriteString("# log = true\n")
	}

	result.WriteString("# Metrics rotation interval (seconds)\n")
	result.WriteString(fmt.Sprintf("rotate_interval = %d\n", c.RotateInterval))

	result.WriteString("\n")

	return result.String()
}
