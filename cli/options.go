package cli

import (
	"regexp"
	"strings"

	"github.com/urfave/cli/v2"

	statsd "github.com/creativemarket/dog-statsd"
)

// Config contains the CLI-level application configuration
type Config struct {
	Client      statsd.Config
	TagsRaw     string
	LogLevel    string
	LogFormat   string
	Debug       bool
	Vanilla     bool
	ConfigPath  string
	PrintConfig bool
}

// NewConfig creates a Config with default values
func NewConfig() Config {
	return Config{
		Client:    statsd.NewConfig(),
		LogLevel:  "info",
		LogFormat: "text",
	}
}

const (
	clientCategoryDescription = "CLIENT:"
	logCategoryDescription    = "LOG:"
	miscCategoryDescription   = "MISC:"

	envPrefix = "DOGSTATSD_"
)

var splitFlagName = regexp.MustCompile("[_-]")

func clientCLIFlags(c *Config) []cli.Flag {
	return withDefaults(clientCategoryDescription, []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Usage:       "Collector host",
			Value:       c.Client.Host,
			Destination: &c.Client.Host,
		},

		&cli.IntFlag{
			Name:        "port",
			Usage:       "Collector UDP port",
			Value:       c.Client.Port,
			Destination: &c.Client.Port,
		},

		&cli.StringFlag{
			Name:        "namespace",
			Usage:       "Prefix for all metric, event and service check names",
			Destination: &c.Client.Namespace,
		},

		&cli.IntFlag{
			Name:        "timeout",
			Usage:       "Channel open timeout in seconds (0 for the OS default)",
			Destination: &c.Client.Timeout,
		},

		&cli.StringFlag{
			Name:        "tags",
			Usage:       "Default tags merged into every message (comma-separated, key:value or bare)",
			Destination: &c.TagsRaw,
		},

		&cli.BoolFlag{
			Name:        "silence_errors",
			Usage:       "Log send failures instead of failing the command",
			Destination: &c.Client.SilenceErrors,
		},

		&cli.BoolFlag{
			Name:        "vanilla",
			Usage:       "Target a vanilla statsd server (disables tags, events and service checks)",
			Destination: &c.Vanilla,
		},
	})
}

func logCLIFlags(c *Config) []cli.Flag {
	return withDefaults(logCategoryDescription, []cli.Flag{
		&cli.StringFlag{
			Name:        "log_level",
			Usage:       "Set logging level (debug/info/warn/error/fatal)",
			Value:       c.LogLevel,
			Destination: &c.LogLevel,
		},

		&cli.StringFlag{
			Name:        "log_format",
			Usage:       "Set logging format (text/json)",
			Value:       c.LogFormat,
			Destination: &c.LogFormat,
		},

		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "Enable debug mode (more verbose logging)",
			Destination: &c.Debug,
		},
	})
}

func miscCLIFlags(c *Config) []cli.Flag {
	return withDefaults(miscCategoryDescription, []cli.Flag{
		&cli.PathFlag{
			Name:        "config",
			Usage:       "Path to a TOML config file",
			Destination: &c.ConfigPath,
		},

		&cli.BoolFlag{
			Name:        "print_config",
			Usage:       "Print the resolved configuration as TOML and exit",
			Destination: &c.PrintConfig,
		},
	})
}

// withDefaults sets category and env var name for flags passed as the argument
func withDefaults(category string, flags []cli.Flag) []cli.Flag {
	for _, f := range flags {
		switch v := f.(type) {
		case *cli.IntFlag:
			v.Category = category
			if len(v.EnvVars) == 0 {
				v.EnvVars = []string{nameToEnvVarName(v.Name)}
			}
		case *cli.Int64Flag:
			v.Category = category
			if len(v.EnvVars) == 0 {
				v.EnvVars = []string{nameToEnvVarName(v.Name)}
			}
		case *cli.Float64Flag:
			v.Category = category
			if len(v.EnvVars) == 0 {
				v.EnvVars = []string{nameToEnvVarName(v.Name)}
			}
		case *cli.BoolFlag:
			v.Category = category
			if len(v.EnvVars) == 0 {
				v.EnvVars = []string{nameToEnvVarName(v.Name)}
			}
		case *cli.StringFlag:
			v.Category = category
			if len(v.EnvVars) == 0 {
				v.EnvVars = []string{nameToEnvVarName(v.Name)}
			}
		case *cli.PathFlag:
			v.Category = category
			if len(v.EnvVars) == 0 {
				v.EnvVars = []string{nameToEnvVarName(v.Name)}
			}
		}
	}
	return flags
}

// nameToEnvVarName converts flag name to env variable
func nameToEnvVarName(name string) string {
	split := splitFlagName.Split(name, -1)
	set := []string{}

	for i := range split {
		set = append(set, strings.ToUpper(split[i]))
	}

	return envPrefix + strings.Join(set, "_")
}
