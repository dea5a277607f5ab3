// Package cli implements the dog-statsd command line emitter:
// one-shot metric, event and service check submission for shell
// scripts and cron jobs.
package cli

import (
	"fmt"
	"strconv"

	"github.com/joomcode/errorx"
	"github.com/urfave/cli/v2"

	statsd "github.com/creativemarket/dog-statsd"
	"github.com/creativemarket/dog-statsd/utils"
	"github.com/creativemarket/dog-statsd/version"
)

// Run parses the command line and executes the requested command
func Run(args []string) error {
	return NewApp().Run(args)
}

// NewApp builds the dog-statsd CLI application
func NewApp() *cli.App {
	c := NewConfig()

	// Print raw version without prefix
	cli.VersionPrinter = func(cCtx *cli.Context) {
		_, _ = fmt.Fprintf(cCtx.App.Writer, "%v\n", cCtx.App.Version)
	}

	flags := []cli.Flag{}
	flags = append(flags, clientCLIFlags(&c)...)
	flags = append(flags, logCLIFlags(&c)...)
	flags = append(flags, miscCLIFlags(&c)...)

	return &cli.App{
		Name:            "dog-statsd",
		Version:         version.Version(),
		Usage:           "Send metrics, events and service checks to a statsd/DogStatsD agent",
		HideHelpCommand: true,
		Flags:           flags,
		Before: func(ctx *cli.Context) error {
			if c.Debug {
				c.LogLevel = "debug"
				c.LogFormat = "text"
			}

			return utils.InitLogger(c.LogFormat, c.LogLevel)
		},
		Action: func(ctx *cli.Context) error {
			if c.PrintConfig {
				conf, err := c.resolveClient(ctx)
				if err != nil {
					return err
				}

				fmt.Print(conf.ToToml())
				return nil
			}

			return cli.ShowAppHelp(ctx)
		},
		Commands: commands(&c),
	}
}

func commands(c *Config) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "count",
			Usage:     "Add a value to a counter",
			ArgsUsage: "<metric> <value>",
			Flags:     []cli.Flag{rateFlag(), tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				value, err := strconv.ParseInt(ctx.Args().Get(1), 10, 64)
				if err != nil {
					return errorx.Decorate(err, "counter value must be an integer")
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Incr(metric, value, ctx.Float64("rate"), callTags(ctx)...)
			},
		},
		{
			Name:      "incr",
			Usage:     "Increment a counter by one",
			ArgsUsage: "<metric>",
			Flags:     []cli.Flag{rateFlag(), tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 1)
				if err != nil {
					return err
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Incr(metric, 1, ctx.Float64("rate"), callTags(ctx)...)
			},
		},
		{
			Name:      "decr",
			Usage:     "Decrement a counter by one",
			ArgsUsage: "<metric>",
			Flags:     []cli.Flag{rateFlag(), tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 1)
				if err != nil {
					return err
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Decr(metric, 1, ctx.Float64("rate"), callTags(ctx)...)
			},
		},
		{
			Name:      "gauge",
			Usage:     "Set a gauge to an absolute value",
			ArgsUsage: "<metric> <value>",
			Flags:     []cli.Flag{tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				value, err := strconv.ParseFloat(ctx.Args().Get(1), 64)
				if err != nil {
					return errorx.Decorate(err, "gauge value must be a number")
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Gauge(metric, value, callTags(ctx)...)
			},
		},
		{
			Name:      "timing",
			Usage:     "Record a duration in milliseconds",
			ArgsUsage: "<metric> <ms>",
			Flags:     []cli.Flag{tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				ms, err := strconv.ParseFloat(ctx.Args().Get(1), 64)
				if err != nil {
					return errorx.Decorate(err, "timing value must be a number")
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Timing(metric, ms, callTags(ctx)...)
			},
		},
		{
			Name:      "histogram",
			Usage:     "Record a histogram sample",
			ArgsUsage: "<metric> <value>",
			Flags:     []cli.Flag{rateFlag(), tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				value, err := strconv.ParseFloat(ctx.Args().Get(1), 64)
				if err != nil {
					return errorx.Decorate(err, "histogram value must be a number")
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Histogram(metric, value, ctx.Float64("rate"), callTags(ctx)...)
			},
		},
		{
			Name:      "set",
			Usage:     "Count a unique occurrence per flush interval",
			ArgsUsage: "<metric> <value>",
			Flags:     []cli.Flag{tagsFlag()},
			Action: func(ctx *cli.Context) error {
				metric, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				return client.Set(metric, ctx.Args().Get(1), callTags(ctx)...)
			},
		},
		{
			Name:      "event",
			Usage:     "Send an event",
			ArgsUsage: "<title> <text>",
			Flags: []cli.Flag{
				tagsFlag(),
				&cli.StringFlag{Name: "hostname", Usage: "Host the event relates to"},
				&cli.StringFlag{Name: "priority", Usage: "Event priority (normal/low)"},
				&cli.StringFlag{Name: "alert_type", Usage: "Alert type (error/warning/info/success)"},
				&cli.StringFlag{Name: "source", Usage: "Source type name"},
				&cli.StringFlag{Name: "aggregation_key", Usage: "Key to group related events"},
			},
			Action: func(ctx *cli.Context) error {
				title, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				event := statsd.NewEvent(title, ctx.Args().Get(1))
				event.Hostname = ctx.String("hostname")
				event.Priority = ctx.String("priority")
				event.AlertType = ctx.String("alert_type")
				event.SourceTypeName = ctx.String("source")
				event.AggregationKey = ctx.String("aggregation_key")

				return client.Event(event, callTags(ctx)...)
			},
		},
		{
			Name:      "check",
			Usage:     "Send a service check report",
			ArgsUsage: "<name> <status>",
			Flags: []cli.Flag{
				tagsFlag(),
				&cli.StringFlag{Name: "hostname", Usage: "Host the check ran on"},
				&cli.StringFlag{Name: "message", Usage: "Message describing the current state"},
			},
			Action: func(ctx *cli.Context) error {
				name, err := requireArgs(ctx, 2)
				if err != nil {
					return err
				}

				status, err := statsd.ParseStatus(ctx.Args().Get(1))
				if err != nil {
					return err
				}

				client, err := c.buildClient(ctx)
				if err != nil {
					return err
				}

				check := &statsd.ServiceCheck{
					Name:     name,
					Status:   status,
					Hostname: ctx.String("hostname"),
					Message:  ctx.String("message"),
				}

				return client.ServiceCheck(check, callTags(ctx)...)
			},
		},
	}
}

// resolveClient assembles the client configuration: the TOML file (when
// given) loads first, explicitly set flags override it
func (c *Config) resolveClient(ctx *cli.Context) (statsd.Config, error) {
	conf := statsd.NewConfig()

	if c.ConfigPath != "" {
		if err := conf.LoadFromFile(c.ConfigPath); err != nil {
			return conf, errorx.Decorate(err, "failed to load config from %s", c.ConfigPath)
		}
	}

	if ctx.IsSet("host") {
		conf.Host = c.Client.Host
	}

	if ctx.IsSet("port") {
		conf.Port = c.Client.Port
	}

	if ctx.IsSet("namespace") {
		conf.Namespace = c.Client.Namespace
	}

	if ctx.IsSet("timeout") {
		conf.Timeout = c.Client.Timeout
	}

	if ctx.IsSet("silence_errors") {
		conf.SilenceErrors = c.Client.SilenceErrors
	}

	if ctx.IsSet("vanilla") {
		conf.Datadog = !c.Vanilla
	}

	if c.TagsRaw != "" {
		conf.Tags = append(conf.Tags, statsd.ParseTags(c.TagsRaw)...)
	}

	return conf, nil
}

func (c *Config) buildClient(ctx *cli.Context) (*statsd.Client, error) {
	conf, err := c.resolveClient(ctx)
	if err != nil {
		return nil, err
	}

	return statsd.NewClient(conf)
}

// callTags returns the per-command tags (the global ones travel in the
// client config)
func callTags(ctx *cli.Context) []statsd.Tag {
	return statsd.ParseTags(ctx.String("tags"))
}

func rateFlag() *cli.Float64Flag {
	return &cli.Float64Flag{
		Name:  "rate",
		Usage: "Sample rate in (0, 1]",
		Value: 1.0,
	}
}

func tagsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "tags",
		Usage: "Message tags (comma-separated, key:value or bare)",
	}
}

func requireArgs(ctx *cli.Context, count int) (string, error) {
	if ctx.Args().Len() < count {
		return "", errorx.IllegalArgument.New(
			"%s expects %d argument(s): %s", ctx.Command.Name, count, ctx.Command.ArgsUsage,
		)
	}

	return ctx.Args().Get(0), nil
}
