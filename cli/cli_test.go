package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	statsd "github.com/creativemarket/dog-statsd"
)

func resolveFromArgs(t *testing.T, args ...string) statsd.Config {
	c := NewConfig()

	var resolved statsd.Config

	flags := []cli.Flag{}
	flags = append(flags, clientCLIFlags(&c)...)
	flags = append(flags, miscCLIFlags(&c)...)

	app := &cli.App{
		Flags: flags,
		Action: func(ctx *cli.Context) error {
			var err error
			resolved, err = c.resolveClient(ctx)
			return err
		},
	}

	require.NoError(t, app.Run(append([]string{"dog-statsd"}, args...)))

	return resolved
}

func TestResolveClient(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		conf := resolveFromArgs(t)
		assert.Equal(t, statsd.NewConfig(), conf)
	})

	t.Run("Flags override defaults", func(t *testing.T) {
		conf := resolveFromArgs(t, "--port", "9125", "--namespace", "app", "--tags", "env:prod,canary", "--vanilla")

		assert.Equal(t, 9125, conf.Port)
		assert.Equal(t, "app", conf.Namespace)
		assert.Equal(t, statsd.ParseTags("env:prod,canary"), conf.Tags)
		assert.False(t, conf.Datadog)
	})

	t.Run("Config file loads first, flags win", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("port = 9125\nnamespace = \"file\"\n"), 0o644))

		conf := resolveFromArgs(t, "--config", path, "--namespace", "flag")

		assert.Equal(t, 9125, conf.Port)
		assert.Equal(t, "flag", conf.Namespace)
	})
}
