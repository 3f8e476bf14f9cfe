package cliconfig_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/hypergraphstate/hypergraphstate/cliconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := cliconfig.Load(nil)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "info", cfg.LogLevel)
	require.True(t, cfg.StrictValidation)
}

func TestLoad_FlagsOverrideDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("hgsctl", pflag.ContinueOnError)
	fs.String("listen_addr", ":8080", "")
	fs.String("log_level", "info", "")
	require.NoError(t, fs.Parse([]string{"--listen_addr=:9090", "--log_level=debug"}))

	cfg, err := cliconfig.Load(fs)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("HGSCTL_LOG_LEVEL", "warn")

	cfg, err := cliconfig.Load(nil)
	require.NoError(t, err)
	require.Equal(t, "warn", cfg.LogLevel)
}
