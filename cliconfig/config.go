// File: config.go
// Role: layered application configuration, loaded defaults < config file <
//       environment variables < CLI flags (highest priority wins), grounded
//       on the teacher pack's koanf-based config layer.
// AI-HINT (file):
//   - This is ambient configuration for cmd/hgsctl and httpapi; it has
//     nothing to do with the graph-ingest style config loader.go validates
//     (that one is about visual-channel semantics, not process config).
package cliconfig

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is the environment-variable namespace hgsctl reads from, e.g.
// HGSCTL_LOG_LEVEL=debug maps to the "log_level" key.
const EnvPrefix = "HGSCTL_"

// Config holds every process-level setting hgsctl and its embedded HTTP
// server need. Graph content itself is never part of this struct — that
// comes from loader, not cliconfig.
type Config struct {
	ListenAddr      string `koanf:"listen_addr"`
	LogLevel        string `koanf:"log_level"`
	LogJSON         bool   `koanf:"log_json"`
	StrictValidation bool  `koanf:"strict_validation"`
	GraphFile       string `koanf:"graph_file"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"listen_addr":       ":8080",
		"log_level":         "info",
		"log_json":          false,
		"strict_validation": true,
		"graph_file":        "",
	}
}

// Load builds a Config from, in ascending priority: built-in defaults, an
// optional hgsctl.json file in the working directory, HGSCTL_*-prefixed
// environment variables, then CLI flags bound to fs (nil to skip flags).
func Load(fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaults()), nil); err != nil {
		return nil, fmt.Errorf("cliconfig: load defaults: %w", err)
	}

	// Config file is optional; a missing file is not an error.
	_ = k.Load(file.Provider("hgsctl.json"), json.Parser())

	envKeyFn := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKeyFn), nil); err != nil {
		return nil, fmt.Errorf("cliconfig: load environment: %w", err)
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return nil, fmt.Errorf("cliconfig: load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("cliconfig: unmarshal: %w", err)
	}
	return &cfg, nil
}

// mapProviderImpl adapts a plain map into a koanf.Provider, the same small
// adapter shape the teacher pack uses for its own defaults layer.
type mapProviderImpl struct{ m map[string]interface{} }

func mapProvider(m map[string]interface{}) *mapProviderImpl { return &mapProviderImpl{m: m} }

func (p *mapProviderImpl) Read() (map[string]interface{}, error) { return p.m, nil }

func (p *mapProviderImpl) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("cliconfig: ReadBytes not supported for map provider")
}
