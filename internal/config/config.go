// Package config loads overlay settings from defaults, a YAML file,
// OVERLAY_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"github.com/ukaji3/overlay-go/pkg/overlay"
	"github.com/ukaji3/overlay-go/pkg/overlay/cache"
	"github.com/ukaji3/overlay-go/pkg/overlay/match"
	"github.com/ukaji3/overlay-go/pkg/overlay/output"
	"github.com/ukaji3/overlay-go/pkg/overlay/pairing"
	"github.com/ukaji3/overlay-go/pkg/overlay/render"
)

// EnvPrefix prefixes environment variables, e.g. OVERLAY_PANEL_WIDTH.
const EnvPrefix = "OVERLAY_"

// DefaultConfigFiles are looked up in the working directory when no
// explicit file is given.
var DefaultConfigFiles = []string{"overlay.yaml", "overlay.yml"}

// flagKeys maps flag names to config keys where they differ.
var flagKeys = map[string]string{
	"rows": "preview_rows",
}

// Config holds all settings.
type Config struct {
	Label1         string   `koanf:"label1"`
	Label2         string   `koanf:"label2"`
	YAxisLabel     string   `koanf:"y_axis_label"`
	TimeSuffixes   []string `koanf:"time_suffixes"`
	MaxPlots       int      `koanf:"max_plots"`
	PanelWidth     int      `koanf:"panel_width"`
	PanelHeight    int      `koanf:"panel_height"`
	PreviewRows    int      `koanf:"preview_rows"`
	CacheSize      int      `koanf:"cache_size"`
	Addr           string   `koanf:"addr"`
	MaxUploadBytes int64    `koanf:"max_upload_bytes"`
	Verbose        bool     `koanf:"verbose"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]interface{} {
	r := render.DefaultOptions()
	return map[string]interface{}{
		"label1":           overlay.DefaultLabel1,
		"label2":           overlay.DefaultLabel2,
		"y_axis_label":     r.YAxisLabel,
		"time_suffixes":    []string{match.DefaultTimeSuffix},
		"max_plots":        pairing.DefaultMaxPlots,
		"panel_width":      r.PanelWidth,
		"panel_height":     r.PanelHeight,
		"preview_rows":     output.DefaultPreviewRows,
		"cache_size":       cache.DefaultCapacity,
		"addr":             ":8080",
		"max_upload_bytes": int64(32 << 20),
		"verbose":          false,
	}
}

// Load reads configuration. Precedence (highest to lowest):
// explicitly set flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// OVERLAY_PANEL_WIDTH -> panel_width
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if mapped, ok := flagKeys[key]; ok {
				key = mapped
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// findConfigFile returns the explicit path, or the first default file
// present in the working directory, or "".
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range DefaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Options returns pipeline options carrying the configured labels and limits.
func (c *Config) Options() overlay.Options {
	opts := overlay.DefaultOptions()
	opts.Label1 = c.Label1
	opts.Label2 = c.Label2
	if len(c.TimeSuffixes) > 0 {
		opts.TimeSuffixes = c.TimeSuffixes
	}
	if c.MaxPlots > 0 {
		opts.MaxPlots = c.MaxPlots
	}
	return opts
}

// RenderOptions returns renderer options for the configured geometry.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		PanelWidth:  c.PanelWidth,
		PanelHeight: c.PanelHeight,
		YAxisLabel:  c.YAxisLabel,
	}
}

// Cache returns the table cache for the configured size; a negative size
// disables caching.
func (c *Config) Cache() cache.Tables {
	if c.CacheSize < 0 {
		return cache.Nop{}
	}
	return cache.New(c.CacheSize)
}
