package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/overlay-go/pkg/overlay/cache"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "Actual", cfg.Label1)
	assert.Equal(t, "PSCAD", cfg.Label2)
	assert.Equal(t, "p.u.", cfg.YAxisLabel)
	assert.Equal(t, []string{"_time"}, cfg.TimeSuffixes)
	assert.Equal(t, 16, cfg.MaxPlots)
	assert.Equal(t, 5, cfg.PreviewRows)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yamlContent := "label1: FromFile\nlabel2: FileTwo\npanel_width: 500\ntime_suffixes: [\"_t\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overlay.yaml"), []byte(yamlContent), 0644))

	t.Setenv("OVERLAY_LABEL2", "FromEnv")
	t.Setenv("OVERLAY_PANEL_HEIGHT", "222")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("label1", "ignored-default", "")
	flags.Int("rows", 5, "")
	flags.Int("panel-width", 0, "")
	require.NoError(t, flags.Parse([]string{"--label1", "FromFlag", "--rows", "3"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "FromFlag", cfg.Label1)
	assert.Equal(t, "FromEnv", cfg.Label2)
	// Unset flags do not override the file
	assert.Equal(t, 500, cfg.PanelWidth)
	assert.Equal(t, 222, cfg.PanelHeight)
	assert.Equal(t, 3, cfg.PreviewRows)
	assert.Equal(t, []string{"_t"}, cfg.TimeSuffixes)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestConfigConversions(t *testing.T) {
	cfg := &Config{
		Label1:       "A",
		Label2:       "B",
		TimeSuffixes: []string{"_s"},
		MaxPlots:     4,
		PanelWidth:   300,
		YAxisLabel:   "kV",
		CacheSize:    -1,
	}

	opts := cfg.Options()
	assert.Equal(t, "A", opts.Label1)
	assert.Equal(t, []string{"_s"}, opts.TimeSuffixes)
	assert.Equal(t, 4, opts.MaxPlots)

	ro := cfg.RenderOptions()
	assert.Equal(t, 300, ro.PanelWidth)
	assert.Equal(t, "kV", ro.YAxisLabel)

	assert.IsType(t, cache.Nop{}, cfg.Cache())
	cfg.CacheSize = 2
	assert.IsType(t, &cache.LRU{}, cfg.Cache())
}
