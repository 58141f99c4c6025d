package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/onboardr/internal/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG at a temp dir, moves into another temp dir and clears
// every ONBOARDR_ variable.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range keys {
		t.Setenv("ONBOARDR_"+strings.ToUpper(key), "")
		require.NoError(t, os.Unsetenv("ONBOARDR_"+strings.ToUpper(key)))
	}

	origWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/onboardr/onboardr.yml", GlobalPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	got := GlobalPath()
	assert.True(t, filepath.IsAbs(got), got)
	assert.Equal(t, "onboardr.yml", filepath.Base(got))
}

func TestProjectPath(t *testing.T) {
	assert.Equal(t, "onboardr.yml", ProjectPath())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	assert.False(t, Exists())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	fade, err := cfg.Fade()
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, fade)

	rule, err := cfg.BackRule()
	require.NoError(t, err)
	assert.Equal(t, onboarding.BackRuleDevelopmentFirst, rule)
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.Store = "sqlite"
	global.LogLevel = "warn"
	global.FadeDuration = "1s"
	require.NoError(t, WriteGlobal(global))

	project := Default()
	project.Store = "nats"
	project.FadeDuration = "150ms"
	require.NoError(t, WriteProject(project))
	assert.True(t, Exists())

	t.Setenv("ONBOARDR_FADE_DURATION", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "nats", cfg.Store, "project overrides global")
	assert.Equal(t, "info", cfg.LogLevel, "project file carries its own log level")
	assert.Equal(t, "0s", cfg.FadeDuration, "env overrides files")

	fade, err := cfg.Fade()
	require.NoError(t, err)
	assert.Zero(t, fade)
}

func TestLoad_GlobalOnly(t *testing.T) {
	isolate(t)

	global := Default()
	global.DataDir = ".global"
	global.InstructionsBackRule = "grouped"
	require.NoError(t, WriteGlobal(global))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ".global", cfg.DataDir)
	rule, err := cfg.BackRule()
	require.NoError(t, err)
	assert.Equal(t, onboarding.BackRuleGrouped, rule)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"memory store", func(c *Config) { c.Store = "memory" }, ""},
		{"empty fade means default", func(c *Config) { c.FadeDuration = "" }, ""},
		{"unknown store", func(c *Config) { c.Store = "redis" }, `store "redis"`},
		{"negative fade", func(c *Config) { c.FadeDuration = "-1s" }, "must not be negative"},
		{"garbage fade", func(c *Config) { c.FadeDuration = "soon" }, "fade_duration"},
		{"unknown back rule", func(c *Config) { c.InstructionsBackRule = "sideways" }, "instructions_back_rule"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"empty data dir", func(c *Config) { c.DataDir = " " }, "data_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPipesRoot(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.PipesRoot())

	cfg.ScreenpipeDir = filepath.Join(dir, "screenpipe")
	assert.Equal(t, filepath.Join(dir, "screenpipe"), cfg.PipesRoot())
}
