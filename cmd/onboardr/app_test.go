package main

import (
	"bytes"
	"testing"

	"github.com/mark3labs/onboardr/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestApplyOverrides(t *testing.T) {
	orig := globalFlags
	t.Cleanup(func() { globalFlags = orig })

	cfg := config.Default()
	globalFlags.store = "sqlite"
	globalFlags.dataDir = "/tmp/onboardr"
	applyOverrides(cfg)

	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "/tmp/onboardr", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel, "unset flags keep config values")
}

func TestPrintHome(t *testing.T) {
	var out bytes.Buffer
	printHome(&out, config.Default())
	assert.Contains(t, out.String(), ".onboardr (file store)")
	assert.Contains(t, out.String(), "onboardr reset")
}
