package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, "shader.hlsl", cfg.ExportPath)
	assert.Equal(t, "\r\n", cfg.NewlineSequence())
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "shader_source", cfg.Preview.Event)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shadergraph.yaml")
	err := os.WriteFile(path, []byte(`
export_path: out/material.hlsl
line_ending: lf
annotate: true
watch:
  debounce: 50ms
preview:
  url: http://localhost:3000
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "out/material.hlsl", cfg.ExportPath)
	assert.Equal(t, "\n", cfg.NewlineSequence())
	assert.True(t, cfg.Annotate)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "http://localhost:3000", cfg.Preview.URL)
	// Untouched keys keep their defaults.
	assert.Equal(t, "main", cfg.EntryPoint)
	assert.Len(t, cfg.Includes, 2)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("no_such_key: 1\n"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad line ending", func(c *Config) { c.LineEnding = "cr" }, false},
		{"empty export path", func(c *Config) { c.ExportPath = "" }, false},
		{"reserved entry point", func(c *Config) { c.EntryPoint = "float4" }, false},
		{"intrinsic entry point", func(c *Config) { c.EntryPoint = "lerp" }, false},
		{"entry point with space", func(c *Config) { c.EntryPoint = "ps main" }, false},
		{"custom entry point", func(c *Config) { c.EntryPoint = "PSMain" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, false},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, false},
		{"negative port", func(c *Config) { c.HealthcheckPort = -1 }, false},
		{"bad preview url", func(c *Config) { c.Preview.URL = "not a url" }, false},
		{"empty include", func(c *Config) { c.Includes = []string{""} }, false},
		{"no includes", func(c *Config) { c.Includes = nil }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := Validate(cfg)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
