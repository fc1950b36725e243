package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Configuration:
// - Defaults are complete and pass validation
// - Loading without a config file falls back to defaults
// - .tsdoc/config.yml values override defaults
// - TSDOC_* environment variables override file values
// - Validation rejects blank title/output, missing includes, bad globs,
//   and non-positive worker counts with the matching sentinel errors
// - Several problems at once are reported together

func writeConfigFile(t *testing.T, rootDir, content string) {
	t.Helper()
	configDir := filepath.Join(rootDir, ".tsdoc")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "API Reference", cfg.Title)
	assert.Equal(t, "API.md", cfg.Output)
	assert.Contains(t, cfg.Include, "**/*.ts")
	assert.Contains(t, cfg.Exclude, "node_modules/**")
	assert.Contains(t, cfg.Exclude, "**/*.d.ts")
	assert.Equal(t, 1, cfg.Workers)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, `
title: Widget SDK
output: docs/api.md
include:
  - "src/**/*.ts"
workers: 4
`)

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, "Widget SDK", cfg.Title)
	assert.Equal(t, "docs/api.md", cfg.Output)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.Include)
	assert.Equal(t, 4, cfg.Workers)
	// Unset keys keep their defaults
	assert.Equal(t, Default().Exclude, cfg.Exclude)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, "title: From File\n")

	t.Setenv("TSDOC_TITLE", "From Env")
	t.Setenv("TSDOC_OUTPUT", "env.md")

	cfg, err := LoadConfigFromDir(rootDir)
	require.NoError(t, err)

	assert.Equal(t, "From Env", cfg.Title)
	assert.Equal(t, "env.md", cfg.Output)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	writeConfigFile(t, rootDir, "output: \"  \"\n")

	_, err := LoadConfigFromDir(rootDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyOutput)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "blank title",
			mutate:  func(c *Config) { c.Title = "   " },
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "blank output",
			mutate:  func(c *Config) { c.Output = "" },
			wantErr: ErrEmptyOutput,
		},
		{
			name:    "no include patterns",
			mutate:  func(c *Config) { c.Include = nil },
			wantErr: ErrNoIncludePatterns,
		},
		{
			name:    "bad include glob",
			mutate:  func(c *Config) { c.Include = []string{"[oops"} },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "bad exclude glob",
			mutate:  func(c *Config) { c.Exclude = []string{"[oops"} },
			wantErr: ErrInvalidPattern,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Workers = 0 },
			wantErr: ErrInvalidWorkers,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.wantErr)
		})
	}
}

func TestValidate_MultipleProblems(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	err := Validate(cfg)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "validation failed:")
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "output path is required")
	assert.Contains(t, err.Error(), "at least one include pattern required")
}
