package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/graphql", cfg.GraphQLPath)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gqlbridge.yaml")
	data := []byte("addr: \":8080\"\nenv: production\nlogFormat: json\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	// Unset fields keep their defaults.
	assert.Equal(t, "/graphql", cfg.GraphQLPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gqlbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: development\n"), 0o600))

	t.Setenv("GQLBRIDGE_ENV", "production")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvProduction, cfg.Env)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("GQLBRIDGE_ENV", "staging")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/gqlbridge.yaml")
	assert.Error(t, err)
}

func TestLoad_DefaultsUploadCap(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
}
