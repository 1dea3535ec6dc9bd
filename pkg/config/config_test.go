package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-kroviz/pkg/config"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout.Std())
}

func TestParse_YAMLOverridesDefaults(t *testing.T) {
	data := []byte(`
backend:
  url: https://demo.example.com/
  timeout: 5s
log:
  level: debug
render:
  renderer: tui
  theme: acme
  variant: dark
`)
	cfg, err := config.Parse(data, "kroviz.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://demo.example.com/", cfg.Backend.URL)
	assert.Equal(t, "sven", cfg.Backend.Username, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.RendererTUI, cfg.Render.Renderer)
	assert.Equal(t, ":8090", cfg.Server.Addr)
}

func TestParse_JSONWithNumericDuration(t *testing.T) {
	cfg, err := config.Parse([]byte(`{"backend":{"timeout":2},"server":{"addr":":9000"}}`), "kroviz.json")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout.Std())
	assert.Equal(t, ":9000", cfg.Server.Addr)
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse([]byte("  "), "empty.yaml")
	assert.ErrorContains(t, err, "empty")

	_, err = config.Parse([]byte("backend: [unterminated"), "bad.yaml")
	assert.ErrorContains(t, err, "invalid JSON or YAML")

	_, err = config.Parse([]byte(`{"backend":{"timeout":"soon"}}`), "bad.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"relative url":     func(c *config.Config) { c.Backend.URL = "/restful" },
		"ftp url":          func(c *config.Config) { c.Backend.URL = "ftp://host" },
		"negative timeout": func(c *config.Config) { c.Backend.Timeout = config.Duration(-time.Second) },
		"missing addr":     func(c *config.Config) { c.Server.Addr = " " },
		"bad level":        func(c *config.Config) { c.Log.Level = "chatty" },
		"bad renderer":     func(c *config.Config) { c.Render.Renderer = "preact" },
		"orphan variant":   func(c *config.Config) { c.Render.Variant = "dark" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kroviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: nope\n"), 0o600))

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "log.level")

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	cfg := config.Default()
	logger, err := cfg.Logger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1), "info level hides debug")

	logger, err = cfg.Logger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(-1), "verbose enables debug")
}

func TestParseManifest(t *testing.T) {
	manifest, err := config.ParseManifest([]byte(`
name: acme
version: 1.0.0
tokens:
  brand: "#123456"
`), "acme.yaml")
	require.NoError(t, err)
	assert.Equal(t, "acme", manifest.Name)
	assert.Equal(t, "#123456", manifest.Tokens["brand"])

	_, err = config.ParseManifest([]byte(`{"version":"1"}`), "anon.json")
	assert.ErrorContains(t, err, "no name")

	dir := t.TempDir()
	path := filepath.Join(dir, "acme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"acme","tokens":{"brand":"red"}}`), 0o600))
	manifests, err := config.Render{ThemeFiles: []string{path}}.LoadManifests()
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "red", manifests[0].Tokens["brand"])
}
