// Package config loads the kroviz settings file. Files may be JSON or YAML;
// missing values keep their defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Renderer names accepted by Render.Renderer.
const (
	RendererVanilla = "vanilla"
	RendererTUI     = "tui"
)

// Config is the full kroviz configuration.
type Config struct {
	Backend Backend `json:"backend" yaml:"backend"`
	Server  Server  `json:"server" yaml:"server"`
	Log     Log     `json:"log" yaml:"log"`
	Render  Render  `json:"render" yaml:"render"`
}

// Backend points at the Restful-Objects server.
type Backend struct {
	URL      string   `json:"url" yaml:"url"`
	Username string   `json:"username" yaml:"username"`
	Password string   `json:"password" yaml:"password"`
	Timeout  Duration `json:"timeout" yaml:"timeout"`
}

// Server configures the browser front end.
type Server struct {
	Addr            string   `json:"addr" yaml:"addr"`
	ReadTimeout     Duration `json:"readTimeout" yaml:"readTimeout"`
	ShutdownTimeout Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

// Render selects the renderer and its theme.
type Render struct {
	Renderer     string   `json:"renderer" yaml:"renderer"`
	Theme        string   `json:"theme" yaml:"theme"`
	Variant      string   `json:"variant" yaml:"variant"`
	ThemeFiles   []string `json:"themeFiles" yaml:"themeFiles"`
	TemplatesDir string   `json:"templatesDir" yaml:"templatesDir"`
	InlineStyles bool     `json:"inlineStyles" yaml:"inlineStyles"`
}

// Duration accepts Go duration strings ("30s") or whole seconds.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return d.set(raw)
}

func (d *Duration) set(raw any) error {
	switch v := raw.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(v * float64(time.Second)))
	case int:
		*d = Duration(time.Duration(v) * time.Second)
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("config: invalid duration %v", raw)
	}
	return nil
}

// Default returns the built-in configuration: a local Causeway backend with
// the demo credentials and the HTML renderer.
func Default() Config {
	return Config{
		Backend: Backend{
			URL:      "http://localhost:8080",
			Username: "sven",
			Password: "pass",
			Timeout:  Duration(30 * time.Second),
		},
		Server: Server{
			Addr:            ":8090",
			ReadTimeout:     Duration(15 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Log: Log{
			Level: "info",
		},
		Render: Render{
			Renderer: RendererVanilla,
		},
	}
}

// Load reads and validates a configuration file. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes JSON or YAML over the defaults. Source names the input in
// error messages.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err == nil {
		return cfg, nil
	}

	cfg = Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	parsed, err := url.Parse(strings.TrimSpace(c.Backend.URL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("config: backend.url %q must be an absolute http(s) URL", c.Backend.URL)
	}
	if c.Backend.Timeout < 0 {
		return errors.New("config: backend.timeout must not be negative")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	switch c.Render.Renderer {
	case RendererVanilla, RendererTUI:
	default:
		return fmt.Errorf("config: render.renderer %q must be %q or %q", c.Render.Renderer, RendererVanilla, RendererTUI)
	}
	if c.Render.Variant != "" && c.Render.Theme == "" {
		return errors.New("config: render.variant requires render.theme")
	}
	return nil
}

// Logger builds the zap logger described by Log. Verbose forces debug level.
func (c Config) Logger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
