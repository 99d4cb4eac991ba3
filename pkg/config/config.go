// Package config loads the YAML configuration shared by the triage commands.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-triage/pkg/palette"
	"github.com/goliatone/go-triage/pkg/ranking"
)

// Config is the root document.
type Config struct {
	Server    Server    `yaml:"server"`
	Predictor Predictor `yaml:"predictor"`
	View      View      `yaml:"view"`
	Themes    []Theme   `yaml:"themes"`
	Logging   Logging   `yaml:"logging"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Predictor struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
	// Validate turns contract validation of bodies on or off. Defaults to on.
	Validate *bool `yaml:"validate"`
}

type View struct {
	Caption    string `yaml:"caption"`
	ChartTitle string `yaml:"chart_title"`
	Theme      string `yaml:"theme"`
	Variant    string `yaml:"variant"`

	// TemplatesDir holds page template overrides, searched before the
	// embedded templates.
	TemplatesDir string `yaml:"templates_dir"`
}

// Theme describes palette tokens ("palette.0", "palette.1", ...) and their
// per-variant overrides.
type Theme struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// Duration accepts Go duration strings in YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("config: duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:    Server{Addr: ":8080"},
		Predictor: Predictor{BaseURL: "http://localhost:5000", Timeout: Duration{10 * time.Second}},
		View:      View{Caption: ranking.DefaultCaption, ChartTitle: "Distribuição de diagnósticos"},
		Logging:   Logging{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values commands depend on.
func (c Config) Validate() error {
	var errs []error
	u, err := url.Parse(strings.TrimSpace(c.Predictor.BaseURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("config: predictor.base_url %q must be an absolute http(s) url", c.Predictor.BaseURL))
	}
	if c.Predictor.Timeout.Duration < 0 {
		errs = append(errs, errors.New("config: predictor.timeout must not be negative"))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	for i, th := range c.Themes {
		if strings.TrimSpace(th.Name) == "" {
			errs = append(errs, fmt.Errorf("config: themes[%d].name is required", i))
			continue
		}
		if _, err := palette.FromTokens(th.Manifest().TokensForVariant("")); err != nil {
			errs = append(errs, fmt.Errorf("config: theme %q: %w", th.Name, err))
		}
		for variant := range th.Variants {
			if _, err := palette.FromTokens(th.Manifest().TokensForVariant(variant)); err != nil {
				errs = append(errs, fmt.Errorf("config: theme %q variant %q: %w", th.Name, variant, err))
			}
		}
	}
	if err := c.View.validateTheme(c.Themes); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateTheme rejects a view.theme or view.variant that names nothing
// configured; the go-theme selector would otherwise fall back silently.
func (v View) validateTheme(themes []Theme) error {
	name := strings.TrimSpace(v.Theme)
	variant := strings.TrimSpace(v.Variant)
	if name == "" && variant == "" {
		return nil
	}
	if len(themes) == 0 {
		return fmt.Errorf("config: view selects theme %q/%q but no themes are configured", v.Theme, v.Variant)
	}
	selected := themes[0]
	if name != "" {
		found := false
		for _, th := range themes {
			if th.Name == name {
				selected, found = th, true
				break
			}
		}
		if !found {
			return fmt.Errorf("config: view.theme %q is not configured", v.Theme)
		}
	}
	if variant != "" {
		if _, ok := selected.Variants[variant]; !ok {
			return fmt.Errorf("config: view.variant %q is not defined by theme %q", v.Variant, selected.Name)
		}
	}
	return nil
}

// ValidateBodies reports whether contract validation is enabled.
func (p Predictor) ValidateBodies() bool {
	return p.Validate == nil || *p.Validate
}

// Manifest converts a theme entry into a go-theme manifest.
func (t Theme) Manifest() *theme.Manifest {
	version := t.Version
	if version == "" {
		version = "1.0.0"
	}
	manifest := &theme.Manifest{
		Name:    t.Name,
		Version: version,
		Tokens:  copyTokens(t.Tokens),
	}
	if len(t.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(t.Variants))
		for name, tokens := range t.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: copyTokens(tokens)}
		}
	}
	return manifest
}

// Palette resolves the configured view theme through a go-theme registry.
// An empty view.theme selects the first configured theme. Without themes the
// default palette is returned.
func (c Config) Palette() (palette.Palette, error) {
	if len(c.Themes) == 0 {
		return palette.Default(), nil
	}
	registry := theme.NewRegistry()
	for _, th := range c.Themes {
		if err := registry.Register(th.Manifest()); err != nil {
			return nil, fmt.Errorf("config: register theme %q: %w", th.Name, err)
		}
	}
	selector := theme.Selector{
		Registry:     registry,
		DefaultTheme: c.Themes[0].Name,
	}
	return palette.FromSelector(selector, c.View.Theme, c.View.Variant)
}

// ParseLevel maps the logging level names onto slog levels.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown logging level %q", level)
}

// Logger builds a text logger writing to stderr at the configured level.
func (c Config) Logger() *slog.Logger {
	level, _ := ParseLevel(c.Logging.Level)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func copyTokens(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
