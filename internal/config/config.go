// Package config loads the service configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-booklet/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// AppName names the per-user config directory.
const AppName = "go-booklet"

// Limits applied by Validate.
const (
	MaxWorkers      = 32
	MaxBodyLimit    = 100 << 20
	MaxPathLength   = 4096
	MaxArgLength    = 1024
	MaxExtraArgs    = 64
	MaxLinkLength   = 2048
	MaxLinks        = 16
	MaxAddrLength   = 256
	DefaultBodySize = 10 << 20
)

// Math engines.
const (
	MathEngineMathML = "mathml"
	MathEngineKaTeX  = "katex"
)

// Log formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Config holds all configuration for the booklet service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Render  RenderConfig  `yaml:"render"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr            string          `yaml:"addr"`
	PublicDir       string          `yaml:"publicDir"`       // served under /public, index.html at /
	BodyLimit       int64           `yaml:"bodyLimit"`       // bytes
	ShutdownTimeout string          `yaml:"shutdownTimeout"` // Go duration, e.g. "10s"
	CORS            CORSConfig      `yaml:"cors"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// CORSConfig lists allowed origins. "*" allows any origin.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// RateLimitConfig throttles generation endpoints. Zero disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// BrowserConfig defines how headless Chrome is launched.
type BrowserConfig struct {
	ExecutablePath string   `yaml:"executablePath"` // empty = auto-detect
	Sandboxed      bool     `yaml:"sandboxed"`
	ExtraArgs      []string `yaml:"extraArgs"` // "--flag" or "--flag=value"
}

// RenderConfig defines document rendering.
type RenderConfig struct {
	Timeout     string     `yaml:"timeout"` // Go duration per render
	Workers     int        `yaml:"workers"` // 0 = derive from GOMAXPROCS
	AssetsPath  string     `yaml:"assetsPath"`
	Style       string     `yaml:"style"`
	Stylesheets []string   `yaml:"stylesheets"`
	Scripts     []string   `yaml:"scripts"`
	Sanitize    bool       `yaml:"sanitize"`
	Math        MathConfig `yaml:"math"`
}

// MathConfig selects the math renderer.
type MathConfig struct {
	Engine      string `yaml:"engine"`      // "mathml" or "katex"
	KaTeXScript string `yaml:"katexScript"` // path to katex.min.js, katex engine only
}

// LogConfig defines logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Links loaded by both document shells by default, matching the markup the
// service has always produced.
var (
	DefaultStylesheets = []string{"https://cdn.jsdelivr.net/npm/katex@0.16.8/dist/katex.min.css"}
	DefaultScripts     = []string{"https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4"}
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":4000",
			PublicDir:       "public",
			BodyLimit:       DefaultBodySize,
			ShutdownTimeout: "10s",
			CORS:            CORSConfig{AllowOrigins: []string{"*"}},
		},
		Browser: BrowserConfig{Sandboxed: false},
		Render: RenderConfig{
			Timeout:     "30s",
			Style:       "default",
			Stylesheets: slices.Clone(DefaultStylesheets),
			Scripts:     slices.Clone(DefaultScripts),
			Math:        MathConfig{Engine: MathEngineMathML},
		},
		Log: LogConfig{Level: "info", Format: LogFormatJSON},
	}
}

// RenderTimeout returns Render.Timeout parsed. Call Validate first.
func (c *Config) RenderTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Render.Timeout)
	return d
}

// ShutdownTimeout returns Server.ShutdownTimeout parsed. Call Validate first.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

// Validate checks value ranges and field lengths. Called by LoadConfig, and
// again by the CLI after environment and flag overrides.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr: required", ErrInvalidConfig)
	}
	if err := validateFieldLength("server.publicDir", c.Server.PublicDir, MaxPathLength); err != nil {
		return err
	}
	if c.Server.BodyLimit <= 0 || c.Server.BodyLimit > MaxBodyLimit {
		return fmt.Errorf("%w: server.bodyLimit: must be between 1 and %d, got %d", ErrInvalidConfig, MaxBodyLimit, c.Server.BodyLimit)
	}
	if err := validateDuration("server.shutdownTimeout", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 || c.Server.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: server.rateLimit: values must not be negative", ErrInvalidConfig)
	}

	if err := validateFieldLength("browser.executablePath", c.Browser.ExecutablePath, MaxPathLength); err != nil {
		return err
	}
	if len(c.Browser.ExtraArgs) > MaxExtraArgs {
		return fmt.Errorf("%w: browser.extraArgs: at most %d entries", ErrInvalidConfig, MaxExtraArgs)
	}
	for i, arg := range c.Browser.ExtraArgs {
		if err := validateFieldLength(fmt.Sprintf("browser.extraArgs[%d]", i), arg, MaxArgLength); err != nil {
			return err
		}
		if !strings.HasPrefix(arg, "--") || len(arg) < 3 {
			return fmt.Errorf("%w: browser.extraArgs[%d]: %q must look like --flag or --flag=value", ErrInvalidConfig, i, arg)
		}
	}

	if err := validateDuration("render.timeout", c.Render.Timeout); err != nil {
		return err
	}
	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers: must be between 0 and %d, got %d", ErrInvalidConfig, MaxWorkers, c.Render.Workers)
	}
	if err := validateFieldLength("render.assetsPath", c.Render.AssetsPath, MaxPathLength); err != nil {
		return err
	}
	if err := validateLinks("render.stylesheets", c.Render.Stylesheets); err != nil {
		return err
	}
	if err := validateLinks("render.scripts", c.Render.Scripts); err != nil {
		return err
	}
	switch c.Render.Math.Engine {
	case "", MathEngineMathML:
	case MathEngineKaTeX:
		if c.Render.Math.KaTeXScript == "" {
			return fmt.Errorf("%w: render.math.katexScript: required for the katex engine", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: render.math.engine: invalid value %q (must be mathml or katex)", ErrInvalidConfig, c.Render.Math.Engine)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("%w: log.format: invalid value %q (must be json or console)", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}

func validateDuration(field, value string) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidConfig, field, value)
	}
	return nil
}

func validateLinks(field string, links []string) error {
	if len(links) > MaxLinks {
		return fmt.Errorf("%w: %s: at most %d entries", ErrInvalidConfig, field, MaxLinks)
	}
	for i, link := range links {
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", field, i), link, MaxLinkLength); err != nil {
			return err
		}
		// Documents print from a temp file, so only absolute URLs resolve.
		if !fileutil.IsURL(link) {
			return fmt.Errorf("%w: %s[%d]: %q must be an http(s) URL", ErrInvalidConfig, field, i, link)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name. Values
// absent from the file keep their defaults.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is operator-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths lists the files tried for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
