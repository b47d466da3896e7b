package booklet

import (
	"slices"
	"time"

	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	browser       BrowserConfig
	assetPath     string
	styleInput    string
	resolvedStyle string
	stylesheets   []string
	scripts       []string
	mathRenderer  MathRenderer
	sanitize      bool
}

// defaultTimeout bounds one page load and print.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("booklet: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithBrowser sets how the browser is launched.
func WithBrowser(cfg BrowserConfig) Option {
	return func(c *Converter) {
		cfg.ExtraArgs = slices.Clone(cfg.ExtraArgs)
		c.cfg.browser = cfg
	}
}

// WithAssetPath loads styles and templates from dir, falling back to the
// built-in assets for anything dir does not provide.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithStyle selects the print stylesheet: a style name, a path to a .css
// file, or CSS content. The default is the built-in "default" style.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithStylesheets sets the stylesheet URLs linked from every document.
func WithStylesheets(urls ...string) Option {
	return func(c *Converter) {
		c.cfg.stylesheets = slices.Clone(urls)
	}
}

// WithScripts sets the script URLs loaded by every document.
func WithScripts(urls ...string) Option {
	return func(c *Converter) {
		c.cfg.scripts = slices.Clone(urls)
	}
}

// WithMathRenderer replaces the default MathML renderer.
func WithMathRenderer(r MathRenderer) Option {
	return func(c *Converter) {
		c.cfg.mathRenderer = r
	}
}

// WithSanitizer runs literal question text through a user-content HTML
// policy. Rendered math is left alone.
func WithSanitizer(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.sanitize = enabled
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
