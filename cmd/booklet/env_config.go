package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-booklet/internal/config"
)

// envConfig holds configuration from environment variables.
// Empty fields were not set.
type envConfig struct {
	ConfigPath string // BOOKLET_CONFIG

	Addr      string // BOOKLET_ADDR, else PORT
	PublicDir string // BOOKLET_PUBLIC_DIR
	CORS      []string

	BrowserBin string // BOOKLET_BROWSER_BIN, else PUPPETEER_EXECUTABLE_PATH
	Sandbox    *bool  // BOOKLET_BROWSER_SANDBOX

	Workers     int    // BOOKLET_WORKERS
	Timeout     string // BOOKLET_TIMEOUT
	AssetsPath  string // BOOKLET_ASSETS
	Style       string // BOOKLET_STYLE
	Sanitize    *bool  // BOOKLET_SANITIZE
	MathEngine  string // BOOKLET_MATH_ENGINE
	KaTeXScript string // BOOKLET_KATEX_SCRIPT

	LogLevel  string // BOOKLET_LOG_LEVEL
	LogFormat string // BOOKLET_LOG_FORMAT
}

const envPrefix = "BOOKLET_"

// knownEnvVars lists valid BOOKLET_* environment variables.
var knownEnvVars = map[string]bool{
	"BOOKLET_CONFIG":          true,
	"BOOKLET_ADDR":            true,
	"BOOKLET_PUBLIC_DIR":      true,
	"BOOKLET_CORS_ORIGINS":    true,
	"BOOKLET_BROWSER_BIN":     true,
	"BOOKLET_BROWSER_SANDBOX": true,
	"BOOKLET_WORKERS":         true,
	"BOOKLET_TIMEOUT":         true,
	"BOOKLET_ASSETS":          true,
	"BOOKLET_STYLE":           true,
	"BOOKLET_SANITIZE":        true,
	"BOOKLET_MATH_ENGINE":     true,
	"BOOKLET_KATEX_SCRIPT":    true,
	"BOOKLET_LOG_LEVEL":       true,
	"BOOKLET_LOG_FORMAT":      true,
}

// loadEnvConfig reads configuration from environment variables. Values that
// do not parse are reported to w and ignored.
func loadEnvConfig(w io.Writer) *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("BOOKLET_CONFIG"),
		Addr:        os.Getenv("BOOKLET_ADDR"),
		PublicDir:   os.Getenv("BOOKLET_PUBLIC_DIR"),
		BrowserBin:  os.Getenv("BOOKLET_BROWSER_BIN"),
		Timeout:     os.Getenv("BOOKLET_TIMEOUT"),
		AssetsPath:  os.Getenv("BOOKLET_ASSETS"),
		Style:       os.Getenv("BOOKLET_STYLE"),
		MathEngine:  os.Getenv("BOOKLET_MATH_ENGINE"),
		KaTeXScript: os.Getenv("BOOKLET_KATEX_SCRIPT"),
		LogLevel:    os.Getenv("BOOKLET_LOG_LEVEL"),
		LogFormat:   os.Getenv("BOOKLET_LOG_FORMAT"),
	}

	// Deployment compatibility: PORT and PUPPETEER_EXECUTABLE_PATH apply
	// when the BOOKLET_ variants are absent.
	if cfg.Addr == "" {
		if port := os.Getenv("PORT"); port != "" {
			addr, err := portAddr(port)
			if err != nil {
				fmt.Fprintf(w, "warning: ignoring PORT: %v\n", err)
			} else {
				cfg.Addr = addr
			}
		}
	}
	if cfg.BrowserBin == "" {
		cfg.BrowserBin = os.Getenv("PUPPETEER_EXECUTABLE_PATH")
	}

	if origins := os.Getenv("BOOKLET_CORS_ORIGINS"); origins != "" {
		for o := range strings.SplitSeq(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORS = append(cfg.CORS, o)
			}
		}
	}

	if workers := os.Getenv("BOOKLET_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n >= 0 {
			cfg.Workers = n
		} else {
			fmt.Fprintf(w, "warning: ignoring BOOKLET_WORKERS=%q (want a non-negative integer)\n", workers)
		}
	}

	cfg.Sandbox = envBool(w, "BOOKLET_BROWSER_SANDBOX")
	cfg.Sanitize = envBool(w, "BOOKLET_SANITIZE")

	return cfg
}

func envBool(w io.Writer, name string) *bool {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Fprintf(w, "warning: ignoring %s=%q (want true or false)\n", name, v)
		return nil
	}
	return &b
}

// warnUnknownEnvVars logs warnings for unrecognized BOOKLET_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment values to cfg.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.PublicDir != "" {
		cfg.Server.PublicDir = env.PublicDir
	}
	if len(env.CORS) > 0 {
		cfg.Server.CORS.AllowOrigins = env.CORS
	}

	if env.BrowserBin != "" {
		cfg.Browser.ExecutablePath = env.BrowserBin
	}
	if env.Sandbox != nil {
		cfg.Browser.Sandboxed = *env.Sandbox
	}

	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.Timeout != "" {
		cfg.Render.Timeout = env.Timeout
	}
	if env.AssetsPath != "" {
		cfg.Render.AssetsPath = env.AssetsPath
	}
	if env.Style != "" {
		cfg.Render.Style = env.Style
	}
	if env.Sanitize != nil {
		cfg.Render.Sanitize = *env.Sanitize
	}
	if env.MathEngine != "" {
		cfg.Render.Math.Engine = env.MathEngine
	}
	if env.KaTeXScript != "" {
		cfg.Render.Math.KaTeXScript = env.KaTeXScript
	}

	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
