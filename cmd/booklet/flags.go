package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-booklet/internal/config"
)

// serveFlags holds flags for the serve command.
type serveFlags struct {
	config      string
	addr        string
	workers     int
	timeout     string
	browserBin  string
	sandbox     bool
	browserArgs []string
	publicDir   string
	assets      string
	style       string
	logLevel    string
	logFormat   string

	// set records the flags given on the command line.
	set map[string]bool
}

func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :4000)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser instances (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-render timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium executable")
	fs.BoolVar(&f.sandbox, "sandbox", false, "keep the Chrome sandbox enabled")
	fs.StringArrayVar(&f.browserArgs, "browser-arg", nil, "extra Chrome switch (repeatable)")
	fs.StringVar(&f.publicDir, "public-dir", "", "static files directory")
	fs.StringVar(&f.assets, "assets", "", "custom styles/templates/pages directory")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path or content")
	fs.StringVar(&f.logLevel, "log-level", "", "debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "json or console")

	return fs
}

// parseServeFlags parses serve command flags. It returns flag.ErrHelp for
// -h and --help.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	f := &serveFlags{set: map[string]bool{}}
	fs := newServeFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// mergeFlags applies explicitly set flags on top of cfg.
func mergeFlags(f *serveFlags, cfg *config.Config) error {
	if f.set["addr"] {
		cfg.Server.Addr = f.addr
	}
	if f.set["workers"] {
		cfg.Render.Workers = f.workers
	}
	if f.set["timeout"] {
		if _, err := time.ParseDuration(f.timeout); err != nil {
			return fmt.Errorf("%w: --timeout %q: %v", ErrUsage, f.timeout, err)
		}
		cfg.Render.Timeout = f.timeout
	}
	if f.set["browser-bin"] {
		cfg.Browser.ExecutablePath = f.browserBin
	}
	if f.set["sandbox"] {
		cfg.Browser.Sandboxed = f.sandbox
	}
	if f.set["browser-arg"] {
		cfg.Browser.ExtraArgs = append(cfg.Browser.ExtraArgs, f.browserArgs...)
	}
	if f.set["public-dir"] {
		cfg.Server.PublicDir = f.publicDir
	}
	if f.set["assets"] {
		cfg.Render.AssetsPath = f.assets
	}
	if f.set["style"] {
		cfg.Render.Style = f.style
	}
	if f.set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if f.set["log-format"] {
		cfg.Log.Format = f.logFormat
	}
	return nil
}

// portAddr turns a bare port into a listen address.
func portAddr(port string) (string, error) {
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return "", fmt.Errorf("invalid port %q", port)
	}
	return ":" + port, nil
}
