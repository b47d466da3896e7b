package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/config"
	"github.com/alnah/go-booklet/internal/hints"
	"github.com/alnah/go-booklet/internal/server"
)

// runServe resolves configuration and hands it to env.Serve.
// Priority: CLI flags > env vars > config file > defaults.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		printServeUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig(env.Stderr)

	cfg, err := loadConfig(flags.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS, in
	// which case the runtime default stays.
	undo, _ := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof))
	defer undo()

	return env.Serve(ctx, cfg, logger)
}

// loadConfig loads the file named by the flag, else by BOOKLET_CONFIG, else
// returns the defaults.
func loadConfig(flagValue, envValue string) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = envValue
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("%w\n%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	return cfg, err
}

// serve builds the converter pool and runs the HTTP server until ctx is done.
func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	opts, err := converterOptions(cfg, logger)
	if err != nil {
		return err
	}

	// Surface style and asset errors at start-up; no browser is launched.
	probe, err := booklet.NewConverter(opts...)
	if err != nil {
		return err
	}
	_ = probe.Close()

	pool := booklet.NewConverterPool(booklet.ResolvePoolSize(cfg.Render.Workers), opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converter pool", zap.Error(err))
		}
	}()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, err := server.New(cfg, pool, logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// converterOptions translates cfg into converter options. The KaTeX bundle
// is loaded once and shared by every converter.
func converterOptions(cfg *config.Config, logger *zap.Logger) ([]booklet.Option, error) {
	opts := []booklet.Option{
		booklet.WithTimeout(cfg.RenderTimeout()),
		booklet.WithBrowser(booklet.BrowserConfig{
			ExecutablePath: cfg.Browser.ExecutablePath,
			Sandboxed:      cfg.Browser.Sandboxed,
			ExtraArgs:      cfg.Browser.ExtraArgs,
		}),
		booklet.WithStyle(cfg.Render.Style),
		booklet.WithStylesheets(cfg.Render.Stylesheets...),
		booklet.WithScripts(cfg.Render.Scripts...),
		booklet.WithSanitizer(cfg.Render.Sanitize),
		booklet.WithLogger(logger),
	}

	if cfg.Render.AssetsPath != "" {
		opts = append(opts, booklet.WithAssetPath(cfg.Render.AssetsPath))
	}

	if cfg.Render.Math.Engine == config.MathEngineKaTeX {
		renderer, err := booklet.LoadKaTeX(cfg.Render.Math.KaTeXScript)
		if err != nil {
			return nil, fmt.Errorf("loading KaTeX from %s: %w", cfg.Render.Math.KaTeXScript, err)
		}
		opts = append(opts, booklet.WithMathRenderer(renderer))
	}

	return opts, nil
}
