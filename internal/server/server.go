// Package server exposes the booklet renderer over HTTP with gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/config"
	"github.com/alnah/go-booklet/internal/fileutil"
	"github.com/alnah/go-booklet/internal/hints"
)

// Renderer renders documents for the handlers. Implemented by
// *booklet.ConverterPool.
type Renderer interface {
	RenderBooklet(ctx context.Context, input booklet.BookletInput) (*booklet.Result, error)
	RenderHTML(ctx context.Context, input booklet.HTMLInput) (*booklet.Result, error)
	Size() int
}

var _ Renderer = (*booklet.ConverterPool)(nil)

const readHeaderTimeout = 10 * time.Second

// Server is the HTTP front end. Create with New.
type Server struct {
	cfg      *config.Config
	renderer Renderer
	logger   *zap.Logger
	engine   *gin.Engine
	landing  *landingPage
	index    string // public index.html, empty when absent
}

// New builds the router. cfg must be validated.
func New(cfg *config.Config, renderer Renderer, logger *zap.Logger) (*Server, error) {
	if renderer == nil {
		return nil, errors.New("server: renderer is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	landing, err := newLandingPage(cfg.Render.AssetsPath)
	if err != nil {
		return nil, fmt.Errorf("preparing landing page: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		renderer: renderer,
		logger:   logger,
		landing:  landing,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.logger), recovery(s.logger))
	r.Use(cors.New(corsConfig(s.cfg.Server.CORS.AllowOrigins)))

	s.mountPublic(r)

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)

	gen := r.Group("/", bodyLimit(s.cfg.Server.BodyLimit), rateLimit(s.cfg.Server.RateLimit))
	gen.POST("/generate-pdf", s.handleGeneratePDF)
	gen.POST("/generate-pdf-from-html", s.handleGeneratePDFFromHTML)
	gen.POST("/generate-html", s.handleGenerateHTML)

	return r
}

// mountPublic serves the public directory under /public. Its index.html,
// when present, replaces the built-in landing page.
func (s *Server) mountPublic(r *gin.Engine) {
	dir := s.cfg.Server.PublicDir
	if dir == "" {
		return
	}
	if !fileutil.DirExists(dir) {
		s.logger.Info("public directory not found, serving built-in landing page",
			zap.String("dir", dir), zap.String("hint", hints.ForPublicDir(dir)))
		return
	}

	r.Static("/public", dir)
	if index := filepath.Join(dir, "index.html"); fileutil.FileExists(index) {
		s.index = index
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", pagesHeader, requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = slices.Clone(origins)
	}
	return cfg
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening",
		zap.String("addr", s.cfg.Server.Addr),
		zap.Int("workers", s.renderer.Size()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.Duration("timeout", s.cfg.ShutdownTimeout()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
