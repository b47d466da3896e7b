package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/hints"
)

const (
	pagesHeader = "X-PDF-Pages"

	bookletFilename  = "booklet.pdf"
	fragmentFilename = "questions.pdf"

	renderFailedMessage = "Failed to generate PDF"
)

// htmlRequest is the /generate-pdf-from-html body, JSON or url-encoded.
type htmlRequest struct {
	HTML string `json:"html" form:"html"`
}

func (s *Server) handleGeneratePDF(c *gin.Context) {
	var input booklet.BookletInput
	if !s.bind(c, &input, c.ShouldBindJSON) {
		return
	}

	res, err := s.renderer.RenderBooklet(c.Request.Context(), input)
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.writePDF(c, res, bookletFilename)
}

func (s *Server) handleGeneratePDFFromHTML(c *gin.Context) {
	var req htmlRequest
	if !s.bind(c, &req, c.ShouldBind) {
		return
	}

	res, err := s.renderer.RenderHTML(c.Request.Context(), booklet.HTMLInput{HTML: req.HTML})
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.writePDF(c, res, fragmentFilename)
}

func (s *Server) handleGenerateHTML(c *gin.Context) {
	var input booklet.BookletInput
	if !s.bind(c, &input, c.ShouldBindJSON) {
		return
	}
	input.HTMLOnly = true

	res, err := s.renderer.RenderBooklet(c.Request.Context(), input)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", res.HTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"workers": s.renderer.Size(),
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	if s.index != "" {
		c.File(s.index)
		return
	}

	page, err := s.landing.render(c.Request.Context())
	if err != nil {
		s.logger.Error("landing page failed", zap.String("request_id", requestIDFrom(c)), zap.Error(err))
		c.String(http.StatusInternalServerError, "landing page unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// bind decodes the request body with fn and answers 400 or 413 on failure.
func (s *Server) bind(c *gin.Context, dst any, fn func(any) error) bool {
	err := fn(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
	return false
}

// renderError maps a render failure to its response. Validation errors are
// the client's; everything else is logged with a hint.
func (s *Server) renderError(c *gin.Context, err error) {
	if errors.Is(err, booklet.ErrMissingField) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := []zap.Field{
		zap.String("endpoint", c.FullPath()),
		zap.String("request_id", requestIDFrom(c)),
		zap.Error(err),
	}
	if hint := s.hintFor(err); hint != "" {
		fields = append(fields, zap.String("hint", hint))
	}
	s.logger.Error("pdf generation failed", fields...)

	c.String(http.StatusInternalServerError, renderFailedMessage)
}

func (s *Server) hintFor(err error) string {
	switch {
	case errors.Is(err, booklet.ErrBrowserConnect):
		return hints.ForBrowserConnect(s.cfg.Browser.Sandboxed, s.cfg.Browser.ExecutablePath)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, booklet.ErrPageLoad):
		return hints.ForTimeout()
	default:
		return ""
	}
}

func (s *Server) writePDF(c *gin.Context, res *booklet.Result, filename string) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if res.Pages > 0 {
		c.Header(pagesHeader, strconv.Itoa(res.Pages))
	}
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}
