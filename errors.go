package booklet

import (
	"errors"

	"github.com/alnah/go-booklet/internal/mathtext"
	"github.com/alnah/go-booklet/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrMissingField marks a validation failure; the message names the field.
	ErrMissingField = pipeline.ErrMissingField

	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// ErrMathEngine marks a KaTeX bundle that could not be loaded.
	ErrMathEngine = mathtext.ErrEngineInit

	ErrPoolClosed       = errors.New("converter pool is closed")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrStyleNotFound    = errors.New("style not found")
)

// IsRenderError reports whether err came from the browser stage.
func IsRenderError(err error) bool {
	return errors.Is(err, ErrBrowserConnect) ||
		errors.Is(err, ErrPageCreate) ||
		errors.Is(err, ErrPageLoad) ||
		errors.Is(err, ErrPDFGeneration)
}
