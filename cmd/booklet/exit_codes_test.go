package main

// Notes:
// - exitCodeFor: we test the sentinel errors of the booklet and config
//   packages plus wrapped errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions and that custom codes
//   stay below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", booklet.ErrBrowserConnect, ExitBrowser},
		{"page create", booklet.ErrPageCreate, ExitBrowser},
		{"page load", booklet.ErrPageLoad, ExitBrowser},
		{"pdf generation", booklet.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", booklet.ErrBrowserConnect), ExitBrowser},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"style not found", booklet.ErrStyleNotFound, ExitUsage},
		{"invalid asset path", booklet.ErrInvalidAssetPath, ExitUsage},
		{"math engine", booklet.ErrMathEngine, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading: %w", config.ErrConfigParse), ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// General
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"pool closed", booklet.ErrPoolClosed, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("standard exit codes must be 0, 1, 2")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom exit code %d outside (2, 126)", code)
		}
	}
}
