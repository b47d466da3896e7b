package fileutil_test

// Notes:
// - The WriteString and Close error branches of WriteTempFile are not covered:
//   triggering disk write failures is platform-specific.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-booklet/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateExtension - Extension validation
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{name: "html is valid", extension: "html"},
		{name: "pdf is valid", extension: "pdf"},
		{name: "empty is rejected", extension: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "slash is rejected", extension: "../html", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash is rejected", extension: `a\b`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte is rejected", extension: "ht\x00ml", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.extension)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateExtension(%q) unexpected error: %v", tt.extension, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteTempFile - Temp file creation and cleanup
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "booklet document", content: "<html><body><p>Q1. Solve</p></body></html>"},
		{name: "empty content", content: ""},
		{name: "unicode content", content: "<p>Résumé, naïve, π ≈ 3.14</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, cleanup, err := fileutil.WriteTempFile(tt.content, "html")
			if err != nil {
				t.Fatalf("WriteTempFile() error = %v", err)
			}
			defer cleanup()

			if !strings.Contains(filepath.Base(path), fileutil.TempPrefix) {
				t.Errorf("path %q does not contain prefix %q", path, fileutil.TempPrefix)
			}
			if !strings.HasSuffix(path, ".html") {
				t.Errorf("path %q does not end with .html", path)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading temp file: %v", err)
			}
			if string(data) != tt.content {
				t.Errorf("content = %q, want %q", data, tt.content)
			}
		})
	}
}

func TestWriteTempFile_Cleanup(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("content", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	cleanup()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to be removed, stat err = %v", path, err)
	}
}

func TestWriteTempFile_InvalidExtension(t *testing.T) {
	t.Parallel()

	_, cleanup, err := fileutil.WriteTempFile("content", "")
	if !errors.Is(err, fileutil.ErrExtensionEmpty) {
		t.Fatalf("expected ErrExtensionEmpty, got %v", err)
	}
	if cleanup != nil {
		t.Error("expected nil cleanup on error")
	}
}

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	if err := os.WriteFile(file, []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if fileutil.FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
	if fileutil.FileExists(filepath.Join(dir, "missing.html")) {
		t.Error("FileExists(missing) = true, want false")
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("a"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestIsCSS / TestIsURL - Input classification
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"default", false},
		{"print-style", false},
		{"./print.css", true},
		{"/srv/styles/print.css", true},
		{`C:\styles\print.css`, true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsCSS(t *testing.T) {
	t.Parallel()

	if !fileutil.IsCSS("body { margin: 0 }") {
		t.Error("expected CSS content to be detected")
	}
	if fileutil.IsCSS("default") {
		t.Error("expected style name not to be CSS")
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://cdn.jsdelivr.net/npm/katex@0.16.8/dist/katex.min.css", true},
		{"http://localhost/a.css", true},
		{"/static/a.css", false},
		{"ftp://host/a.css", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsURL(tt.input); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
