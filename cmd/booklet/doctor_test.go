package main

// Notes:
// - runDoctor: checks run against a config; Chrome lookup is stubbed via
//   lookPath where the test needs a deterministic result.
// - printDoctorResult: we test sections and status lines, not exact layout.
// - Tests that replace lookPath do not run in parallel.

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-booklet/internal/config"
)

// ---------------------------------------------------------------------------
// TestCheckChrome - Browser detection
// ---------------------------------------------------------------------------

func TestCheckChrome_NotFoundIsWarning(t *testing.T) {
	orig := lookPath
	lookPath = func() (string, bool) { return "", false }
	t.Cleanup(func() { lookPath = orig })

	r := &doctorResult{}
	checkChrome(r, config.BrowserConfig{})

	if r.Chrome.Found {
		t.Error("Found = true")
	}
	if len(r.Warnings) != 1 || len(r.Errors) != 0 {
		t.Errorf("warnings = %v, errors = %v", r.Warnings, r.Errors)
	}
}

func TestCheckChrome_ConfiguredPathMissing(t *testing.T) {
	t.Parallel()

	r := &doctorResult{}
	checkChrome(r, config.BrowserConfig{ExecutablePath: "/nonexistent/chrome", Sandboxed: true})

	if len(r.Errors) != 1 || !strings.Contains(r.Errors[0], "/nonexistent/chrome") {
		t.Errorf("errors = %v", r.Errors)
	}
	if !r.Chrome.Sandbox {
		t.Error("Sandbox must reflect the config")
	}
}

func TestCheckChrome_VersionProbeFailureIsWarning(t *testing.T) {
	t.Parallel()

	// A regular non-executable file: found, but --version cannot run.
	path := filepath.Join(t.TempDir(), "chrome")
	if err := os.WriteFile(path, []byte("not a binary"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := &doctorResult{}
	checkChrome(r, config.BrowserConfig{ExecutablePath: path})

	if !r.Chrome.Found || r.Chrome.Path != path {
		t.Errorf("chrome = %+v", r.Chrome)
	}
	if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "version") {
		t.Errorf("warnings = %v", r.Warnings)
	}
}

// ---------------------------------------------------------------------------
// TestCheckSystem - Temp dir and render inputs
// ---------------------------------------------------------------------------

func TestCheckSystem(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.PublicDir = t.TempDir()

		r := &doctorResult{}
		checkSystem(r, cfg)

		if !r.System.TempWritable {
			t.Error("TempWritable = false")
		}
		if r.System.MathEngine != config.MathEngineMathML {
			t.Errorf("MathEngine = %q", r.System.MathEngine)
		}
		if r.System.PublicDir != cfg.Server.PublicDir {
			t.Errorf("PublicDir = %q", r.System.PublicDir)
		}
		if len(r.Errors) != 0 || len(r.Warnings) != 0 {
			t.Errorf("errors = %v, warnings = %v", r.Errors, r.Warnings)
		}
	})

	t.Run("missing katex and public dir", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.PublicDir = "/nonexistent/public"
		cfg.Render.Math = config.MathConfig{Engine: config.MathEngineKaTeX, KaTeXScript: "/nonexistent/katex.js"}

		r := &doctorResult{}
		checkSystem(r, cfg)

		if len(r.Errors) != 1 || !strings.Contains(r.Errors[0], "KaTeX") {
			t.Errorf("errors = %v", r.Errors)
		}
		if len(r.Warnings) != 1 || !strings.Contains(r.Warnings[0], "Public directory") {
			t.Errorf("warnings = %v", r.Warnings)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output formats and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONErrors(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "browser:\n  executablePath: /nonexistent/chrome\n")

	var stdout bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	code := runDoctorCmd([]string{"--json", "--config", path}, env)
	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if result.Status != "errors" {
		t.Errorf("status = %q, want errors", result.Status)
	}
}

func TestRunDoctorCmd_BadFlag(t *testing.T) {
	t.Parallel()

	env := &Environment{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if code := runDoctorCmd([]string{"--frobnicate"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

func TestRunDoctorCmd_MissingConfig(t *testing.T) {
	t.Parallel()

	env := &Environment{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	if code := runDoctorCmd([]string{"--config", "/nonexistent/booklet.yaml"}, env); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result *doctorResult
		want   []string
	}{
		{
			name: "ready",
			result: &doctorResult{
				Status: "ready",
				Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120"},
				Env:    envInfo{OS: "linux", Arch: "amd64"},
				System: systemInfo{TempWritable: true, MathEngine: "mathml"},
			},
			want: []string{"[OK] Found at /usr/bin/chromium", "Chromium 120", "Sandbox: disabled", "Math engine: mathml", "Status: Ready to serve"},
		},
		{
			name: "errors",
			result: &doctorResult{
				Status:   "errors",
				Env:      envInfo{OS: "linux", Arch: "arm64", Container: true, ContainerHint: "/.dockerenv", CI: true},
				Warnings: []string{"w1"},
				Errors:   []string{"e1"},
			},
			want: []string{"[WARN] Not found", "Container: detected (/.dockerenv)", "CI: detected", "[WARN] w1", "[ERROR] e1", "Not ready"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, tt.result)

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
