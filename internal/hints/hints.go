// Package hints provides actionable hints for common failure scenarios.
// Hints are formatted as "hint: <text>" so they can be logged as a field or
// appended to CLI error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-booklet/internal/fileutil"
)

// IsInContainer detects Docker-like containers via /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a common CI environment variable is set.
func InCI() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a browser that failed to launch.
// sandboxed and executablePath are the renderer's browser settings.
func ForBrowserConnect(sandboxed bool, executablePath string) string {
	var hints []string

	if sandboxed && (InCI() || IsInContainer()) {
		hints = append(hints, "set browser.sandboxed: false (or BOOKLET_BROWSER_SANDBOX=false) in Docker/CI")
	}

	if executablePath == "" {
		hints = append(hints, "set browser.executablePath (or BOOKLET_BROWSER_BIN) to use an installed Chrome")
	} else if !fileutil.FileExists(executablePath) {
		hints = append(hints, "no browser binary at "+executablePath)
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the render timeout.
func ForTimeout() string {
	return format("large booklets or slow CDNs may need a longer render.timeout (--timeout)")
}

// ForConfigNotFound suggests --config and a user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/booklet.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-booklet") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForPublicDir returns a hint for a public directory that cannot be served.
func ForPublicDir(dir string) string {
	return format("server.publicDir " + dir + " must be an existing directory; leave empty for the built-in landing page")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
