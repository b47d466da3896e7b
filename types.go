package booklet

import (
	"github.com/alnah/go-booklet/internal/mathtext"
)

// Generator is recorded in the properties of every PDF produced.
const Generator = "go-booklet"

// Choice is one answer option of a question.
type Choice struct {
	Text string `json:"text"`
}

// Question is a question and its answer options. Text fields may contain
// HTML entities and $...$ or $$...$$ math.
type Question struct {
	Text    string   `json:"text"`
	Options []Choice `json:"options"`
}

// BookletInput is the structured request. Subject and ChapterTitle are
// required; Questions must be present but may be empty.
type BookletInput struct {
	Subject      string     `json:"subject"`
	ChapterTitle string     `json:"chapterTitle"`
	Questions    []Question `json:"questions"`

	// HTMLOnly skips PDF generation.
	HTMLOnly bool `json:"-"`
}

// HTMLInput is the raw-HTML request. The fragment is placed verbatim in the
// document body.
type HTMLInput struct {
	HTML string `json:"html"`

	// HTMLOnly skips PDF generation.
	HTMLOnly bool `json:"-"`
}

// Result is one rendered document. PDF is nil for HTMLOnly requests.
// Pages is 0 when the page count could not be read.
type Result struct {
	HTML  []byte
	PDF   []byte
	Pages int
}

// BrowserConfig controls how headless Chrome is launched.
type BrowserConfig struct {
	// ExecutablePath selects the browser binary. Empty means auto-detect
	// and, failing that, let rod download a Chromium build.
	ExecutablePath string

	// Sandboxed keeps Chrome's sandbox enabled. Containers running as root
	// usually need it off.
	Sandboxed bool

	// ExtraArgs are additional command line switches, "--flag" or
	// "--flag=value".
	ExtraArgs []string
}

// MathRenderer renders LaTeX source to HTML markup.
type MathRenderer = mathtext.MathRenderer

// LoadKaTeX creates a MathRenderer that runs the KaTeX bundle at path in an
// embedded JavaScript engine. The renderer is safe to share across converters.
func LoadKaTeX(path string) (MathRenderer, error) {
	r, err := mathtext.LoadKaTeXRenderer(path)
	if err != nil {
		return nil, err
	}
	return r, nil
}
