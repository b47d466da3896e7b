package mathtext

import (
	"errors"
	"fmt"
	"html"

	"github.com/wyatt915/treeblood"
)

// Sentinel errors for math rendering.
var (
	ErrMathSyntax = errors.New("math rendering failed")
	ErrEngineInit = errors.New("math engine initialization failed")
)

// MathRenderer renders LaTeX math source to HTML markup.
type MathRenderer interface {
	RenderMath(raw string, block bool) (string, error)
}

// Compile-time interface checks.
var (
	_ MathRenderer = (*TreebloodRenderer)(nil)
	_ MathRenderer = (*KaTeXRenderer)(nil)
)

// TreebloodRenderer renders LaTeX to MathML in pure Go.
// Chrome renders MathML natively, so no stylesheet or script is required.
type TreebloodRenderer struct {
	macros map[string]string
}

// NewTreebloodRenderer creates a MathML renderer. macros maps a command name
// (without backslash) to its expansion and may be nil.
func NewTreebloodRenderer(macros map[string]string) *TreebloodRenderer {
	return &TreebloodRenderer{macros: macros}
}

// RenderMath converts raw to a <math> element, display style when block is
// true. Equal sources render to identical bytes.
func (r *TreebloodRenderer) RenderMath(raw string, block bool) (string, error) {
	var (
		out string
		err error
	)
	if block {
		out, err = treeblood.DisplayStyle(raw, r.macros)
	} else {
		out, err = treeblood.InlineStyle(raw, r.macros)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMathSyntax, err)
	}
	return canonicalAttrs(out), nil
}

// errorFragment echoes the offending source, delimiters included, in red.
func errorFragment(raw string, block bool) string {
	delim := "$"
	if block {
		delim = "$$"
	}
	return `<span class="math-error" style="color:red">` + html.EscapeString(delim+raw+delim) + `</span>`
}
