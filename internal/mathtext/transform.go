package mathtext

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Transformer converts text with entities and embedded math to HTML.
// A Transformer is safe for concurrent use when its MathRenderer is.
type Transformer struct {
	renderer MathRenderer
	policy   *bluemonday.Policy
}

// TransformerOption configures a Transformer.
type TransformerOption func(*Transformer)

// WithRenderer sets the math renderer. The default renders MathML.
func WithRenderer(r MathRenderer) TransformerOption {
	return func(t *Transformer) {
		if r != nil {
			t.renderer = r
		}
	}
}

// WithSanitizer passes every literal segment through policy before it is
// emitted. Rendered math is not sanitized.
func WithSanitizer(policy *bluemonday.Policy) TransformerOption {
	return func(t *Transformer) {
		t.policy = policy
	}
}

// UGCSanitizer returns the policy used for untrusted question text:
// formatting tags stay, scripts, handlers and embeds go.
func UGCSanitizer() *bluemonday.Policy {
	return bluemonday.UGCPolicy()
}

// NewTransformer creates a Transformer. Without options it renders MathML
// and leaves literal text untouched.
func NewTransformer(opts ...TransformerOption) *Transformer {
	t := &Transformer{renderer: NewTreebloodRenderer(nil)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var defaultTransformer = NewTransformer()

// Transform converts text with the default Transformer.
func Transform(text string) string {
	return defaultTransformer.Transform(text)
}

// Transform decodes entities, then copies literal text verbatim and replaces
// every math span with rendered markup. Inline math is wrapped in
// <span class="math-inline">, block math in <div class="math-block">.
// Empty input yields an empty string.
func (t *Transformer) Transform(text string) string {
	if text == "" {
		return ""
	}

	decoded := DecodeEntities(text)
	spans := ExtractSpans(decoded)
	if len(spans) == 0 {
		return t.literal(decoded)
	}

	var b strings.Builder
	b.Grow(len(decoded) * 2)

	last := 0
	for _, s := range spans {
		b.WriteString(t.literal(decoded[last:s.Start]))
		if s.Block {
			b.WriteString(`<div class="math-block">`)
			b.WriteString(t.RenderMath(s.Raw, true))
			b.WriteString(`</div>`)
		} else {
			b.WriteString(`<span class="math-inline">`)
			b.WriteString(t.RenderMath(s.Raw, false))
			b.WriteString(`</span>`)
		}
		last = s.End
	}
	b.WriteString(t.literal(decoded[last:]))

	return b.String()
}

// RenderMath renders one math source. It never fails: renderer errors and
// panics produce a red error marker echoing the source.
func (t *Transformer) RenderMath(raw string, block bool) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = errorFragment(raw, block)
		}
	}()

	rendered, err := t.renderer.RenderMath(raw, block)
	if err != nil {
		return errorFragment(raw, block)
	}
	return rendered
}

func (t *Transformer) literal(s string) string {
	if t.policy == nil || s == "" {
		return s
	}
	return t.policy.Sanitize(s)
}
