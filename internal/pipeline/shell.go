package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// DefaultFragmentTitle titles raw fragments that carry no heading.
const DefaultFragmentTitle = "Questions"

// FragmentShell wraps caller-supplied HTML in a complete document.
type FragmentShell struct {
	tmpl  *template.Template
	links PageLinks
}

// NewFragmentShell parses tmplContent, which receives the fragment as .Body.
func NewFragmentShell(tmplContent string, links PageLinks) (*FragmentShell, error) {
	tmpl, err := template.New("fragment").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &FragmentShell{tmpl: tmpl, links: links}, nil
}

type fragmentView struct {
	Title       string
	Stylesheets []string
	Scripts     []string
	Body        template.HTML
}

// Wrap inserts fragment verbatim into the shell body. An empty title falls
// back to DefaultFragmentTitle.
func (s *FragmentShell) Wrap(ctx context.Context, fragment, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultFragmentTitle
	}

	view := fragmentView{
		Title:       title,
		Stylesheets: s.links.Stylesheets,
		Scripts:     s.links.Scripts,
		Body:        template.HTML(fragment), // #nosec G203 -- raw HTML is the endpoint contract
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}
