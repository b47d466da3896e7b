package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/alnah/go-booklet/internal/assets"
	"github.com/alnah/go-booklet/internal/pipeline"
)

const landingTitle = "go-booklet"

// landingPage renders the Markdown landing page once, on first request. The
// result, error included, is kept for the life of the process.
type landingPage struct {
	loader   assets.AssetLoader
	markdown pipeline.MarkdownConverter

	once sync.Once
	html []byte
	err  error
}

func newLandingPage(assetsPath string) (*landingPage, error) {
	var loader assets.AssetLoader = assets.NewEmbeddedLoader()
	if assetsPath != "" {
		resolver, err := assets.NewAssetResolver(assetsPath)
		if err != nil {
			return nil, err
		}
		loader = resolver
	}
	return &landingPage{loader: loader, markdown: pipeline.NewGoldmarkConverter()}, nil
}

func (l *landingPage) render(ctx context.Context) ([]byte, error) {
	l.once.Do(func() {
		l.html, l.err = l.build(context.WithoutCancel(ctx))
	})
	return l.html, l.err
}

func (l *landingPage) build(ctx context.Context) ([]byte, error) {
	source, err := l.loader.LoadPage(assets.LandingPageName)
	if err != nil {
		return nil, err
	}
	body, err := l.markdown.ToHTML(ctx, source)
	if err != nil {
		return nil, err
	}

	tmpl, err := l.loader.LoadTemplate(assets.FragmentTemplateName)
	if err != nil {
		return nil, err
	}
	shell, err := pipeline.NewFragmentShell(tmpl, pipeline.PageLinks{})
	if err != nil {
		return nil, err
	}

	title := pipeline.ExtractTitle(body)
	if title == "" {
		title = landingTitle
	}
	page, err := shell.Wrap(ctx, body, title)
	if err != nil {
		return nil, fmt.Errorf("wrapping landing page: %w", err)
	}

	css, err := l.loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, err
	}
	page = (&pipeline.CSSInjection{}).InjectCSS(ctx, page, css)

	return []byte(page), nil
}
