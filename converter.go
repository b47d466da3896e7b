package booklet

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/alnah/go-booklet/internal/assets"
	"github.com/alnah/go-booklet/internal/fileutil"
	"github.com/alnah/go-booklet/internal/mathtext"
	"github.com/alnah/go-booklet/internal/pdfmeta"
	"github.com/alnah/go-booklet/internal/pipeline"
)

// fragmentWrapper wraps raw HTML in a document shell.
type fragmentWrapper interface {
	Wrap(ctx context.Context, fragment, title string) (string, error)
}

// stamper post-processes rendered PDFs.
type stamper interface {
	Stamp(ctx context.Context, pdf []byte, props pdfmeta.Properties) ([]byte, int, error)
}

// Compile-time interface implementation checks.
var (
	_ pipeline.BookletAssembler = (*pipeline.BookletAssembly)(nil)
	_ pipeline.CSSInjector      = (*pipeline.CSSInjection)(nil)
	_ fragmentWrapper           = (*pipeline.FragmentShell)(nil)
	_ stamper                   = (*pdfmeta.Processor)(nil)
)

// Converter renders booklets and HTML fragments to PDF with one headless
// browser. Create with NewConverter and Close when done. A Converter renders
// one document at a time; use ConverterPool for parallel work.
type Converter struct {
	cfg          converterConfig
	assetLoader  assets.AssetLoader
	assembler    pipeline.BookletAssembler
	shell        fragmentWrapper
	cssInjector  pipeline.CSSInjector
	stamper      stamper
	pdfConverter pdfConverter
	logger       *zap.Logger
}

// NewConverter creates a Converter. The browser is not started until the
// first PDF is requested.
// Returns error if asset loading or template parsing fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout, styleInput: assets.DefaultStyleName},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	links := pipeline.PageLinks{Stylesheets: c.cfg.stylesheets, Scripts: c.cfg.scripts}

	if c.assembler == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.BookletTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading booklet template: %w", err)
		}
		c.assembler, err = pipeline.NewBookletAssembly(tmpl, c.newTransformer(), links)
		if err != nil {
			return nil, fmt.Errorf("initializing booklet assembly: %w", err)
		}
	}

	if c.shell == nil {
		tmpl, err := c.assetLoader.LoadTemplate(assets.FragmentTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading fragment template: %w", err)
		}
		c.shell, err = pipeline.NewFragmentShell(tmpl, links)
		if err != nil {
			return nil, fmt.Errorf("initializing fragment shell: %w", err)
		}
	}

	if c.stamper == nil {
		c.stamper = pdfmeta.NewProcessor()
	}

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.browser, c.cfg.timeout)
	}

	return c, nil
}

func (c *Converter) newTransformer() *mathtext.Transformer {
	var opts []mathtext.TransformerOption
	if c.cfg.mathRenderer != nil {
		opts = append(opts, mathtext.WithRenderer(c.cfg.mathRenderer))
	}
	if c.cfg.sanitize {
		opts = append(opts, mathtext.WithSanitizer(mathtext.UGCSanitizer()))
	}
	return mathtext.NewTransformer(opts...)
}

// RenderBooklet assembles a booklet from structured questions and renders it.
// Missing fields fail with ErrMissingField before the browser is involved.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) RenderBooklet(ctx context.Context, input BookletInput) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	htmlContent, err := c.assembler.Assemble(ctx, toBookletData(input))
	if err != nil {
		if errors.Is(err, ErrMissingField) {
			return nil, err
		}
		return nil, fmt.Errorf("assembling booklet: %w", err)
	}

	return c.finish(ctx, htmlContent, input.HTMLOnly, pdfmeta.Properties{
		Subject:   input.Subject,
		Chapter:   input.ChapterTitle,
		Generator: Generator,
	})
}

// RenderHTML wraps a raw HTML fragment in the document shell and renders it.
// The document title comes from the fragment's first <title> or heading.
func (c *Converter) RenderHTML(ctx context.Context, input HTMLInput) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	htmlContent, err := c.shell.Wrap(ctx, input.HTML, pipeline.ExtractTitle(input.HTML))
	if err != nil {
		return nil, fmt.Errorf("wrapping fragment: %w", err)
	}

	return c.finish(ctx, htmlContent, input.HTMLOnly, pdfmeta.Properties{Generator: Generator})
}

// finish injects the stylesheet, prints the document, and stamps the PDF.
// A stamping failure is logged and the unstamped PDF returned.
func (c *Converter) finish(ctx context.Context, htmlContent string, htmlOnly bool, props pdfmeta.Properties) (*Result, error) {
	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.cfg.resolvedStyle)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{HTML: []byte(htmlContent)}
	if htmlOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, defaultPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	stamped, pages, err := c.stamper.Stamp(ctx, pdfBytes, props)
	if err != nil {
		c.logger.Warn("pdf metadata skipped", zap.Error(err), zap.Int("pdf_bytes", len(pdfBytes)))
		res.PDF = pdfBytes
		return res, nil
	}

	res.PDF = stamped
	res.Pages = pages
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	// CSS first: comments and url() values contain slashes.
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- operator-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// toBookletData converts the public input to pipeline data. A nil
// Questions slice stays nil so the assembler can report it missing.
func toBookletData(in BookletInput) *pipeline.BookletData {
	data := &pipeline.BookletData{
		Subject:      in.Subject,
		ChapterTitle: in.ChapterTitle,
	}
	if in.Questions == nil {
		return data
	}

	data.Questions = make([]pipeline.QuestionData, len(in.Questions))
	for i, q := range in.Questions {
		opts := make([]string, len(q.Options))
		for j, o := range q.Options {
			opts[j] = o.Text
		}
		data.Questions[i] = pipeline.QuestionData{Text: q.Text, Options: opts}
	}
	return data
}
