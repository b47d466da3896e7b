package booklet

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-booklet/internal/fileutil"
	"github.com/alnah/go-booklet/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// A4 portrait in inches, 40 CSS pixels of margin on every side.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	cssPixelsPerIn = 96.0
	marginPixels   = 40.0
)

// requestIdleWindow is how long the network must stay quiet after load
// before printing, so CDN stylesheets and scripts have applied.
const requestIdleWindow = 500 * time.Millisecond

// pdfOptions holds options for PDF generation.
type pdfOptions struct {
	PaperWidth      float64 // inches
	PaperHeight     float64 // inches
	Margin          float64 // inches, all sides
	PrintBackground bool
}

// defaultPDFOptions returns A4 with 40px margins and backgrounds printed.
func defaultPDFOptions() *pdfOptions {
	return &pdfOptions{
		PaperWidth:      a4WidthInches,
		PaperHeight:     a4HeightInches,
		Margin:          marginPixels / cssPixelsPerIn,
		PrintBackground: true,
	}
}

func (o *pdfOptions) toProto() *proto.PagePrintToPDF {
	if o == nil {
		o = defaultPDFOptions()
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(o.PaperWidth),
		PaperHeight:     floatPtr(o.PaperHeight),
		MarginTop:       floatPtr(o.Margin),
		MarginBottom:    floatPtr(o.Margin),
		MarginLeft:      floatPtr(o.Margin),
		MarginRight:     floatPtr(o.Margin),
		PrintBackground: o.PrintBackground,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodRenderer implements pdfRenderer using go-rod. The browser is launched
// on first use and owned until Close.
type rodRenderer struct {
	mu       sync.Mutex
	cfg      BrowserConfig
	timeout  time.Duration
	launcher *launcher.Launcher
	browser  *rod.Browser
	pid      int
}

func newRodRenderer(cfg BrowserConfig, timeout time.Duration) *rodRenderer {
	return &rodRenderer{cfg: cfg, timeout: timeout}
}

// newLauncher translates cfg into launcher settings.
func newLauncher(cfg BrowserConfig) *launcher.Launcher {
	l := launcher.New().Headless(true)

	if cfg.ExecutablePath != "" {
		l = l.Bin(cfg.ExecutablePath)
	}

	if !cfg.Sandboxed {
		l = l.NoSandbox(true).Set("disable-setuid-sandbox")
	}

	for _, arg := range cfg.ExtraArgs {
		name, value, hasValue := parseSwitch(arg)
		if name == "" {
			continue
		}
		if hasValue {
			l = l.Set(flags.Flag(name), value)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}

	return l
}

// parseSwitch splits "--name=value" into its parts.
func parseSwitch(arg string) (name, value string, hasValue bool) {
	arg = strings.TrimLeft(strings.TrimSpace(arg), "-")
	name, value, hasValue = strings.Cut(arg, "=")
	return name, value, hasValue
}

// ensureBrowser lazily launches and connects to the browser.
// Caller must hold r.mu.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := newLauncher(r.cfg)
	u, err := l.Launch()
	if err != nil {
		process.KillTree(l.PID())
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillTree(l.PID())
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	r.pid = l.PID()
	return nil
}

// Close shuts the browser down and kills whatever is left of its process
// group. Safe to call more than once.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}

	err := r.browser.Close()
	process.KillTree(r.pid)
	r.launcher.Kill()
	r.launcher.Cleanup()

	r.browser = nil
	r.launcher = nil
	r.pid = 0
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
// It waits for the load event and then for the network to go idle.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	p := page.Context(ctx).Timeout(timeout)
	defer p.CancelTimeout()

	waitIdle := p.WaitRequestIdle(requestIdleWindow, nil, nil, nil)

	if err := p.Navigate("file://" + filePath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	waitIdle()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(opts.toProto())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(cfg BrowserConfig, timeout time.Duration) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(cfg, timeout),
	}
}

// ToPDF writes htmlContent to a temporary file and renders it. Loading
// from a file:// URL lets relative file references resolve.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
