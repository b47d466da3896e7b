package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-booklet/internal/assets"
)

func newTestShell(t *testing.T) *FragmentShell {
	t.Helper()

	src, err := assets.LoadTemplate(assets.FragmentTemplateName)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewFragmentShell(src, PageLinks{Stylesheets: []string{"k.css"}})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFragmentShell_Wrap(t *testing.T) {
	t.Parallel()

	s := newTestShell(t)
	fragment := `<div class="q"><p>$x$ &amp; <b>y</b></p></div>`

	out, err := s.Wrap(context.Background(), fragment, "Quiz")
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}

	if !strings.Contains(out, fragment) {
		t.Error("fragment must be inserted verbatim")
	}
	doc := parse(t, out)
	if got := doc.Find("title").Text(); got != "Quiz" {
		t.Errorf("title = %q", got)
	}
	if doc.Find("body div.q").Length() != 1 {
		t.Error("fragment must be inside <body>")
	}
	if href, _ := doc.Find("head link").Attr("href"); href != "k.css" {
		t.Errorf("stylesheet href = %q", href)
	}
}

func TestFragmentShell_Wrap_DefaultTitleAndEmptyBody(t *testing.T) {
	t.Parallel()

	out, err := newTestShell(t).Wrap(context.Background(), "", "")
	if err != nil {
		t.Fatal(err)
	}
	if got := parse(t, out).Find("title").Text(); got != DefaultFragmentTitle {
		t.Errorf("title = %q, want %q", got, DefaultFragmentTitle)
	}
}

// ---------------------------------------------------------------------------
// CSS injection
// ---------------------------------------------------------------------------

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before head close",
			html: "<html><head><title>t</title></head><body></body></html>",
			css:  "p{}",
			want: "<html><head><title>t</title><style>p{}</style></head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style></HEAD></HTML>",
		},
		{
			name: "after body open when no head",
			html: `<body class="x"><p>a</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style><p>a</p></body>`,
		},
		{
			name: "prepend for bare fragment",
			html: "<p>a</p>",
			css:  "p{}",
			want: "<style>p{}</style><p>a</p>",
		},
		{
			name: "empty css is a no-op",
			html: "<p>a</p>",
			css:  "",
			want: "<p>a</p>",
		},
		{
			name: "non-ASCII title before head close",
			html: "<html><head><title>İstatistik İİİİİİİİ - Olasılık</title></head><body></body></html>",
			css:  "body{color:red}",
			want: "<html><head><title>İstatistik İİİİİİİİ - Olasılık</title><style>body{color:red}</style></head><body></body></html>",
		},
		{
			name: "invalid UTF-8 before head close",
			html: "<head><title>\xff\xfe\xfd</title></HEAD>",
			css:  "p{}",
			want: "<head><title>\xff\xfe\xfd</title><style>p{}</style></HEAD>",
		},
		{
			name: "non-ASCII text before body open",
			html: `<p>İİİİ</p><BODY class="x"><p>a</p></BODY>`,
			css:  "p{}",
			want: `<p>İİİİ</p><BODY class="x"><style>p{}</style><p>a</p></BODY>`,
		},
		{
			name: "style close sequence escaped",
			html: "<head></head>",
			css:  "</style><script>",
			want: `<head><style><\/style><script></style></head>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inj := &CSSInjection{}
			if got := inj.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS()\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

func TestCSSInjection_InjectCSS_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inj := &CSSInjection{}
	if got := inj.InjectCSS(ctx, "<head></head>", "p{}"); got != "<head></head>" {
		t.Errorf("expected unchanged HTML on canceled context, got %q", got)
	}
}

func TestIndexFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s, lower string
		want     int
	}{
		{"<head></head>", "</head>", 6},
		{"</HeAd>", "</head>", 0},
		{"İ</head>", "</head>", 2},
		{"</hea", "</head>", -1},
		{"", "</head>", -1},
	}

	for _, tt := range tests {
		if got := indexFold(tt.s, tt.lower); got != tt.want {
			t.Errorf("indexFold(%q, %q) = %d, want %d", tt.s, tt.lower, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Title extraction
// ---------------------------------------------------------------------------

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"title element", "<html><head><title> Unit  1 </title></head><body><h1>Other</h1></body></html>", "Unit 1"},
		{"first heading", "<div><h2>Section</h2><h1>Later</h1></div>", "Section"},
		{"empty title falls back to heading", "<title> </title><h3>Quiz</h3>", "Quiz"},
		{"nested markup in heading", "<h1>Quiz <em>one</em></h1>", "Quiz one"},
		{"no title", "<p>just text</p>", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExtractTitle(tt.html); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Markdown
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	c := NewGoldmarkConverter()
	md := "# Title\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```go\nfunc main() {}\n```\n"

	out, err := c.ToHTML(context.Background(), md)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	doc := parse(t, out)
	if got := doc.Find("h1").Text(); got != "Title" {
		t.Errorf("h1 = %q", got)
	}
	if doc.Find("table td").Length() != 2 {
		t.Error("expected GFM table")
	}
	if !strings.Contains(out, "<pre") {
		t.Error("expected highlighted code block")
	}
}

func TestGoldmarkConverter_ToHTML_Math(t *testing.T) {
	t.Parallel()

	out, err := NewGoldmarkConverter().ToHTML(context.Background(), "Euler: $e^{i\\pi}$\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<math") {
		t.Errorf("expected MathML, got %q", out)
	}
}

func TestGoldmarkConverter_ToHTML_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGoldmarkConverter().ToHTML(ctx, "# x"); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestLandingPage_Renders(t *testing.T) {
	t.Parallel()

	src, err := assets.LoadPage(assets.LandingPageName)
	if err != nil {
		t.Fatal(err)
	}
	out, err := NewGoldmarkConverter().ToHTML(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if ExtractTitle(out) != "go-booklet" {
		t.Errorf("landing title = %q", ExtractTitle(out))
	}
}
