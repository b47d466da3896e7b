package assets

// Names of the built-in assets.
const (
	DefaultStyleName     = "default"
	BookletTemplateName  = "booklet"
	FragmentTemplateName = "fragment"
	LandingPageName      = "landing"
)

// kind describes one asset category on disk and in the embedded tree.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	pageKind     = kind{dir: "pages", ext: ".md", notFound: ErrPageNotFound}
)

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadPage loads a built-in Markdown page by name.
func LoadPage(name string) (string, error) {
	return defaultLoader.LoadPage(name)
}
