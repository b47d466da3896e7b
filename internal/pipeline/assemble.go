package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
)

// Sentinel errors for document assembly.
var (
	ErrMissingField   = errors.New("missing required field")
	ErrTemplateParse  = errors.New("template parsing failed")
	ErrTemplateRender = errors.New("template rendering failed")
)

// Fixed booklet wording.
const (
	BookletHeading = "Practice Questions"
	BookletFooter  = "End of Questions"
)

// TextTransformer turns question text into an HTML fragment.
type TextTransformer interface {
	Transform(text string) string
}

// PageLinks are the external stylesheets and scripts linked from a shell.
type PageLinks struct {
	Stylesheets []string
	Scripts     []string
}

// QuestionData is one question and its answer choices.
type QuestionData struct {
	Text    string
	Options []string
}

// BookletData is the structured input of a booklet. A nil Questions slice
// means the field was absent; an empty one is a booklet without questions.
type BookletData struct {
	Subject      string
	ChapterTitle string
	Questions    []QuestionData
}

// Validate reports the first missing field.
func (d *BookletData) Validate() error {
	switch {
	case d == nil:
		return fmt.Errorf("%w: booklet", ErrMissingField)
	case d.Subject == "":
		return fmt.Errorf("%w: subject", ErrMissingField)
	case d.ChapterTitle == "":
		return fmt.Errorf("%w: chapterTitle", ErrMissingField)
	case d.Questions == nil:
		return fmt.Errorf("%w: questions", ErrMissingField)
	}
	return nil
}

// Title is the document title, "{subject} - {chapterTitle}".
func (d *BookletData) Title() string {
	return d.Subject + " - " + d.ChapterTitle
}

// BookletAssembler defines the contract for building a booklet document.
type BookletAssembler interface {
	Assemble(ctx context.Context, data *BookletData) (string, error)
}

// BookletAssembly renders booklets with a parsed html/template.
// It is immutable after construction and safe for concurrent use.
type BookletAssembly struct {
	tmpl  *template.Template
	text  TextTransformer
	links PageLinks
}

// NewBookletAssembly parses tmplContent. Question and option text is passed
// through text before it is placed in the document.
func NewBookletAssembly(tmplContent string, text TextTransformer, links PageLinks) (*BookletAssembly, error) {
	tmpl, err := template.New("booklet").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return &BookletAssembly{tmpl: tmpl, text: text, links: links}, nil
}

type bookletView struct {
	Title       string
	Heading     string
	Footer      string
	Stylesheets []string
	Scripts     []string
	Questions   []questionView
}

type questionView struct {
	Number  int
	Text    template.HTML
	Options []optionView
}

type optionView struct {
	Letter string
	Text   template.HTML
}

// Assemble validates data and renders the booklet. Question i is labelled
// "Q{i+1}. " and its options "(A) ", "(B) ", and so on.
func (b *BookletAssembly) Assemble(ctx context.Context, data *BookletData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := data.Validate(); err != nil {
		return "", err
	}

	view := bookletView{
		Title:       data.Title(),
		Heading:     BookletHeading,
		Footer:      BookletFooter,
		Stylesheets: b.links.Stylesheets,
		Scripts:     b.links.Scripts,
		Questions:   make([]questionView, 0, len(data.Questions)),
	}

	for i, q := range data.Questions {
		qv := questionView{
			Number:  i + 1,
			Text:    template.HTML(b.text.Transform(q.Text)), // #nosec G203 -- transformer output is the document body
			Options: make([]optionView, 0, len(q.Options)),
		}
		for j, opt := range q.Options {
			qv.Options = append(qv.Options, optionView{
				Letter: OptionLetter(j),
				Text:   template.HTML(b.text.Transform(opt)), // #nosec G203 -- transformer output is the document body
			})
		}
		view.Questions = append(view.Questions, qv)

		if err := ctx.Err(); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// OptionLetter returns the label of the option at index j: A..Z, then
// AA, AB, ... (bijective base 26).
func OptionLetter(j int) string {
	if j < 0 {
		return ""
	}
	var buf [14]byte
	i := len(buf)
	for n := j + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}

// Compile-time interface check.
var _ BookletAssembler = (*BookletAssembly)(nil)
