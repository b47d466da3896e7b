// Package pdfmeta inspects and stamps rendered PDFs with pdfcpu.
package pdfmeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Sentinel errors for PDF post-processing.
var (
	ErrInvalidPDF = errors.New("invalid PDF")
	ErrStamp      = errors.New("PDF property stamping failed")
)

// Custom document information keys.
const (
	KeySubject   = "BookletSubject"
	KeyChapter   = "BookletChapter"
	KeyGenerator = "Generator"
)

// Properties are written to the PDF document information dictionary.
// Empty fields are skipped.
type Properties struct {
	Subject   string
	Chapter   string
	Generator string
}

func (p Properties) toMap() map[string]string {
	m := make(map[string]string, 3)
	if p.Subject != "" {
		m[KeySubject] = p.Subject
	}
	if p.Chapter != "" {
		m[KeyChapter] = p.Chapter
	}
	if p.Generator != "" {
		m[KeyGenerator] = p.Generator
	}
	return m
}

// Stamper defines the contract for PDF post-processing.
type Stamper interface {
	Stamp(ctx context.Context, pdf []byte, props Properties) ([]byte, int, error)
}

// Processor counts pages and adds document properties.
type Processor struct{}

// NewProcessor creates a Processor. pdfcpu's user config directory is
// disabled so the service never writes to $HOME.
func NewProcessor() *Processor {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Processor{}
}

var disableConfigDir sync.Once

// newConfiguration returns a fresh configuration per call: pdfcpu records
// the running command on it.
func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return conf
}

// PageCount returns the number of pages in pdf.
func (p *Processor) PageCount(pdf []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("%w: panic: %v", ErrInvalidPDF, r)
		}
	}()

	n, err = api.PageCount(bytes.NewReader(pdf), newConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return n, nil
}

// ReadProperties returns the custom document properties of pdf.
func (p *Processor) ReadProperties(pdf []byte) (props map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			props, err = nil, fmt.Errorf("%w: panic: %v", ErrInvalidPDF, r)
		}
	}()

	props, err = api.Properties(bytes.NewReader(pdf), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return props, nil
}

// Stamp returns pdf with props added and its page count. When props is
// empty the input is returned as is.
func (p *Processor) Stamp(ctx context.Context, pdf []byte, props Properties) (out []byte, pages int, err error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	pages, err = p.PageCount(pdf)
	if err != nil {
		return nil, 0, err
	}

	m := props.toMap()
	if len(m) == 0 {
		return pdf, pages, nil
	}

	defer func() {
		if r := recover(); r != nil {
			out, pages, err = nil, 0, fmt.Errorf("%w: panic: %v", ErrStamp, r)
		}
	}()

	var buf bytes.Buffer
	buf.Grow(len(pdf) + 512)
	if err := api.AddProperties(bytes.NewReader(pdf), &buf, m, newConfiguration()); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStamp, err)
	}
	return buf.Bytes(), pages, nil
}

// Compile-time interface check.
var _ Stamper = (*Processor)(nil)
