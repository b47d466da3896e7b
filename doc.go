// Package booklet renders question booklets and HTML fragments to PDF using
// headless Chrome.
//
// # Quick Start
//
//	conv, err := booklet.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.RenderBooklet(ctx, booklet.BookletInput{
//	    Subject:      "Mathematics",
//	    ChapterTitle: "Quadratics",
//	    Questions: []booklet.Question{{
//	        Text:    "Solve $x^2 = 4$.",
//	        Options: []booklet.Choice{{Text: "$\\pm 2$"}, {Text: "$4$"}},
//	    }},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("booklet.pdf", result.PDF, 0644)
//
// # Rendering Pipeline
//
//  1. Question and option text: entity decoding, then $...$ and $$...$$
//     math rendered to MathML (or KaTeX markup with WithMathRenderer)
//  2. Booklet assembly from the booklet template, or the fragment shell
//     for raw HTML
//  3. Print stylesheet injection
//  4. PDF printing via headless Chrome (go-rod): A4, 40px margins
//  5. Page count and document properties via pdfcpu
//
// # Concurrency
//
// A Converter owns one browser and renders one document at a time.
// ConverterPool bounds the number of browsers and hands them out to
// concurrent callers:
//
//	pool := booklet.NewConverterPool(booklet.ResolvePoolSize(0))
//	defer pool.Close()
//	result, err := pool.RenderHTML(ctx, booklet.HTMLInput{HTML: fragment})
//
// # Errors
//
// Validation failures wrap ErrMissingField. Browser failures wrap
// ErrBrowserConnect, ErrPageCreate, ErrPageLoad or ErrPDFGeneration;
// IsRenderError groups them.
package booklet
