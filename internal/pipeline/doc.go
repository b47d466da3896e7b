// Package pipeline builds the HTML documents handed to the PDF renderer.
//
// It covers the stages between request data and a printable page:
//   - booklet assembly from subject, chapter and question records
//   - the shell wrapped around raw HTML fragments
//   - print stylesheet injection
//   - document title extraction
//   - Markdown pages rendered with Goldmark
//
// Math inside question text is delegated to a TextTransformer, normally
// a mathtext.Transformer. PDF generation lives in the root booklet package.
package pipeline
