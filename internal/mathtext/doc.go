// Package mathtext turns question text that may carry HTML entities and
// embedded LaTeX into an HTML fragment ready for the booklet template.
//
// The transformation runs in three steps:
//
//  1. DecodeEntities resolves numeric references and a fixed set of named
//     entities in a single pass.
//  2. ExtractSpans scans the decoded text for $$block$$ and $inline$ math.
//  3. Transformer.Transform emits the text between spans verbatim and
//     replaces each span with markup from a MathRenderer.
//
// Math that fails to render never aborts the pipeline: it is replaced by a
// red error marker echoing the offending source.
package mathtext
