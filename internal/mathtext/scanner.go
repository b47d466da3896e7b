package mathtext

// Span is a run of text identified as math markup.
type Span struct {
	Start int    // byte offset of the opening delimiter
	End   int    // byte offset just past the closing delimiter
	Raw   string // math source without delimiters
	Block bool   // $$...$$ when true, $...$ otherwise
}

// scanState is the state of the span scanner.
type scanState int

const (
	stateLiteral scanState = iota
	stateInBlockMath
	stateInInlineMath
)

func (s scanState) String() string {
	switch s {
	case stateLiteral:
		return "Literal"
	case stateInBlockMath:
		return "InBlockMath"
	case stateInInlineMath:
		return "InInlineMath"
	}
	return "unknown"
}

// ExtractSpans returns the math spans of text in order. Spans never overlap.
//
// Rules, applied left to right:
//   - "$$" opens block math, closed by the first following "$$" with
//     non-empty content in between. Block content may span lines, and a
//     lone "$" inside it is content: "$$a$ b$$" is one block "a$ b".
//   - A single "$" opens inline math, closed by the next "$" on the same line.
//   - An opener that is never closed (newline for inline, end of input for
//     either, or an immediately closed "$$$$") is literal text. Scanning
//     resumes right after it, so an unclosed "$$" is never re-read as two
//     inline openers.
func ExtractSpans(text string) []Span {
	var spans []Span

	state := stateLiteral
	open := 0

	for i := 0; ; {
		if i >= len(text) {
			switch state {
			case stateInBlockMath:
				state, i = stateLiteral, open+2
				continue
			case stateInInlineMath:
				state, i = stateLiteral, open+1
				continue
			}
			return spans
		}

		switch state {
		case stateLiteral:
			if text[i] != '$' {
				i++
				continue
			}
			open = i
			if isDoubleDollar(text, i) {
				state, i = stateInBlockMath, i+2
			} else {
				state, i = stateInInlineMath, i+1
			}

		case stateInBlockMath:
			if !isDoubleDollar(text, i) {
				i++
				continue
			}
			if i == open+2 {
				state, i = stateLiteral, open+2
				continue
			}
			spans = append(spans, Span{Start: open, End: i + 2, Raw: text[open+2 : i], Block: true})
			state, i = stateLiteral, i+2

		case stateInInlineMath:
			switch text[i] {
			case '\n':
				state, i = stateLiteral, open+1
			case '$':
				spans = append(spans, Span{Start: open, End: i + 1, Raw: text[open+1 : i]})
				state, i = stateLiteral, i+1
			default:
				i++
			}
		}
	}
}

func isDoubleDollar(text string, i int) bool {
	return i+1 < len(text) && text[i] == '$' && text[i+1] == '$'
}
