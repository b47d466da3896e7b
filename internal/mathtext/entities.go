package mathtext

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// namedEntities is the fixed set of named references DecodeEntities resolves.
// Anything else (&copy;, &hellip;, ...) is left as written.
var namedEntities = map[string]string{
	"nbsp": "\u00a0",
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"apos": "'",
}

// maxEntityLen bounds the lookahead for a terminating ';'.
// "&#x10FFFF;" is the longest reference we accept.
const maxEntityLen = 10

// DecodeEntities replaces numeric character references (&#NNN; and &#xHH;)
// and the named entities &nbsp; &lt; &gt; &amp; &quot; &apos; with the
// characters they stand for.
//
// Decoding is one left-to-right pass: the output of a reference is never
// scanned again, so "&amp;lt;" becomes "&lt;", not "<". References to
// invalid code points and unknown names are copied unchanged.
func DecodeEntities(text string) string {
	if !strings.Contains(text, "&") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if text[i] != '&' {
			next := strings.IndexByte(text[i:], '&')
			if next < 0 {
				b.WriteString(text[i:])
				break
			}
			b.WriteString(text[i : i+next])
			i += next
			continue
		}

		decoded, width := decodeReference(text[i:])
		if width == 0 {
			b.WriteByte('&')
			i++
			continue
		}
		b.WriteString(decoded)
		i += width
	}

	return b.String()
}

// decodeReference decodes the reference at the start of s, which begins
// with '&'. It returns the replacement and the number of bytes consumed,
// or width 0 when s does not start with a reference we resolve.
func decodeReference(s string) (string, int) {
	limit := min(len(s), maxEntityLen+1)
	end := strings.IndexByte(s[1:limit], ';')
	if end < 1 {
		return "", 0
	}
	body := s[1 : end+1]
	width := end + 2

	if body[0] != '#' {
		if v, ok := namedEntities[body]; ok {
			return v, width
		}
		return "", 0
	}

	r, ok := parseCodePoint(body[1:])
	if !ok {
		return "", 0
	}
	return string(r), width
}

// parseCodePoint parses the digits of a numeric reference ("65" or "x41").
func parseCodePoint(digits string) (rune, bool) {
	base := 10
	if digits != "" && (digits[0] == 'x' || digits[0] == 'X') {
		base = 16
		digits = digits[1:]
	}
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if !isDigit(c, base) {
			return 0, false
		}
	}

	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, false
	}
	return r, true
}

func isDigit(c rune, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
