package mathtext

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// canonicalAttrs rewrites every start tag in markup with its attributes,
// and the declarations of its style attribute, sorted by name. treeblood
// writes both from maps, so the same source would otherwise render to
// different bytes on each call. Markup that fails to tokenize is returned
// unchanged.
func canonicalAttrs(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var b strings.Builder
	b.Grow(len(markup))

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return markup
			}
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			writeStartTag(&b, z.Token())
		default:
			b.Write(z.Raw())
		}
	}
}

func writeStartTag(b *strings.Builder, tok html.Token) {
	attrs := slices.Clone(tok.Attr)
	slices.SortStableFunc(attrs, func(x, y html.Attribute) int {
		return cmp.Compare(x.Key, y.Key)
	})

	b.WriteByte('<')
	b.WriteString(tok.Data)
	for _, a := range attrs {
		val := a.Val
		if a.Key == "style" {
			val = sortDeclarations(val)
		}
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(val))
		b.WriteByte('"')
	}
	if tok.Type == html.SelfClosingTagToken {
		b.WriteByte('/')
	}
	b.WriteByte('>')
}

// sortDeclarations orders "k:v;k:v;" style declarations.
func sortDeclarations(style string) string {
	var decls []string
	for d := range strings.SplitSeq(style, ";") {
		if d = strings.TrimSpace(d); d != "" {
			decls = append(decls, d)
		}
	}
	if len(decls) == 0 {
		return style
	}
	slices.Sort(decls)
	return strings.Join(decls, ";") + ";"
}
