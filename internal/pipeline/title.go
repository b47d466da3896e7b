package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractTitle returns the text of the first <title>, or failing that the
// first h1, h2 or h3, with whitespace collapsed. It returns "" when the
// document has neither.
func ExtractTitle(htmlContent string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	if t := collapse(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return collapse(doc.Find("h1, h2, h3").First().Text())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
