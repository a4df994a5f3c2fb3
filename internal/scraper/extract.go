package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minContentLength is the point below which extracted text is considered
// navigation chrome rather than article body.
const minContentLength = 200

// contentSelectors are tried in order; the first one yielding substantial
// text wins. News CMSes disagree wildly on markup, hence the cascade.
var contentSelectors = []string{
	"article",
	"main",
	"[role=main]",
	".article-body",
	".post-content",
	".entry-content",
	"#content",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractText pulls readable article text out of raw HTML. Returns "" when
// nothing substantial could be found.
func ExtractText(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	for _, selector := range contentSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		text := collapse(sel.First().Text())
		if len(text) >= minContentLength {
			return text
		}
	}

	body := collapse(doc.Find("body").Text())
	if len(body) >= minContentLength {
		return body
	}
	return ""
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
