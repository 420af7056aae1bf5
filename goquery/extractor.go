// Package goquery provides a goquery-based implementation of wrake.LinkExtractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/wrake"
)

// Ensure Extractor implements wrake.LinkExtractor at compile time.
var _ wrake.LinkExtractor = (*Extractor)(nil)

// linkSelector matches every element that can carry a crawlable reference.
// Non-stylesheet <link> elements are filtered out after selection so that
// rel values compare case-insensitively.
const linkSelector = "a[href], link[href], script[src]"

// Extractor reads anchor, stylesheet and script references from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks parses HTML and returns its raw link references in document order.
// Values are returned as written in the markup, without resolution or filtering.
func (e *Extractor) ExtractLinks(html string) ([]wrake.RawLink, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wrake.Errorf(wrake.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []wrake.RawLink
	doc.Find(linkSelector).Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "a":
			href, _ := sel.Attr("href")
			links = append(links, wrake.RawLink{Value: href, Kind: wrake.TagAnchor})
		case "link":
			if !isStylesheet(sel) {
				return
			}
			href, _ := sel.Attr("href")
			links = append(links, wrake.RawLink{Value: href, Kind: wrake.TagStylesheet})
		case "script":
			src, _ := sel.Attr("src")
			links = append(links, wrake.RawLink{Value: src, Kind: wrake.TagScript})
		}
	})

	return links, nil
}

// isStylesheet checks whether a <link> element's rel list contains "stylesheet".
func isStylesheet(sel *goquery.Selection) bool {
	rel, _ := sel.Attr("rel")
	for _, token := range strings.Fields(rel) {
		if strings.EqualFold(token, "stylesheet") {
			return true
		}
	}
	return false
}
