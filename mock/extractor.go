package mock

import "github.com/fwojciec/wrake"

var _ wrake.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of wrake.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string) ([]wrake.RawLink, error)
}

func (e *LinkExtractor) ExtractLinks(html string) ([]wrake.RawLink, error) {
	return e.ExtractLinksFn(html)
}
