package wrake

// TagKind identifies the element a raw link was read from.
// It only determines which attribute holds the reference (href or src);
// normalization treats every kind the same way.
type TagKind int

// Element kinds that carry links.
const (
	TagAnchor TagKind = iota
	TagScript
	TagStylesheet
)

// String returns the element name for the kind.
func (k TagKind) String() string {
	switch k {
	case TagAnchor:
		return "a"
	case TagScript:
		return "script"
	case TagStylesheet:
		return "link"
	default:
		return "unknown"
	}
}

// RawLink is an attribute value read from markup before normalization.
type RawLink struct {
	Value string
	Kind  TagKind
}

// LinkExtractor reads link references out of HTML.
type LinkExtractor interface {
	// ExtractLinks returns the href of every anchor and stylesheet link and
	// the src of every script element, in document order. Values are
	// returned as written; resolving them is the caller's concern.
	ExtractLinks(html string) ([]RawLink, error)
}
