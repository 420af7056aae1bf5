package wrake

// SeenSet records every URL a crawl has admitted.
// Implementations must be safe for concurrent use.
type SeenSet interface {
	// Insert adds url to the set and reports whether it was absent.
	// The test and the insertion happen atomically, so among concurrent
	// callers inserting the same URL exactly one observes true.
	Insert(url string) bool

	// Len returns the number of URLs in the set. Approximate
	// implementations may return an estimate.
	Len() int
}
