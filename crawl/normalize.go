package crawl

import (
	"net/url"
	"strings"
)

// excludedSchemes lists reference prefixes that never lead to a crawlable page.
var excludedSchemes = []string{"mailto:", "tel:", "javascript:"}

// Normalizer turns raw link attribute values into absolute http or https URLs.
// It holds no state besides its options, and the zero value is ready to use.
type Normalizer struct {
	// ResolveBare resolves bare relative references such as "page.html"
	// against the base URL. Otherwise they are rejected as ambiguous.
	ResolveBare bool
}

// Normalize resolves raw against base, the URL of the page raw was found on.
// The bool result is false when raw is rejected: empty, fragment-only,
// an excluded or non-HTTP scheme, a bare reference (unless ResolveBare is set),
// or anything that does not parse as a URL.
//
// Protocol-relative references take base's scheme. Relative references are
// resolved following RFC 3986, including dot-segment removal. Absolute http
// and https URLs are returned as written, except that an empty path becomes "/".
func (n *Normalizer) Normalize(base *url.URL, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") || hasExcludedScheme(raw) {
		return "", false
	}
	if base == nil || !isHTTPScheme(base.Scheme) || base.Host == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(raw, "//"):
		u, err := url.Parse(base.Scheme + ":" + raw)
		if err != nil {
			return "", false
		}
		return absolute(u)
	case schemeOf(raw) != "":
		u, err := url.Parse(raw)
		if err != nil || !isHTTPScheme(u.Scheme) || u.Hostname() == "" {
			return "", false
		}
		if u.Path == "" && u.Opaque == "" {
			return absolute(u)
		}
		return raw, true
	case isRelativeRef(raw) || n.ResolveBare:
		ref, err := url.Parse(raw)
		if err != nil {
			return "", false
		}
		return absolute(base.ResolveReference(ref))
	}
	return "", false
}

// absolute validates a resolved URL and gives host-only URLs a root path.
func absolute(u *url.URL) (string, bool) {
	if !isHTTPScheme(u.Scheme) || u.Hostname() == "" {
		return "", false
	}
	if u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return u.String(), true
}

func hasExcludedScheme(raw string) bool {
	lower := strings.ToLower(raw)
	for _, prefix := range excludedSchemes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func isHTTPScheme(scheme string) bool {
	scheme = strings.ToLower(scheme)
	return scheme == "http" || scheme == "https"
}

// isRelativeRef reports whether raw is an explicit relative reference:
// an absolute path, a dot-relative path or a query.
func isRelativeRef(raw string) bool {
	if raw == "." || raw == ".." {
		return true
	}
	for _, prefix := range []string{"/", "./", "../", "?"} {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return false
}

// schemeOf returns the lowercased RFC 3986 scheme of raw, or "" if raw has none.
func schemeOf(raw string) string {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' || c == '+' || c == '-' || c == '.':
			if i == 0 {
				return ""
			}
		case c == ':':
			if i == 0 {
				return ""
			}
			return strings.ToLower(raw[:i])
		default:
			return ""
		}
	}
	return ""
}
