package crawl

import (
	"net"
	"net/url"
	"strings"

	"github.com/fwojciec/wrake"
	"golang.org/x/net/publicsuffix"
)

// SameOrigin reports whether a and b have the same host.
// Userinfo and port are ignored and hosts compare case-insensitively.
// It returns false if either host cannot be determined.
func SameOrigin(a, b string) bool {
	ha, ok := hostname(a)
	if !ok {
		return false
	}
	hb, ok := hostname(b)
	if !ok {
		return false
	}
	return strings.EqualFold(ha, hb)
}

// SameSite reports whether a and b share a registrable domain
// (eTLD+1 per the public suffix list), so that www.example.com and
// docs.example.com match. IP addresses and hosts without a registrable
// domain only match themselves.
func SameSite(a, b string) bool {
	ha, ok := hostname(a)
	if !ok {
		return false
	}
	hb, ok := hostname(b)
	if !ok {
		return false
	}
	if strings.EqualFold(ha, hb) {
		return true
	}
	sa, ok := registrableDomain(ha)
	if !ok {
		return false
	}
	sb, ok := registrableDomain(hb)
	if !ok {
		return false
	}
	return sa == sb
}

// InScope reports whether link may be crawled from a crawl started at start.
func InScope(scope wrake.Scope, start, link string) bool {
	if scope == wrake.ScopeSite {
		return SameSite(start, link)
	}
	return SameOrigin(start, link)
}

func hostname(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	h := u.Hostname()
	return h, h != ""
}

func registrableDomain(host string) (string, bool) {
	if net.ParseIP(host) != nil {
		return "", false
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(strings.TrimSuffix(host, ".")))
	if err != nil {
		return "", false
	}
	return domain, true
}
