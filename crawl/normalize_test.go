package crawl_test

import (
	"net/url"
	"testing"

	"github.com/fwojciec/wrake/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative references against the page URL", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com")
		n := &crawl.Normalizer{}
		for raw, expected := range map[string]string{
			"./hello":    "https://example.com/hello",
			"/hello":     "https://example.com/hello",
			"/hello.js":  "https://example.com/hello.js",
			"./hello.js": "https://example.com/hello.js",
			"?page=2":    "https://example.com/?page=2",
		} {
			got, ok := n.Normalize(base, raw)
			require.True(t, ok, raw)
			assert.Equal(t, expected, got, raw)
		}
	})

	t.Run("merges dot segments with the base path", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com/docs/guide/intro.html")
		n := &crawl.Normalizer{}
		for raw, expected := range map[string]string{
			"./setup":        "https://example.com/docs/guide/setup",
			"../api/":        "https://example.com/docs/api/",
			"../../../../up": "https://example.com/up",
			"/root":          "https://example.com/root",
			".":              "https://example.com/docs/guide/",
			"..":             "https://example.com/docs/",
		} {
			got, ok := n.Normalize(base, raw)
			require.True(t, ok, raw)
			assert.Equal(t, expected, got, raw)
		}
	})

	t.Run("prefixes protocol-relative references with the page scheme", func(t *testing.T) {
		t.Parallel()

		n := &crawl.Normalizer{}
		for raw, expected := range map[string]string{
			"//hello.com":            "https://hello.com/",
			"//hello.com/some/path":  "https://hello.com/some/path",
			"//hello.com/some/path/": "https://hello.com/some/path/",
		} {
			got, ok := n.Normalize(mustParse(t, "https://example.com"), raw)
			require.True(t, ok, raw)
			assert.Equal(t, expected, got, raw)
		}

		got, ok := n.Normalize(mustParse(t, "http://example.com/a/b"), "//cdn.example.net/x.js")
		require.True(t, ok)
		assert.Equal(t, "http://cdn.example.net/x.js", got)
	})

	t.Run("passes absolute http and https URLs through unchanged", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com")
		n := &crawl.Normalizer{}
		for _, raw := range []string{
			"https://other.com/a",
			"HTTPS://Other.com/Path?q=1#frag",
		} {
			got, ok := n.Normalize(base, raw)
			require.True(t, ok, raw)
			assert.Equal(t, raw, got)
		}
	})

	t.Run("gives absolute URLs with an empty path a root path", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com/docs/")
		n := &crawl.Normalizer{}
		for raw, expected := range map[string]string{
			"http://other.com":        "http://other.com/",
			"https://example.com":     "https://example.com/",
			"HTTPS://example.com":     "https://example.com/",
			"https://example.com?x=1": "https://example.com/?x=1",
		} {
			got, ok := n.Normalize(base, raw)
			require.True(t, ok, raw)
			assert.Equal(t, expected, got, raw)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, ok := (&crawl.Normalizer{}).Normalize(mustParse(t, "https://example.com"), "  /hello\n")
		require.True(t, ok)
		assert.Equal(t, "https://example.com/hello", got)
	})

	t.Run("rejects excluded schemes, fragments and blanks", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com")
		n := &crawl.Normalizer{}
		for _, raw := range []string{
			"#some-anchor",
			"#",
			"mailto:bob@example.com",
			"MAILTO:bob@example.com",
			"javascript:something",
			"javascript:x",
			"tel:1234567",
			"",
			"   \t",
		} {
			_, ok := n.Normalize(base, raw)
			assert.False(t, ok, "expected %q to be rejected", raw)
		}
	})

	t.Run("rejects non-HTTP schemes and unparseable URLs", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com")
		n := &crawl.Normalizer{}
		for _, raw := range []string{
			"ftp://files.example.com/a",
			"data:text/plain,hello",
			"localhost:8080/admin",
			"https://",
			"http://[::1",
			"//",
		} {
			_, ok := n.Normalize(base, raw)
			assert.False(t, ok, "expected %q to be rejected", raw)
		}
	})

	t.Run("rejects bare references by default", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com/docs/")
		n := &crawl.Normalizer{}
		for _, raw := range []string{"something", "page.html", "a/b"} {
			_, ok := n.Normalize(base, raw)
			assert.False(t, ok, "expected %q to be rejected", raw)
		}
	})

	t.Run("resolves bare references when enabled", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com/docs/index.html")
		n := &crawl.Normalizer{ResolveBare: true}

		got, ok := n.Normalize(base, "page.html")
		require.True(t, ok)
		assert.Equal(t, "https://example.com/docs/page.html", got)

		_, ok = n.Normalize(base, "mailto:bob@example.com")
		assert.False(t, ok, "excluded schemes stay rejected")
	})

	t.Run("rejects everything when the base is not an HTTP URL", func(t *testing.T) {
		t.Parallel()

		n := &crawl.Normalizer{}
		_, ok := n.Normalize(nil, "/hello")
		assert.False(t, ok)

		_, ok = n.Normalize(mustParse(t, "file:///tmp/index.html"), "/hello")
		assert.False(t, ok)
	})

	t.Run("every accepted result is an absolute HTTP URL", func(t *testing.T) {
		t.Parallel()

		base := mustParse(t, "https://example.com/a/b/")
		n := &crawl.Normalizer{ResolveBare: true}
		for _, raw := range []string{"./x", "/y", "//z.com", "https://w.com", "?q", "../../..", "bare"} {
			got, ok := n.Normalize(base, raw)
			require.True(t, ok, raw)
			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.True(t, u.IsAbs(), got)
			assert.Contains(t, []string{"http", "https"}, u.Scheme)
			assert.NotEmpty(t, u.Host, got)
		}
	})
}
