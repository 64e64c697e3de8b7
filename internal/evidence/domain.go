package evidence

import (
	"net/url"
	"strings"
)

// NormalizeDomain maps a source URL to its canonical authority domain:
// lower-cased host with a leading "www." stripped. It returns the empty
// string on any parse failure and never panics. The normalized domain is
// the independence key for corroboration: two chunks count as independent
// evidence iff their normalized domains differ.
func NormalizeDomain(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return ""
	}
	return strings.TrimPrefix(host, "www.")
}
