package search

import (
	"net/url"
	"strings"
	"time"
)

// RawResult is a single unvalidated search-engine hit for a company
// query. Read-only to the scoring pipeline.
type RawResult struct {
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet"`
	URL         string    `json:"url"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// Domain returns the registrable host of the result URL, lowercased and
// without a www prefix. Empty when the URL cannot be parsed.
func (r RawResult) Domain() string {
	return DomainOf(r.URL)
}

// DomainOf extracts the host from a URL string
func DomainOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// MatchesDomain reports whether host equals the pattern or is one of its
// subdomains ("emploi.ouest-france.fr" matches "ouest-france.fr").
func MatchesDomain(host, pattern string) bool {
	host = strings.ToLower(strings.TrimPrefix(host, "www."))
	pattern = strings.ToLower(strings.TrimPrefix(pattern, "www."))
	if host == "" || pattern == "" {
		return false
	}
	return host == pattern || strings.HasSuffix(host, "."+pattern)
}

// Dedupe drops results sharing a URL with an earlier one, keeping order
func Dedupe(results []RawResult) []RawResult {
	seen := make(map[string]bool, len(results))
	out := results[:0:0]
	for _, r := range results {
		key := strings.TrimSuffix(r.URL, "/")
		if key != "" && seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
