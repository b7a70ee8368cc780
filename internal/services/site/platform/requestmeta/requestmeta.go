// Package requestmeta resolves request scheme and origin facts.
package requestmeta

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// SchemePolicy controls how request metadata resolves scheme and origin.
//
// TrustForwardedProto must be explicitly enabled for X-Forwarded-Proto to be
// considered. PublicOrigins lists additional origins (scheme://host[:port])
// accepted as same-origin, typically the configured public site URL when the
// site runs behind a proxy that rewrites Host.
type SchemePolicy struct {
	TrustForwardedProto bool
	PublicOrigins       []string
}

// origin is a normalized scheme/host/port triple.
type origin struct {
	scheme string
	host   string
	port   string
}

func (o origin) valid() bool {
	return o.scheme != "" && o.host != "" && o.port != ""
}

// Scheme returns "https" or "http" for the request under policy.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		switch forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded {
		case "http", "https":
			return forwarded
		}
	}
	if r.TLS != nil {
		return "https"
	}
	if r.URL != nil && strings.EqualFold(r.URL.Scheme, "https") {
		return "https"
	}
	return "http"
}

// IsHTTPS reports whether a request should be treated as HTTPS.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// HasSameOriginProof reports whether Origin or Referer proves the request
// originated from this site.
func HasSameOriginProof(r *http.Request, policy SchemePolicy) bool {
	if r == nil {
		return false
	}
	claimed := strings.TrimSpace(r.Header.Get("Origin"))
	if claimed == "" || claimed == "null" {
		claimed = strings.TrimSpace(r.Header.Get("Referer"))
	}
	if claimed == "" {
		return false
	}
	source, ok := parseOrigin(claimed)
	if !ok {
		return false
	}

	scheme := Scheme(r, policy)
	host, port := splitHost(r.Host)
	if port == "" {
		port = defaultPort(scheme)
	}
	if self := (origin{scheme: scheme, host: host, port: port}); self.valid() && self == source {
		return true
	}
	for _, raw := range policy.PublicOrigins {
		if allowed, ok := parseOrigin(raw); ok && allowed == source {
			return true
		}
	}
	return false
}

func parseOrigin(raw string) (origin, bool) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return origin{}, false
	}
	o := origin{
		scheme: strings.ToLower(parsed.Scheme),
		host:   strings.ToLower(parsed.Hostname()),
		port:   parsed.Port(),
	}
	if o.port == "" {
		o.port = defaultPort(o.scheme)
	}
	return o, o.valid()
}

func splitHost(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	host, port, err := net.SplitHostPort(raw)
	if err != nil {
		return strings.ToLower(strings.Trim(raw, "[]")), ""
	}
	return strings.ToLower(host), port
}

func defaultPort(scheme string) string {
	switch scheme {
	case "https":
		return "443"
	case "http":
		return "80"
	default:
		return ""
	}
}
