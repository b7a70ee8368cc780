package metadata

import (
	"net/url"
	"strings"

	"github.com/northlinerail/website/internal/services/site/routepath"
)

// disallowed paths are private or machine-only surfaces.
var disallowed = []string{
	routepath.AdminPrefix,
	routepath.CustomerPortalPrefix,
	routepath.APIPrefix,
}

// Robots renders robots.txt for a site rooted at baseURL.
func Robots(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, path := range disallowed {
		b.WriteString("Disallow: " + path + "\n")
	}
	b.WriteString("\nSitemap: " + base + routepath.Sitemap + "\n")
	if parsed, err := url.Parse(base); err == nil && parsed.Host != "" {
		b.WriteString("Host: " + parsed.Host + "\n")
	}
	return b.String()
}
