// Package metadata serves crawler and install metadata: robots.txt,
// sitemap.xml, and the web app manifest.
package metadata

import (
	"net/http"
	"time"

	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

// Identity is the installable app identity published in the manifest.
type Identity struct {
	Name            string
	ShortName       string
	Description     string
	ThemeColor      string
	BackgroundColor string
}

// Module provides the metadata routes.
type Module struct {
	site     seo.Site
	identity Identity
	now      func() time.Time
}

// New returns a metadata module for site.
func New(base module.Base, identity Identity) Module {
	return Module{site: base.SEO, identity: identity, now: base.Clock()}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "metadata" }

// Mount wires metadata route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{site: m.site, identity: m.identity, now: m.now})
	return module.Mount{
		Paths:   []string{routepath.Robots, routepath.Sitemap, routepath.Manifest},
		Handler: mux,
	}, nil
}
