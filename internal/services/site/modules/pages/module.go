// Package pages serves the marketing pages and their catalog fragments.
package pages

import (
	"net/http"

	"github.com/northlinerail/website/internal/services/site/catalog"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

// Module provides the public page routes.
type Module struct {
	base    module.Base
	catalog *catalog.Catalog
}

// New returns a pages module backed by cat.
func New(base module.Base, cat *catalog.Catalog) Module {
	return Module{base: base, catalog: cat}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "pages" }

// Mount wires page route handlers. The module owns the root subtree, so it
// also answers unknown paths with the branded 404 page.
func (m Module) Mount() (module.Mount, error) {
	if m.catalog == nil {
		return module.Mount{}, errMissingCatalog
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.base, m.catalog))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
