package metadata

import (
	"net/http"

	"github.com/northlinerail/website/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Robots, h.handleRobots)
	mux.HandleFunc(http.MethodGet+" "+routepath.Sitemap, h.handleSitemap)
	mux.HandleFunc(http.MethodGet+" "+routepath.Manifest, h.handleManifest)
}
