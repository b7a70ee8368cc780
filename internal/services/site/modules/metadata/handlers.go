package metadata

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/pagedef"
)

const metadataCacheControl = "public, max-age=3600"

type handlers struct {
	site     seo.Site
	identity Identity
	now      func() time.Time
}

func (h handlers) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", metadataCacheControl)
	_, _ = w.Write([]byte(Robots(h.site.BaseURL)))
}

func (h handlers) handleSitemap(w http.ResponseWriter, _ *http.Request) {
	body, err := Sitemap(h.site, pagedef.All(), h.now())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", metadataCacheControl)
	_, _ = w.Write(body)
}

func (h handlers) handleManifest(w http.ResponseWriter, _ *http.Request) {
	body, err := json.Marshal(BuildManifest(h.identity))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/manifest+json")
	w.Header().Set("Cache-Control", metadataCacheControl)
	_, _ = w.Write(body)
}
