package images

import (
	"net/http"

	"github.com/northlinerail/website/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Image, h.handleImage)
}
