package inquiries

import (
	"net/http"

	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Contact, h.handleContactPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.APIContact, h.handleSubmit)
	mux.HandleFunc(routepath.APIContact, httpx.MethodNotAllowed(http.MethodPost))
}
