package admin

import (
	"net/http"

	"github.com/northlinerail/website/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminInquiries, h.handleInquiries)
	mux.HandleFunc(routepath.AdminPrefix, h.handleNotFound)
}
