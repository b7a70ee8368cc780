package pages

import (
	"net/http"

	"github.com/northlinerail/website/internal/services/site/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleHome)
	mux.HandleFunc(http.MethodGet+" "+routepath.Products, h.handleProducts)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsCatalog, h.handleProductsCatalog)
	mux.HandleFunc(http.MethodGet+" "+routepath.Services, h.handleServices)
	mux.HandleFunc(http.MethodGet+" "+routepath.ServicesCatalog, h.handleServicesCatalog)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductCategory("{slug}"), h.handleProductEntry)
	mux.HandleFunc(http.MethodGet+" "+routepath.Service("{slug}"), h.handleServiceEntry)
	for _, path := range []string{routepath.About, routepath.ContactThanks, routepath.CustomerPortal, routepath.Privacy, routepath.Terms} {
		mux.HandleFunc(http.MethodGet+" "+path, h.handleStub(path))
	}
	mux.HandleFunc(routepath.Root, h.handleNotFound)
}
