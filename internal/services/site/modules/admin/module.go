// Package admin serves staff-only views of stored inquiries.
package admin

import (
	"errors"
	"net/http"

	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"github.com/northlinerail/website/internal/services/site/storage"
)

var errMissingReader = errors.New("admin module requires an inquiry reader")

// Module provides admin routes. Composition is responsible for gating them.
type Module struct {
	base   module.Base
	reader storage.InquiryReader
}

// New returns an admin module reading from reader.
func New(base module.Base, reader storage.InquiryReader) Module {
	return Module{base: base, reader: reader}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// Mount wires admin route handlers.
func (m Module) Mount() (module.Mount, error) {
	if m.reader == nil {
		return module.Mount{}, errMissingReader
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.base, m.reader))
	return module.Mount{Prefix: routepath.AdminPrefix, Handler: mux}, nil
}
