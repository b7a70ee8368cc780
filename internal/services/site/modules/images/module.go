// Package images serves the /_image endpoint over the embedded image tree.
package images

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/northlinerail/website/internal/platform/assets/imagecdn"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"go.uber.org/zap"
)

var errMissingFS = errors.New("images module requires a static file system")

// Module provides the image optimization route.
type Module struct {
	config imagecdn.Config
	static fs.FS
	logger *zap.Logger
}

// New returns an images module reading static, a file system rooted at
// /static/.
func New(base module.Base, static fs.FS) Module {
	return Module{config: base.Images.Config(), static: static, logger: base.Logger}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "images" }

// Mount wires the image route handler.
func (m Module) Mount() (module.Mount, error) {
	if m.static == nil {
		return module.Mount{}, errMissingFS
	}
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{config: m.config, static: m.static, logger: m.logger})
	return module.Mount{Paths: []string{routepath.Image}, Handler: mux}, nil
}
