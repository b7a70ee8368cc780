// Package module defines the feature contract used by site composition.
package module

import (
	"net/http"
	"time"

	"github.com/northlinerail/website/internal/platform/assets/imagecdn"
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"go.uber.org/zap"
)

// Mount describes a module route mount.
//
// Prefix claims a subtree. Paths claims exact paths outside any subtree, such
// as /robots.txt. A mount sets at least one of them.
type Mount struct {
	Prefix  string
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by site composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// Base carries the shared collaborators every page-producing module needs.
type Base struct {
	Renderer pagerender.Renderer
	SEO      seo.Site
	Images   imagecdn.CDN
	Logger   *zap.Logger
	Now      func() time.Time
}

// Clock returns the configured clock or time.Now.
func (b Base) Clock() func() time.Time {
	if b.Now == nil {
		return time.Now
	}
	return b.Now
}
