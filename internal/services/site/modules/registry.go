// Package modules lists the site's feature modules in mount order.
package modules

import (
	"io/fs"

	"github.com/northlinerail/website/internal/services/site/catalog"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/modules/admin"
	"github.com/northlinerail/website/internal/services/site/modules/images"
	"github.com/northlinerail/website/internal/services/site/modules/inquiries"
	"github.com/northlinerail/website/internal/services/site/modules/metadata"
	"github.com/northlinerail/website/internal/services/site/modules/pages"
	"github.com/northlinerail/website/internal/services/site/platform/requestmeta"
	"github.com/northlinerail/website/internal/services/site/storage"
)

// Dependencies carries the collaborators modules are built from.
type Dependencies struct {
	Base      module.Base
	Catalog   *catalog.Catalog
	Identity  metadata.Identity
	Static    fs.FS
	Submitter inquiries.Submitter
	Policy    requestmeta.SchemePolicy
	Inquiries storage.InquiryReader
}

// DefaultPublicModules returns the modules every deployment serves.
func DefaultPublicModules(deps Dependencies) []module.Module {
	return []module.Module{
		pages.New(deps.Base, deps.Catalog),
		metadata.New(deps.Base, deps.Identity),
		images.New(deps.Base, deps.Static),
		inquiries.New(deps.Base, deps.Submitter, deps.Policy),
	}
}

// DefaultProtectedModules returns the staff modules mounted behind admin
// credentials.
func DefaultProtectedModules(deps Dependencies) []module.Module {
	return []module.Module{
		admin.New(deps.Base, deps.Inquiries),
	}
}
