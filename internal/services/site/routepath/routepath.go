// Package routepath stores canonical HTTP paths for the site.
package routepath

const (
	Root            = "/"
	Health          = "/up"
	About           = "/about"
	Products        = "/products"
	ProductsCatalog = "/products/catalog"
	Services        = "/services"
	ServicesCatalog = "/services/catalog"
	Contact         = "/contact"
	ContactThanks   = "/contact/thanks"
	CustomerPortal  = "/customer-portal"
	Privacy         = "/privacy"
	Terms           = "/terms"

	Manifest = "/manifest.webmanifest"
	Robots   = "/robots.txt"
	Sitemap  = "/sitemap.xml"
	Image    = "/_image"

	StaticPrefix         = "/static/"
	APIPrefix            = "/api/"
	APIContact           = "/api/contact"
	AdminPrefix          = "/admin/"
	AdminInquiries       = "/admin/inquiries"
	CustomerPortalPrefix = "/customer-portal/"
)

// ProductCategory returns the link for one product category.
func ProductCategory(slug string) string {
	return Products + "/" + slug
}

// Service returns the link for one service offering.
func Service(slug string) string {
	return Services + "/" + slug
}

// CatalogAnchor returns the anchor for slug inside a full catalog listing.
func CatalogAnchor(catalogPath, slug string) string {
	return catalogPath + "#" + slug
}

// ContactWithKind preselects an inquiry kind on the contact page.
func ContactWithKind(kind string) string {
	if kind == "" {
		return Contact
	}
	return Contact + "?kind=" + kind
}
