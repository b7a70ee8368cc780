package pages

import (
	"errors"
	"net/http"

	"github.com/northlinerail/website/internal/services/site/catalog"
	"github.com/northlinerail/website/internal/services/site/module"
	apperrors "github.com/northlinerail/website/internal/services/site/platform/errors"
	sitei18n "github.com/northlinerail/website/internal/services/site/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/platform/weberror"
	"github.com/northlinerail/website/internal/services/site/pagedef"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"github.com/northlinerail/website/internal/services/site/templates"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"
)

var errMissingCatalog = errors.New("pages module requires a catalog")

const (
	heroImage     = "/static/images/hero.svg"
	featuredCount = 3
	catalogSizes  = "(min-width: 1024px) 33vw, (min-width: 640px) 50vw, 100vw"
)

type handlers struct {
	base    module.Base
	catalog *catalog.Catalog
	errors  weberror.Writer
}

func newHandlers(base module.Base, cat *catalog.Catalog) handlers {
	return handlers{
		base:    base,
		catalog: cat,
		errors:  weberror.Writer{Renderer: base.Renderer, SEO: base.SEO, Logger: base.Logger},
	}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	page := pagedef.MustLookup(routepath.Root)
	loc := sitei18n.Localizer(r)
	featured := make([]templates.CatalogEntry, 0, featuredCount)
	for _, entry := range h.catalog.Featured(featuredCount) {
		featured = append(featured, h.entryView(entry))
	}
	testimonials := make([]templates.Testimonial, 0, len(h.catalog.Testimonials))
	for _, item := range h.catalog.Testimonials {
		testimonials = append(testimonials, templates.Testimonial{Quote: item.Quote, Author: item.Author})
	}
	h.writePage(w, r, page, templates.HomeBody(templates.HomeProps{
		Hero: templates.HeroProps{
			Title:    page.Heading,
			Subtitle: page.Intro,
			CTALabel: loc.Sprintf("nav.request_quote"),
			CTAHref:  routepath.ContactWithKind("quote"),
			Image:    h.image(heroImage, "Freight locomotive at a rail yard", "100vw"),
		},
		Featured:     featured,
		Testimonials: testimonials,
	}))
}

func (h handlers) handleProducts(w http.ResponseWriter, r *http.Request) {
	page := pagedef.MustLookup(routepath.Products)
	loc := sitei18n.Localizer(r)
	h.writePage(w, r, page, templates.CatalogPage(templates.CatalogPageProps{
		Heading:     page.Heading,
		Intro:       page.Intro,
		FragmentURL: routepath.ProductsCatalog,
		Loading:     templates.ProductsLoading(loc.Sprintf("loading.products")),
	}))
}

func (h handlers) handleServices(w http.ResponseWriter, r *http.Request) {
	page := pagedef.MustLookup(routepath.Services)
	loc := sitei18n.Localizer(r)
	h.writePage(w, r, page, templates.CatalogPage(templates.CatalogPageProps{
		Heading:     page.Heading,
		Intro:       page.Intro,
		FragmentURL: routepath.ServicesCatalog,
		Loading:     templates.ServicesLoading(loc.Sprintf("loading.services")),
	}))
}

func (h handlers) handleProductsCatalog(w http.ResponseWriter, r *http.Request) {
	entries := make([]templates.CatalogEntry, 0, len(h.catalog.Products))
	for _, entry := range h.catalog.Products {
		entries = append(entries, h.entryView(entry))
	}
	h.writeCatalog(w, r, routepath.Products, templates.ProductCatalog(entries, sitei18n.Localizer(r).Sprintf("nav.request_quote")))
}

func (h handlers) handleServicesCatalog(w http.ResponseWriter, r *http.Request) {
	entries := make([]templates.CatalogEntry, 0, len(h.catalog.Services))
	for _, entry := range h.catalog.Services {
		entries = append(entries, h.entryView(entry))
	}
	h.writeCatalog(w, r, routepath.Services, templates.ServiceCatalog(entries, sitei18n.Localizer(r).Sprintf("nav.request_quote")))
}

// handleProductEntry sends a category link to its card in the full listing.
func (h handlers) handleProductEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.catalog.Product(r.PathValue("slug"))
	if !ok {
		h.errors.NotFound(w, r)
		return
	}
	http.Redirect(w, r, routepath.CatalogAnchor(routepath.ProductsCatalog, entry.Slug), http.StatusFound)
}

func (h handlers) handleServiceEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.catalog.Service(r.PathValue("slug"))
	if !ok {
		h.errors.NotFound(w, r)
		return
	}
	http.Redirect(w, r, routepath.CatalogAnchor(routepath.ServicesCatalog, entry.Slug), http.StatusFound)
}

// writeCatalog answers HTMX with the bare listing and everything else (the
// noscript link included) with the listing inside its page.
func (h handlers) writeCatalog(w http.ResponseWriter, r *http.Request, pagePath string, listing g.Node) {
	if pagerender.IsFragmentRequest(r) {
		pagerender.VaryOnHTMX(w)
		if err := pagerender.WriteFragment(w, r, http.StatusOK, templates.Component(listing)); err != nil {
			h.errors.WriteError(w, r, apperrors.Wrap(apperrors.KindUnknown, "render catalog fragment", err))
		}
		return
	}
	page := pagedef.MustLookup(pagePath)
	h.writePage(w, r, page, templates.Container("py-16",
		templates.PageHeading(page.Heading, page.Intro),
		listing,
	))
}

func (h handlers) handleStub(path string) http.HandlerFunc {
	page := pagedef.MustLookup(path)
	return func(w http.ResponseWriter, r *http.Request) {
		h.writePage(w, r, page, templates.StubBody(page.Heading, page.Intro))
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.errors.NotFound(w, r)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagedef.Page, body g.Node) {
	err := h.base.Renderer.WritePage(w, r, pagerender.Page{
		Meta: h.base.SEO.Generate(page.SEO),
		Body: templates.Component(body),
	})
	if err != nil {
		h.errors.WriteError(w, r, apperrors.Wrap(apperrors.KindUnknown, "render page "+page.Path, err))
	}
}

func (h handlers) entryView(entry catalog.Entry) templates.CatalogEntry {
	view := templates.CatalogEntry{
		Slug:       entry.Slug,
		Name:       entry.Name,
		Summary:    entry.Summary,
		Highlights: entry.Highlights,
	}
	if entry.Image != "" {
		view.Image = h.image(entry.Image, entry.Name, catalogSizes)
	}
	return view
}

// image resolves src through the image CDN. A source the CDN rejects is still
// shown at its original URL.
func (h handlers) image(src, alt, sizes string) *templates.Image {
	img := &templates.Image{Src: src, Alt: alt, Sizes: sizes}
	srcSet, err := h.base.Images.SrcSet(src)
	if err != nil {
		h.logger().Debug("image srcset unavailable", zap.String("src", src), zap.Error(err))
		return img
	}
	if srcSet == "" {
		return img
	}
	img.SrcSet = srcSet
	if fallback, err := h.base.Images.URL(src, h.base.Images.Config().DeviceSizes[0], 0); err == nil {
		img.Src = fallback
	}
	return img
}

func (h handlers) logger() *zap.Logger {
	if h.base.Logger == nil {
		return zap.NewNop()
	}
	return h.base.Logger
}

