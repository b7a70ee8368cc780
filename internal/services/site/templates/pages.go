package templates

import (
	"github.com/northlinerail/website/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// PendingContent is shown on pages whose final copy is not yet designed.
const PendingContent = "Content will be implemented based on Figma design"

// CatalogEntry is one product category or service offering.
type CatalogEntry struct {
	Slug       string
	Name       string
	Summary    string
	Highlights []string
	Image      *Image
}

// Testimonial is a customer quote shown on the home page.
type Testimonial struct {
	Quote  string
	Author string
}

// HomeProps configures HomeBody.
type HomeProps struct {
	Hero         HeroProps
	Featured     []CatalogEntry
	Testimonials []Testimonial
}

// HomeBody renders the landing page.
func HomeBody(props HomeProps) g.Node {
	return g.Group{
		Hero(props.Hero),
		g.If(len(props.Featured) > 0, Container("py-16",
			h.Div(h.Class("grid gap-6 sm:grid-cols-2 lg:grid-cols-3"),
				g.Map(props.Featured, func(entry CatalogEntry) g.Node {
					return Card(CardProps{Title: entry.Name},
						h.P(h.Class("text-slate-600"), g.Text(entry.Summary)),
						h.A(h.Href(routepath.ProductCategory(entry.Slug)), h.Class("mt-4 inline-block font-semibold text-amber-700 hover:underline"), g.Text(entry.Name+" →")),
					)
				}),
			),
		)),
		g.If(len(props.Testimonials) > 0, Container("pb-16",
			h.Div(h.Class("grid gap-6 md:grid-cols-2"),
				g.Map(props.Testimonials, func(item Testimonial) g.Node {
					return Card(CardProps{Variant: CardTestimonial},
						h.P(g.Text(item.Quote)),
						h.P(h.Class("mt-3 text-sm not-italic font-semibold text-slate-900"), g.Text(item.Author)),
					)
				}),
			),
		)),
	}
}

// PageHeading renders the page title and optional lead paragraph.
func PageHeading(heading, intro string) g.Node {
	return g.Group{
		h.H1(h.Class("text-3xl font-bold text-slate-900"), g.Text(heading)),
		g.If(intro != "", h.P(h.Class("mt-4 max-w-3xl text-lg text-slate-600"), g.Text(intro))),
	}
}

// StubBody renders a page whose content is pending design.
func StubBody(heading, intro string) g.Node {
	return Container("py-16",
		PageHeading(heading, intro),
		h.P(h.Class("mt-8 rounded-md border border-dashed border-slate-300 p-6 text-slate-500"), g.Text(PendingContent)),
	)
}

// CatalogPageProps configures CatalogPage.
type CatalogPageProps struct {
	Heading     string
	Intro       string
	FragmentURL string
	Loading     g.Node
}

// CatalogPage renders a page whose listing loads after first paint.
func CatalogPage(props CatalogPageProps) g.Node {
	return Container("py-16",
		PageHeading(props.Heading, props.Intro),
		h.Div(
			h.Class("mt-10"),
			g.Attr("hx-get", props.FragmentURL),
			g.Attr("hx-trigger", "load"),
			g.Attr("hx-swap", "outerHTML"),
			props.Loading,
			h.NoScript(h.A(h.Href(props.FragmentURL), h.Class("underline"), g.Text(props.Heading))),
		),
	)
}

// ProductCatalog renders product categories as cards.
func ProductCatalog(entries []CatalogEntry, ctaLabel string) g.Node {
	return h.Div(
		h.ID("product-catalog"),
		h.Class("mt-10 grid gap-6 sm:grid-cols-2 lg:grid-cols-3"),
		g.Map(entries, func(entry CatalogEntry) g.Node {
			return h.Article(
				h.ID(entry.Slug),
				Card(CardProps{Title: entry.Name},
					g.If(entry.Image != nil, catalogImage(entry.Image)),
					h.P(h.Class("text-slate-600"), g.Text(entry.Summary)),
					highlights(entry.Highlights),
					h.A(h.Href(routepath.ContactWithKind("quote")), h.Class("mt-4 inline-block font-semibold text-amber-700 hover:underline"), g.Text(ctaLabel)),
				),
			)
		}),
	)
}

// ServiceCatalog renders service offerings.
func ServiceCatalog(entries []CatalogEntry, ctaLabel string) g.Node {
	return h.Div(
		h.ID("service-catalog"),
		h.Class("mt-10 grid gap-6 md:grid-cols-2"),
		g.Map(entries, func(entry CatalogEntry) g.Node {
			return h.Article(
				h.ID(entry.Slug),
				Card(CardProps{Title: entry.Name},
					h.P(h.Class("text-slate-600"), g.Text(entry.Summary)),
					highlights(entry.Highlights),
					h.A(h.Href(routepath.ContactWithKind("service")), h.Class("mt-4 inline-block font-semibold text-amber-700 hover:underline"), g.Text(ctaLabel)),
				),
			)
		}),
	)
}

func highlights(items []string) g.Node {
	if len(items) == 0 {
		return nil
	}
	return h.Ul(h.Class("mt-3 list-disc space-y-1 pl-5 text-sm text-slate-600"),
		g.Map(items, func(item string) g.Node { return h.Li(g.Text(item)) }),
	)
}

func catalogImage(img *Image) g.Node {
	return h.Img(
		h.Src(img.Src),
		h.Alt(img.Alt),
		h.Class("mb-4 h-40 w-full rounded object-cover"),
		g.If(img.SrcSet != "", g.Attr("srcset", img.SrcSet)),
		g.If(img.Sizes != "", g.Attr("sizes", img.Sizes)),
		g.Attr("loading", "lazy"),
		g.Attr("decoding", "async"),
	)
}

// ErrorBody renders the branded error state.
func ErrorBody(status int, title, message, backLabel string) g.Node {
	return Container("py-24 text-center",
		h.P(h.Class("text-sm font-semibold uppercase tracking-wide text-amber-600"), g.Textf("%d", status)),
		h.H1(h.Class("mt-2 text-3xl font-bold text-slate-900"), g.Text(title)),
		h.P(h.Class("mt-4 text-slate-600"), g.Text(message)),
		h.A(h.Href(routepath.Root), h.Class("mt-8 inline-block rounded-md bg-slate-900 px-4 py-2 font-semibold text-white"), g.Text(backLabel)),
	)
}
