package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	platformi18n "github.com/northlinerail/website/internal/platform/i18n"
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// LanguageLink is one entry of the language switcher.
type LanguageLink struct {
	Tag    string
	Label  string
	Href   string
	Active bool
}

// Chrome holds request-scoped data for the site header and footer.
type Chrome struct {
	Lang        string
	Loc         platformi18n.Localizer
	SiteName    string
	LegalName   string
	Phone       string
	ThemeColor  string
	CurrentPath string
	Year        int
	Languages   []LanguageLink
}

func (ch Chrome) t(key string, args ...any) string {
	if ch.Loc == nil {
		return key
	}
	return ch.Loc.Sprintf(key, args...)
}

// Document renders the full HTML document with templ children as the main
// content.
func Document(meta seo.Metadata, chrome Chrome) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return documentNode(ctx, meta, chrome).Render(w)
	})
}

func documentNode(ctx context.Context, meta seo.Metadata, chrome Chrome) g.Node {
	lang := chrome.Lang
	if lang == "" {
		lang = "en-US"
	}
	return c.HTML5(c.HTML5Props{
		Title:    meta.Title,
		Language: lang,
		Head:     Head(meta, chrome),
		Body: []g.Node{
			h.Class("flex min-h-screen flex-col bg-white text-slate-800 antialiased"),
			h.A(h.Href("#main"), h.Class("sr-only focus:not-sr-only"), g.Text(meta.Title)),
			PriorityBanner(PriorityBannerProps{
				Label:     chrome.t("banner.priority"),
				Phone:     chrome.Phone,
				CallLabel: chrome.t("banner.call", chrome.Phone),
			}),
			siteHeader(chrome),
			h.Main(h.ID("main"), h.Class("flex-1"), children(ctx)),
			siteFooter(chrome),
		},
	})
}

// Head renders SEO and asset tags for meta.
func Head(meta seo.Metadata, chrome Chrome) []g.Node {
	nodes := []g.Node{
		h.Meta(h.Name("description"), h.Content(meta.Description)),
		g.If(len(meta.Keywords) > 0, h.Meta(h.Name("keywords"), h.Content(meta.KeywordsContent()))),
		h.Meta(h.Name("robots"), h.Content(meta.Robots.Content())),
		h.Link(h.Rel("canonical"), h.Href(meta.CanonicalURL)),
		property("og:title", meta.OpenGraph.Title),
		property("og:description", meta.OpenGraph.Description),
		property("og:url", meta.OpenGraph.URL),
		property("og:site_name", meta.OpenGraph.SiteName),
		property("og:type", meta.OpenGraph.Type),
		property("og:locale", meta.OpenGraph.Locale),
	}
	for _, image := range meta.OpenGraph.Images {
		nodes = append(nodes, property("og:image", image))
	}
	nodes = append(nodes,
		h.Meta(h.Name("twitter:card"), h.Content(meta.Twitter.Card)),
		h.Meta(h.Name("twitter:title"), h.Content(meta.Twitter.Title)),
		h.Meta(h.Name("twitter:description"), h.Content(meta.Twitter.Description)),
	)
	for _, image := range meta.Twitter.Images {
		nodes = append(nodes, h.Meta(h.Name("twitter:image"), h.Content(image)))
	}
	for _, alt := range chrome.Languages {
		nodes = append(nodes, h.Link(h.Rel("alternate"), g.Attr("hreflang", alt.Tag), h.Href(alt.Href)))
	}
	if chrome.ThemeColor != "" {
		nodes = append(nodes, h.Meta(h.Name("theme-color"), h.Content(chrome.ThemeColor)))
	}
	nodes = append(nodes,
		h.Link(h.Rel("manifest"), h.Href(routepath.Manifest)),
		h.Link(h.Rel("icon"), h.Href("/static/icons/favicon.svg"), h.Type("image/svg+xml")),
		h.Link(h.Rel("apple-touch-icon"), h.Href("/static/icons/icon-192.png")),
		h.Link(h.Rel("stylesheet"), h.Href("/static/css/site.css")),
		h.Script(h.Src(htmxScript), h.Defer()),
		h.Script(h.Src("/static/js/site.js"), h.Defer()),
	)
	return nodes
}

func property(name, value string) g.Node {
	if value == "" {
		return nil
	}
	return h.Meta(g.Attr("property", name), h.Content(value))
}

type navItem struct {
	key  string
	href string
}

var primaryNav = []navItem{
	{key: "nav.home", href: routepath.Root},
	{key: "nav.products", href: routepath.Products},
	{key: "nav.services", href: routepath.Services},
	{key: "nav.about", href: routepath.About},
	{key: "nav.contact", href: routepath.Contact},
	{key: "nav.customer_portal", href: routepath.CustomerPortal},
}

func siteHeader(chrome Chrome) g.Node {
	return h.Header(
		h.Class("border-b border-slate-200 bg-white"),
		Container("flex flex-wrap items-center justify-between gap-4 py-4",
			h.A(h.Href(routepath.Root), h.Class("flex items-center gap-2 text-xl font-bold text-slate-900"),
				h.Img(h.Src("/static/icons/favicon.svg"), h.Alt(""), h.Width("32"), h.Height("32")),
				g.Text(chrome.SiteName),
			),
			h.Nav(
				g.Attr("aria-label", chrome.t("nav.menu")),
				h.Ul(h.Class("flex flex-wrap items-center gap-4 text-sm font-medium"),
					g.Map(primaryNav, func(item navItem) g.Node {
						return h.Li(navLink(chrome.CurrentPath, item.href, chrome.t(item.key)))
					}),
				),
			),
			h.Div(h.Class("flex items-center gap-3"),
				languageSwitcher(chrome),
				h.A(
					h.Href(routepath.ContactWithKind("quote")),
					h.Class("rounded-md bg-slate-900 px-4 py-2 text-sm font-semibold text-white hover:bg-slate-700"),
					g.Text(chrome.t("nav.request_quote")),
				),
			),
		),
	)
}

func navLink(current, href, label string) g.Node {
	active := isActive(current, href)
	return h.A(
		h.Href(href),
		c.Classes{
			"hover:text-amber-600":                  true,
			"text-slate-600":                        !active,
			"text-slate-900 underline decoration-2": active,
		},
		g.If(active, g.Attr("aria-current", "page")),
		g.Text(label),
	)
}

func isActive(current, href string) bool {
	if href == routepath.Root {
		return current == routepath.Root
	}
	return current == href || strings.HasPrefix(current, href+"/")
}

func languageSwitcher(chrome Chrome) g.Node {
	if len(chrome.Languages) < 2 {
		return nil
	}
	return h.Div(
		h.Class("flex gap-1 text-xs"),
		g.Attr("aria-label", chrome.t("nav.language")),
		g.Map(chrome.Languages, func(link LanguageLink) g.Node {
			return h.A(
				h.Href(link.Href),
				g.Attr("hreflang", link.Tag),
				c.Classes{
					"rounded px-2 py-1":              true,
					"bg-slate-900 text-white":        link.Active,
					"text-slate-600 hover:underline": !link.Active,
				},
				g.Text(link.Label),
			)
		}),
	)
}

func siteFooter(chrome Chrome) g.Node {
	return h.Footer(
		h.Class("mt-16 border-t border-slate-200 bg-slate-50"),
		Container("flex flex-col gap-4 py-8 text-sm text-slate-600 md:flex-row md:items-center md:justify-between",
			h.P(g.Text(chrome.t("footer.tagline"))),
			h.Nav(h.Class("flex gap-4"),
				h.A(h.Href(routepath.Privacy), h.Class("hover:underline"), g.Text(chrome.t("footer.privacy"))),
				h.A(h.Href(routepath.Terms), h.Class("hover:underline"), g.Text(chrome.t("footer.terms"))),
			),
			h.P(g.Text(chrome.t("footer.rights", strconv.Itoa(chrome.Year), chrome.LegalName))),
		),
	)
}
