// Package pagedef declares every routable site page with its SEO metadata.
//
// Pages, the sitemap, and the contact flow all read from the same registry so
// a page's title and description are written exactly once.
package pagedef

import (
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

// ChangeFreq is a sitemap change frequency hint.
type ChangeFreq string

const (
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
)

// Page is one routable page.
type Page struct {
	Path    string
	Heading string
	Intro   string
	SEO     seo.Config
	// ChangeFreq and Priority feed sitemap.xml.
	ChangeFreq ChangeFreq
	Priority   float64
}

// Indexable reports whether the page belongs in the sitemap.
func (p Page) Indexable() bool {
	return !p.SEO.NoIndex
}

var pages = []Page{
	{
		Path:    routepath.Root,
		Heading: "Locomotive parts and services that keep your fleet moving",
		Intro:   "Remanufactured and new components, field service crews, and shop overhauls for freight, short line, and industrial railroads.",
		SEO: seo.Config{
			Title:       "Northline Rail | Locomotive Parts and Services",
			Description: "Northline Rail supplies locomotive parts and delivers maintenance, repair, and overhaul services for freight, short line, and industrial railroads.",
			Keywords:    []string{"locomotive parts", "locomotive services", "railway parts", "traction motors", "locomotive overhaul"},
			URL:         routepath.Root,
		},
		ChangeFreq: Weekly,
		Priority:   1.0,
	},
	{
		Path:    routepath.About,
		Heading: "About Northline Rail",
		Intro:   "A family of machinists, electricians, and field technicians supporting railroads since 1987.",
		SEO: seo.Config{
			Title:       "About Us | Northline Rail",
			Description: "Learn about Northline Rail, our shop capabilities, and the team supporting locomotive fleets across North America.",
			Keywords:    []string{"about Northline Rail", "locomotive shop", "railway supplier"},
			URL:         routepath.About,
		},
		ChangeFreq: Monthly,
		Priority:   0.6,
	},
	{
		Path:    routepath.Products,
		Heading: "Locomotive parts",
		Intro:   "Stocked components for EMD and GE locomotives, shipped tested and ready to install.",
		SEO: seo.Config{
			Title:       "Locomotive Parts | Northline Rail",
			Description: "Browse traction motors, power assemblies, turbochargers, air brake components, and more from Northline Rail.",
			Keywords:    []string{"locomotive parts", "traction motors", "power assemblies", "turbochargers", "air brake parts"},
			URL:         routepath.Products,
		},
		ChangeFreq: Weekly,
		Priority:   0.9,
	},
	{
		Path:    routepath.Services,
		Heading: "Locomotive services",
		Intro:   "Shop overhauls, field repair, inspections, and emergency breakdown response.",
		SEO: seo.Config{
			Title:       "Locomotive Services | Northline Rail",
			Description: "Locomotive maintenance, overhaul, field service, and 24/7 breakdown response from Northline Rail.",
			Keywords:    []string{"locomotive maintenance", "locomotive overhaul", "field service", "breakdown response"},
			URL:         routepath.Services,
		},
		ChangeFreq: Weekly,
		Priority:   0.9,
	},
	{
		Path:    routepath.Contact,
		Heading: "Contact us",
		Intro:   "Request a parts quote, book service, or ask a question. We reply within one business day.",
		SEO: seo.Config{
			Title:       "Contact Us | Northline Rail",
			Description: "Request a quote for locomotive parts or schedule service with Northline Rail.",
			Keywords:    []string{"locomotive parts quote", "schedule locomotive service", "contact Northline Rail"},
			URL:         routepath.Contact,
		},
		ChangeFreq: Monthly,
		Priority:   0.8,
	},
	{
		Path:    routepath.ContactThanks,
		Heading: "Thank you",
		Intro:   "We received your inquiry. A member of our team will reply within one business day.",
		SEO: seo.Config{
			Title:       "Thank You | Northline Rail",
			Description: "Your inquiry has been received by Northline Rail.",
			URL:         routepath.ContactThanks,
			NoIndex:     true,
		},
	},
	{
		Path:    routepath.CustomerPortal,
		Heading: "Customer portal",
		Intro:   "Order tracking, core returns, and service history for account customers.",
		SEO: seo.Config{
			Title:       "Customer Portal | Northline Rail",
			Description: "Sign in to track orders, core returns, and service history with Northline Rail.",
			URL:         routepath.CustomerPortal,
			NoIndex:     true,
		},
	},
	{
		Path:    routepath.Privacy,
		Heading: "Privacy policy",
		SEO: seo.Config{
			Title:       "Privacy Policy | Northline Rail",
			Description: "How Northline Rail collects, uses, and protects information submitted through this website.",
			URL:         routepath.Privacy,
		},
		ChangeFreq: Yearly,
		Priority:   0.3,
	},
	{
		Path:    routepath.Terms,
		Heading: "Terms of service",
		SEO: seo.Config{
			Title:       "Terms of Service | Northline Rail",
			Description: "Terms governing the use of the Northline Rail website and quote requests.",
			URL:         routepath.Terms,
		},
		ChangeFreq: Yearly,
		Priority:   0.3,
	},
}

// All returns every page in navigation order.
func All() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// Indexable returns the pages listed in the sitemap.
func Indexable() []Page {
	out := make([]Page, 0, len(pages))
	for _, page := range pages {
		if page.Indexable() {
			out = append(out, page)
		}
	}
	return out
}

// Lookup returns the page registered at path.
func Lookup(path string) (Page, bool) {
	for _, page := range pages {
		if page.Path == path {
			return page, true
		}
	}
	return Page{}, false
}

// MustLookup returns the page at path and panics when it is missing. It is
// meant for package-level wiring of known routepath constants.
func MustLookup(path string) Page {
	page, ok := Lookup(path)
	if !ok {
		panic("pagedef: no page registered at " + path)
	}
	return page
}
