// Package pagerender centralizes site page rendering behavior.
package pagerender

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	platformi18n "github.com/northlinerail/website/internal/platform/i18n"
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	sitei18n "github.com/northlinerail/website/internal/services/site/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/templates"
)

// Page describes a page response for both full-page and HTMX flows.
type Page struct {
	Meta       seo.Metadata
	StatusCode int
	Body       templ.Component
}

// Renderer writes pages inside the shared site chrome.
type Renderer struct {
	SiteName   string
	LegalName  string
	Phone      string
	ThemeColor string
	Now        func() time.Time
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error {
	return nil
}

// Chrome resolves request-scoped header and footer data.
func (rd Renderer) Chrome(r *http.Request) templates.Chrome {
	now := time.Now
	if rd.Now != nil {
		now = rd.Now
	}
	tag := sitei18n.TagFromContext(httpx.RequestContext(r))
	path := "/"
	if r != nil && r.URL != nil && r.URL.Path != "" {
		path = r.URL.Path
	}
	return templates.Chrome{
		Lang:        tag.String(),
		Loc:         sitei18n.Localizer(r),
		SiteName:    rd.SiteName,
		LegalName:   rd.LegalName,
		Phone:       rd.Phone,
		ThemeColor:  rd.ThemeColor,
		CurrentPath: path,
		Year:        now().Year(),
		Languages:   languageLinks(path, tag.String()),
	}
}

// WritePage writes a full document, or only the body for HTMX requests.
func (rd Renderer) WritePage(w http.ResponseWriter, r *http.Request, page Page) error {
	if w == nil {
		return nil
	}
	body := page.Body
	if body == nil {
		body = emptyComponent{}
	}
	ctx := httpx.RequestContext(r)

	VaryOnHTMX(w)
	var component templ.Component
	if IsFragmentRequest(r) {
		component = body
	} else {
		chrome := rd.Chrome(r)
		meta := page.Meta
		meta.OpenGraph.Locale = seo.OpenGraphLocale(chrome.Lang)
		component = templates.Document(meta, chrome)
		ctx = templ.WithChildren(ctx, body)
	}

	// Buffer so a render failure can still produce a clean error response.
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusOrOK(page.StatusCode), buf.String())
}

// IsFragmentRequest reports whether r asks for a body fragment rather than a
// full document. Boosted navigation still gets the full document.
func IsFragmentRequest(r *http.Request) bool {
	return httpx.IsHTMXRequest(r) && r.Header.Get("HX-Boosted") != "true"
}

// VaryOnHTMX marks a response whose shape depends on the HTMX request headers.
func VaryOnHTMX(w http.ResponseWriter) {
	w.Header().Add("Vary", "HX-Request")
	w.Header().Add("Vary", "HX-Boosted")
}

// WriteFragment writes component without the document shell.
func WriteFragment(w http.ResponseWriter, r *http.Request, status int, component templ.Component) error {
	if component == nil {
		component = emptyComponent{}
	}
	var buf bytes.Buffer
	if err := component.Render(httpx.RequestContext(r), &buf); err != nil {
		return err
	}
	return httpx.WriteHTML(w, statusOrOK(status), buf.String())
}

func statusOrOK(status int) int {
	if status <= 0 {
		return http.StatusOK
	}
	return status
}

func languageLinks(path string, active string) []templates.LanguageLink {
	tags := platformi18n.SupportedTags()
	links := make([]templates.LanguageLink, 0, len(tags))
	for _, tag := range tags {
		value := tag.String()
		base, _ := tag.Base()
		links = append(links, templates.LanguageLink{
			Tag:    value,
			Label:  strings.ToUpper(base.String()),
			Href:   path + "?" + url.Values{sitei18n.QueryParam: {value}}.Encode(),
			Active: value == active,
		})
	}
	return links
}
