package pagerender

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/northlinerail/website/internal/platform/seo"
	sitei18n "github.com/northlinerail/website/internal/services/site/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/templates"
	"golang.org/x/text/language"
	g "maragu.dev/gomponents"
)

func testRenderer() Renderer {
	return Renderer{
		SiteName:  "Northline Rail",
		LegalName: "Northline Rail Services LLC",
		Phone:     "+1-800-555-0142",
		Now:       func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestWritePageRendersFullDocument(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rr := httptest.NewRecorder()
	meta := seo.Site{BaseURL: "https://example.test"}.Generate(seo.Config{Title: "About Us", Description: "Who we are", URL: "/about"})
	err := testRenderer().WritePage(rr, req, Page{Meta: meta, Body: templates.Component(g.Text("body-marker"))})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<!doctype html>", "<title>About Us</title>", "body-marker", "© 2026 Northline Rail Services LLC"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("Content-Type = %q", got)
	}
}

func TestWritePageRendersBodyOnlyForHTMX(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	err := testRenderer().WritePage(rr, req, Page{StatusCode: http.StatusAccepted, Body: templates.Component(g.Text("fragment"))})
	if err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Body.String(); got != "fragment" {
		t.Fatalf("body = %q, want fragment only", got)
	}
}

func TestWritePageLocalizesOpenGraphLocale(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req = req.WithContext(sitei18n.WithTag(req.Context(), language.MustParse("es-MX")))
	rr := httptest.NewRecorder()
	meta := seo.Site{BaseURL: "https://example.test", Locale: "en_US"}.Generate(seo.Config{Title: "Services", URL: "/services"})
	if err := testRenderer().WritePage(rr, req, Page{Meta: meta}); err != nil {
		t.Fatalf("WritePage() error = %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `lang="es-MX"`) {
		t.Fatalf("body missing es-MX document language")
	}
	if !strings.Contains(body, `property="og:locale" content="es_MX"`) {
		t.Fatalf("body missing es_MX og:locale: %s", body)
	}
}

func TestWritePageVariesOnHTMXHeaders(t *testing.T) {
	t.Parallel()

	for _, htmx := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		if htmx {
			req.Header.Set("HX-Request", "true")
		}
		rr := httptest.NewRecorder()
		if err := testRenderer().WritePage(rr, req, Page{}); err != nil {
			t.Fatalf("WritePage() error = %v", err)
		}
		vary := rr.Header().Values("Vary")
		if !slices.Contains(vary, "HX-Request") || !slices.Contains(vary, "HX-Boosted") {
			t.Fatalf("htmx=%v: Vary = %v", htmx, vary)
		}
	}
}

func TestChromeUsesRequestLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req = req.WithContext(sitei18n.WithTag(req.Context(), language.MustParse("es-MX")))
	chrome := testRenderer().Chrome(req)
	if chrome.Lang != "es-MX" {
		t.Fatalf("Lang = %q", chrome.Lang)
	}
	if chrome.CurrentPath != "/services" || chrome.Year != 2026 {
		t.Fatalf("chrome = %+v", chrome)
	}
	if len(chrome.Languages) != 2 {
		t.Fatalf("languages = %+v", chrome.Languages)
	}
	for _, link := range chrome.Languages {
		if link.Active != (link.Tag == "es-MX") {
			t.Fatalf("active flag wrong for %+v", link)
		}
		if !strings.HasPrefix(link.Href, "/services?lang=") {
			t.Fatalf("href = %q", link.Href)
		}
	}
}
