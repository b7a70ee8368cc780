package metadata

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/pagedef"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

func testModule() Module {
	return New(module.Base{
		SEO: seo.Site{BaseURL: "https://www.northlinerail.com/", Name: "Northline Rail"},
		Now: func() time.Time { return time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC) },
	}, Identity{
		Name:            "Northline Rail",
		ShortName:       "Northline",
		Description:     "Locomotive parts and services",
		ThemeColor:      "#0f2a4a",
		BackgroundColor: "#ffffff",
	})
}

func serve(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := testModule().Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, want %d", path, rr.Code, http.StatusOK)
	}
	return rr
}

func TestRobotsDisallowsPrivateSurfaces(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"https://www.northlinerail.com", "https://staging.example.test/", ""} {
		body := Robots(base)
		for _, line := range []string{"User-agent: *", "Allow: /", "Disallow: /admin/", "Disallow: /customer-portal/", "Disallow: /api/"} {
			if !strings.Contains(body, line+"\n") {
				t.Fatalf("Robots(%q) missing %q:\n%s", base, line, body)
			}
		}
		var sitemap string
		for _, line := range strings.Split(body, "\n") {
			if strings.HasPrefix(line, "Sitemap: ") {
				sitemap = strings.TrimPrefix(line, "Sitemap: ")
			}
		}
		if !strings.HasSuffix(sitemap, "/sitemap.xml") || strings.Contains(sitemap, "//sitemap.xml") {
			t.Fatalf("Robots(%q) sitemap = %q", base, sitemap)
		}
	}
}

func TestRobotsRoute(t *testing.T) {
	t.Parallel()

	rr := serve(t, routepath.Robots)
	body := rr.Body.String()
	if !strings.Contains(body, "Sitemap: https://www.northlinerail.com/sitemap.xml\n") {
		t.Fatalf("robots body = %q", body)
	}
	if !strings.Contains(body, "Host: www.northlinerail.com\n") {
		t.Fatalf("robots body missing host: %q", body)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("content type = %q", got)
	}
}

func TestSitemapListsIndexablePages(t *testing.T) {
	t.Parallel()

	rr := serve(t, routepath.Sitemap)
	var set urlSet
	if err := xml.Unmarshal(rr.Body.Bytes(), &set); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	var got []string
	for _, entry := range set.URLs {
		got = append(got, entry.Loc)
		if entry.LastMod != "2026-02-03" {
			t.Fatalf("lastmod = %q, want 2026-02-03", entry.LastMod)
		}
	}
	var want []string
	for _, page := range pagedef.Indexable() {
		want = append(want, "https://www.northlinerail.com"+page.Path)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sitemap locations mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(rr.Body.String(), routepath.CustomerPortal) {
		t.Fatal("sitemap lists the customer portal")
	}
}

func TestManifestRoute(t *testing.T) {
	t.Parallel()

	rr := serve(t, routepath.Manifest)
	if got := rr.Header().Get("Content-Type"); got != "application/manifest+json" {
		t.Fatalf("content type = %q", got)
	}
	var manifest Manifest
	if err := json.Unmarshal(rr.Body.Bytes(), &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	if manifest.Name != "Northline Rail" || manifest.ShortName != "Northline" || manifest.StartURL != "/" || manifest.Display != "standalone" {
		t.Fatalf("manifest identity = %+v", manifest)
	}
	sizes := map[string]bool{}
	maskable := false
	for _, icon := range manifest.Icons {
		sizes[icon.Sizes] = true
		maskable = maskable || icon.Purpose == "maskable"
	}
	if !sizes["192x192"] || !sizes["512x512"] || !maskable {
		t.Fatalf("manifest icons = %+v", manifest.Icons)
	}
}

func TestManifestShortNameFallsBackToName(t *testing.T) {
	t.Parallel()

	if got := BuildManifest(Identity{Name: "Northline Rail"}).ShortName; got != "Northline Rail" {
		t.Fatalf("ShortName = %q", got)
	}
}

func TestMountClaimsExactPaths(t *testing.T) {
	t.Parallel()

	mount, err := testModule().Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "" {
		t.Fatalf("Prefix = %q, want empty", mount.Prefix)
	}
	want := []string{routepath.Robots, routepath.Sitemap, routepath.Manifest}
	if diff := cmp.Diff(want, mount.Paths); diff != "" {
		t.Fatalf("Paths mismatch (-want +got):\n%s", diff)
	}
}
