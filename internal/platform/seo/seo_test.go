package seo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSite() Site {
	return Site{
		BaseURL:            "https://rail.example.com/",
		Name:               "Example Rail",
		DefaultTitle:       "Example Rail",
		DefaultDescription: "Locomotive parts and services.",
		DefaultKeywords:    []string{"locomotive parts", "rail services"},
		DefaultImage:       "/static/images/og.svg",
		Locale:             "en-US",
	}
}

func TestGenerateMapsConfigOneToOne(t *testing.T) {
	t.Parallel()

	got := testSite().Generate(Config{
		Title:       "Locomotive Parts | Example Rail",
		Description: "Traction motors, brake valves, and power assemblies.",
		Keywords:    []string{"traction motors", "brake valves"},
		URL:         "/products",
	})
	want := Metadata{
		Title:        "Locomotive Parts | Example Rail",
		Description:  "Traction motors, brake valves, and power assemblies.",
		Keywords:     []string{"traction motors", "brake valves"},
		CanonicalURL: "https://rail.example.com/products",
		OpenGraph: OpenGraph{
			Title:       "Locomotive Parts | Example Rail",
			Description: "Traction motors, brake valves, and power assemblies.",
			URL:         "https://rail.example.com/products",
			SiteName:    "Example Rail",
			Type:        "website",
			Locale:      "en_US",
			Images:      []string{"https://rail.example.com/static/images/og.svg"},
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       "Locomotive Parts | Example Rail",
			Description: "Traction motors, brake valves, and power assemblies.",
			Images:      []string{"https://rail.example.com/static/images/og.svg"},
		},
		Robots: Robots{Index: true, Follow: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Generate() mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateKeepsLiteralTitleAndDescription(t *testing.T) {
	t.Parallel()

	title := "  Spaced Title  "
	description := "Description with <markup> & entities"
	got := testSite().Generate(Config{Title: title, Description: description, URL: "/about"})
	if got.Title != title {
		t.Fatalf("Title = %q, want %q", got.Title, title)
	}
	if got.Description != description {
		t.Fatalf("Description = %q, want %q", got.Description, description)
	}
}

func TestGenerateFallsBackToSiteDefaults(t *testing.T) {
	t.Parallel()

	got := testSite().Generate(Config{})
	if got.Title != "Example Rail" {
		t.Fatalf("Title = %q, want default", got.Title)
	}
	if got.Description != "Locomotive parts and services." {
		t.Fatalf("Description = %q, want default", got.Description)
	}
	if diff := cmp.Diff([]string{"locomotive parts", "rail services"}, got.Keywords); diff != "" {
		t.Fatalf("Keywords mismatch (-want +got):\n%s", diff)
	}
	if got.CanonicalURL != "https://rail.example.com/" {
		t.Fatalf("CanonicalURL = %q, want site root", got.CanonicalURL)
	}
}

func TestGenerateNormalizesURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{url: "services", want: "https://rail.example.com/services"},
		{url: "/contact/thanks", want: "https://rail.example.com/contact/thanks"},
		{url: "https://partner.example.org/catalog", want: "https://partner.example.org/catalog"},
	}
	for _, tc := range tests {
		got := testSite().Generate(Config{URL: tc.url})
		if got.CanonicalURL != tc.want {
			t.Fatalf("Generate(URL=%q).CanonicalURL = %q, want %q", tc.url, got.CanonicalURL, tc.want)
		}
		if got.OpenGraph.URL != tc.want {
			t.Fatalf("Generate(URL=%q).OpenGraph.URL = %q, want %q", tc.url, got.OpenGraph.URL, tc.want)
		}
	}
}

func TestGenerateNoIndex(t *testing.T) {
	t.Parallel()

	got := testSite().Generate(Config{URL: "/customer-portal", NoIndex: true})
	if got.Robots.Content() != "noindex, nofollow" {
		t.Fatalf("Robots.Content() = %q", got.Robots.Content())
	}
}

func TestGenerateDropsBlankKeywords(t *testing.T) {
	t.Parallel()

	got := testSite().Generate(Config{Keywords: []string{" ", "bogies", ""}})
	if got.KeywordsContent() != "bogies" {
		t.Fatalf("KeywordsContent() = %q, want %q", got.KeywordsContent(), "bogies")
	}
}
