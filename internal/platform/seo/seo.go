// Package seo builds the head metadata every page renders.
//
// Pages describe themselves with a Config; a Site turns that into Metadata by
// filling site defaults and resolving the canonical URL against the site's
// base URL.
package seo

import (
	"strings"
)

// Config is the per-page SEO input.
type Config struct {
	Title       string
	Description string
	Keywords    []string
	// URL is the site-relative path of the page.
	URL string
	// Image overrides the default social preview image.
	Image string
	// NoIndex asks crawlers to skip the page.
	NoIndex bool
}

// OpenGraph holds og:* properties.
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Type        string
	Locale      string
	Images      []string
}

// Twitter holds twitter:* card properties.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Images      []string
}

// Robots is the per-page robots directive.
type Robots struct {
	Index  bool
	Follow bool
}

// Content renders the robots meta content value.
func (r Robots) Content() string {
	index := "noindex"
	if r.Index {
		index = "index"
	}
	follow := "nofollow"
	if r.Follow {
		follow = "follow"
	}
	return index + ", " + follow
}

// Metadata is the structured head description consumed by the layout.
type Metadata struct {
	Title        string
	Description  string
	Keywords     []string
	CanonicalURL string
	OpenGraph    OpenGraph
	Twitter      Twitter
	Robots       Robots
}

// KeywordsContent joins keywords for the keywords meta tag.
func (m Metadata) KeywordsContent() string {
	return strings.Join(m.Keywords, ", ")
}

// Site carries the defaults shared by every page.
type Site struct {
	BaseURL            string
	Name               string
	DefaultTitle       string
	DefaultDescription string
	DefaultKeywords    []string
	DefaultImage       string
	Locale             string
}

// Generate builds page metadata from cfg.
//
// Non-empty Title and Description are used verbatim. Empty fields fall back
// to the site defaults, an empty URL resolves to the site root, and absolute
// http(s) URLs are used as the canonical URL unchanged.
func (s Site) Generate(cfg Config) Metadata {
	title := cfg.Title
	if strings.TrimSpace(title) == "" {
		title = s.DefaultTitle
	}
	description := cfg.Description
	if strings.TrimSpace(description) == "" {
		description = s.DefaultDescription
	}
	keywords := cleanKeywords(cfg.Keywords)
	if len(keywords) == 0 {
		keywords = cleanKeywords(s.DefaultKeywords)
	}
	canonical := s.AbsoluteURL(cfg.URL)

	image := strings.TrimSpace(cfg.Image)
	if image == "" {
		image = s.DefaultImage
	}
	var images []string
	if image != "" {
		images = []string{s.AbsoluteURL(image)}
	}

	return Metadata{
		Title:        title,
		Description:  description,
		Keywords:     keywords,
		CanonicalURL: canonical,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         canonical,
			SiteName:    s.Name,
			Type:        "website",
			Locale:      OpenGraphLocale(s.Locale),
			Images:      images,
		},
		Twitter: Twitter{
			Card:        "summary_large_image",
			Title:       title,
			Description: description,
			Images:      images,
		},
		Robots: Robots{Index: !cfg.NoIndex, Follow: !cfg.NoIndex},
	}
}

// AbsoluteURL resolves a site-relative path against the base URL.
func (s Site) AbsoluteURL(path string) string {
	path = strings.TrimSpace(path)
	if isAbsoluteHTTP(path) {
		return path
	}
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(strings.TrimSpace(s.BaseURL), "/") + path
}

func isAbsoluteHTTP(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

func cleanKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			out = append(out, keyword)
		}
	}
	return out
}

// OpenGraphLocale converts a BCP 47 tag (en-US) to the og:locale form (en_US).
func OpenGraphLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "-", "_")
}
