package metadata

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/pagedef"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap renders sitemap.xml for every indexable page.
func Sitemap(site seo.Site, pages []pagedef.Page, modified time.Time) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNamespace, URLs: make([]sitemapURL, 0, len(pages))}
	lastMod := ""
	if !modified.IsZero() {
		lastMod = modified.UTC().Format(time.DateOnly)
	}
	for _, page := range pages {
		if !page.Indexable() {
			continue
		}
		entry := sitemapURL{
			Loc:        site.AbsoluteURL(page.Path),
			LastMod:    lastMod,
			ChangeFreq: string(page.ChangeFreq),
		}
		if page.Priority > 0 {
			entry.Priority = strconv.FormatFloat(page.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, entry)
	}
	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
