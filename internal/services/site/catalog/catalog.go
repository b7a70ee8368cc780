// Package catalog loads the embedded product, service, and testimonial data.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Entry is one product category or service offering.
type Entry struct {
	Slug       string   `yaml:"slug"`
	Name       string   `yaml:"name"`
	Summary    string   `yaml:"summary"`
	Image      string   `yaml:"image"`
	Highlights []string `yaml:"highlights"`
}

// Testimonial is a customer quote.
type Testimonial struct {
	Quote  string `yaml:"quote"`
	Author string `yaml:"author"`
}

// Catalog is the site's static offering data.
type Catalog struct {
	Products     []Entry
	Services     []Entry
	Testimonials []Testimonial
}

type entryFile struct {
	Kind    string  `yaml:"kind"`
	Entries []Entry `yaml:"entries"`
}

type testimonialFile struct {
	Kind    string        `yaml:"kind"`
	Entries []Testimonial `yaml:"entries"`
}

// LoadEmbedded parses the catalog shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(embedded, "data")
}

// Load parses products.yaml, services.yaml, and testimonials.yaml from root.
func Load(fsys fs.FS, root string) (*Catalog, error) {
	products, err := loadEntries(fsys, root, "products")
	if err != nil {
		return nil, err
	}
	services, err := loadEntries(fsys, root, "services")
	if err != nil {
		return nil, err
	}
	var testimonials testimonialFile
	if err := decode(fsys, root, "testimonials", &testimonials); err != nil {
		return nil, err
	}
	return &Catalog{Products: products, Services: services, Testimonials: testimonials.Entries}, nil
}

// Product returns the product category with slug.
func (c *Catalog) Product(slug string) (Entry, bool) {
	return find(c.Products, slug)
}

// Service returns the service offering with slug.
func (c *Catalog) Service(slug string) (Entry, bool) {
	return find(c.Services, slug)
}

// Featured returns up to n product categories for the home page.
func (c *Catalog) Featured(n int) []Entry {
	if n > len(c.Products) {
		n = len(c.Products)
	}
	out := make([]Entry, n)
	copy(out, c.Products[:n])
	return out
}

func find(entries []Entry, slug string) (Entry, bool) {
	for _, entry := range entries {
		if entry.Slug == slug {
			return entry, true
		}
	}
	return Entry{}, false
}

func loadEntries(fsys fs.FS, root, kind string) ([]Entry, error) {
	var file entryFile
	if err := decode(fsys, root, kind, &file); err != nil {
		return nil, err
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("catalog %s: no entries", kind)
	}
	seen := make(map[string]struct{}, len(file.Entries))
	for idx, entry := range file.Entries {
		if !slugPattern.MatchString(entry.Slug) {
			return nil, fmt.Errorf("catalog %s[%d]: invalid slug %q", kind, idx, entry.Slug)
		}
		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("catalog %s[%d]: name is required", kind, idx)
		}
		if _, dup := seen[entry.Slug]; dup {
			return nil, fmt.Errorf("catalog %s: duplicate slug %q", kind, entry.Slug)
		}
		seen[entry.Slug] = struct{}{}
	}
	return file.Entries, nil
}

func decode(fsys fs.FS, root, kind string, target any) error {
	name := kind + ".yaml"
	if root != "" {
		name = root + "/" + name
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", kind, err)
	}
	var header struct {
		Kind string `yaml:"kind"`
	}
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return fmt.Errorf("parse catalog %s: %w", kind, err)
	}
	if header.Kind != kind {
		return fmt.Errorf("catalog %s: kind %q does not match file", kind, header.Kind)
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("parse catalog %s: %w", kind, err)
	}
	return nil
}
