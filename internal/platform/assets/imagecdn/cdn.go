package imagecdn

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// CDN builds image URLs for a delivery backend.
//
// An empty base routes through the local /_image endpoint. A Cloudinary
// upload base receives width and quality transforms. Any other base is a flat
// origin that ignores transforms.
type CDN struct {
	base   string
	config Config
}

// New returns a CDN for baseURL using cfg buckets.
func New(baseURL string, cfg Config) CDN {
	return CDN{base: strings.TrimRight(strings.TrimSpace(baseURL), "/"), config: cfg}
}

// Config returns the bucket configuration.
func (c CDN) Config() Config {
	return c.config
}

// URL returns the delivery URL for src at width and quality.
// A zero quality selects the configured default.
func (c CDN) URL(src string, width int, quality int) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", ErrSourceRequired
	}
	if !c.config.AllowsWidth(width) {
		return "", ErrWidthNotAllowed
	}
	if quality == 0 {
		quality = c.config.DefaultQuality
	}
	if !c.config.AllowsQuality(quality) {
		return "", ErrQualityNotAllowed
	}
	switch {
	case c.base == "":
		query := url.Values{}
		query.Set("url", src)
		query.Set("w", strconv.Itoa(width))
		query.Set("q", strconv.Itoa(quality))
		return "/_image?" + query.Encode(), nil
	case isCloudinary(c.base):
		return fmt.Sprintf("%s/f_auto,q_%d,c_limit,w_%d/%s", c.base, quality, width, strings.TrimPrefix(src, LocalImagePrefix)), nil
	default:
		return c.base + "/" + strings.TrimPrefix(src, LocalImagePrefix), nil
	}
}

// SrcSet returns a srcset listing every device size for src.
func (c CDN) SrcSet(src string) (string, error) {
	entries := make([]string, 0, len(c.config.DeviceSizes))
	for _, width := range c.config.DeviceSizes {
		resolved, err := c.URL(src, width, 0)
		if err != nil {
			return "", err
		}
		entries = append(entries, resolved+" "+strconv.Itoa(width)+"w")
	}
	return strings.Join(entries, ", "), nil
}

func isCloudinary(base string) bool {
	parsed, err := url.Parse(base)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Hostname(), "res.cloudinary.com")
}
