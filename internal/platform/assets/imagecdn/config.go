// Package imagecdn describes how site images are sized, encoded, and
// addressed, both for the local /_image endpoint and for external CDNs.
package imagecdn

import (
	"errors"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Supported output formats, most preferred first.
const (
	FormatAVIF = "image/avif"
	FormatWebP = "image/webp"
)

var (
	// ErrSourceRequired reports a request without a source path.
	ErrSourceRequired = errors.New("image source is required")
	// ErrSourceNotLocal reports a source outside the static image tree.
	ErrSourceNotLocal = errors.New("image source must be a local static image")
	// ErrWidthNotAllowed reports a width outside the configured buckets.
	ErrWidthNotAllowed = errors.New("image width is not an allowed size")
	// ErrQualityNotAllowed reports a quality outside the configured levels.
	ErrQualityNotAllowed = errors.New("image quality is not an allowed level")
)

// LocalImagePrefix is the only tree /_image will read from.
const LocalImagePrefix = "/static/images/"

// Config is the declarative image pipeline configuration.
type Config struct {
	Formats         []string
	DeviceSizes     []int
	ImageSizes      []int
	Qualities       []int
	DefaultQuality  int
	MinimumCacheTTL time.Duration
}

// DefaultConfig returns the site's image configuration.
func DefaultConfig() Config {
	return Config{
		Formats:         []string{FormatAVIF, FormatWebP},
		DeviceSizes:     []int{640, 750, 828, 1080, 1200, 1920, 2048, 3840},
		ImageSizes:      []int{16, 32, 48, 64, 96, 128, 256, 384},
		Qualities:       []int{60, 75, 90},
		DefaultQuality:  75,
		MinimumCacheTTL: 365 * 24 * time.Hour,
	}
}

// AllowsWidth reports whether width is a configured bucket.
func (c Config) AllowsWidth(width int) bool {
	return slices.Contains(c.DeviceSizes, width) || slices.Contains(c.ImageSizes, width)
}

// AllowsQuality reports whether quality is a configured level.
func (c Config) AllowsQuality(quality int) bool {
	return slices.Contains(c.Qualities, quality)
}

// Request is a validated /_image request.
type Request struct {
	Src     string
	Width   int
	Quality int
}

// ParseRequest validates url, w, and q query parameters.
// A missing q selects the default quality.
func (c Config) ParseRequest(values url.Values) (Request, error) {
	src := strings.TrimSpace(values.Get("url"))
	if src == "" {
		return Request{}, ErrSourceRequired
	}
	if !strings.HasPrefix(src, LocalImagePrefix) || strings.Contains(src, "..") {
		return Request{}, ErrSourceNotLocal
	}
	width, err := strconv.Atoi(strings.TrimSpace(values.Get("w")))
	if err != nil || !c.AllowsWidth(width) {
		return Request{}, ErrWidthNotAllowed
	}
	quality := c.DefaultQuality
	if raw := strings.TrimSpace(values.Get("q")); raw != "" {
		quality, err = strconv.Atoi(raw)
		if err != nil {
			return Request{}, ErrQualityNotAllowed
		}
	}
	if !c.AllowsQuality(quality) {
		return Request{}, ErrQualityNotAllowed
	}
	return Request{Src: src, Width: width, Quality: quality}, nil
}

// NegotiateFormat picks the first configured format the client accepts and
// available reports as present. It returns "" when only the original fits.
func (c Config) NegotiateFormat(accept string, available func(format string) bool) string {
	accept = strings.ToLower(accept)
	for _, format := range c.Formats {
		if !strings.Contains(accept, format) {
			continue
		}
		if available == nil || available(format) {
			return format
		}
	}
	return ""
}

// FormatExtension returns the file extension for a configured format.
func FormatExtension(format string) string {
	switch format {
	case FormatAVIF:
		return ".avif"
	case FormatWebP:
		return ".webp"
	default:
		return ""
	}
}
