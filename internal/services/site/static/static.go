// Package static embeds the site's stylesheets, scripts, images, and icons.
package static

import "embed"

// FS exposes site static assets for HTTP serving. Paths are relative to
// /static/, for example images/hero.svg.
//
//go:embed css js images icons
var FS embed.FS
