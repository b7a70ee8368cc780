package metadata

import "github.com/northlinerail/website/internal/services/site/routepath"

// Manifest is the web app manifest document.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Categories      []string       `json:"categories"`
	Icons           []ManifestIcon `json:"icons"`
}

// ManifestIcon is one manifest icon entry.
type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

// BuildManifest returns the manifest for identity.
func BuildManifest(identity Identity) Manifest {
	shortName := identity.ShortName
	if shortName == "" {
		shortName = identity.Name
	}
	return Manifest{
		Name:            identity.Name,
		ShortName:       shortName,
		Description:     identity.Description,
		StartURL:        routepath.Root,
		Display:         "standalone",
		BackgroundColor: identity.BackgroundColor,
		ThemeColor:      identity.ThemeColor,
		Categories:      []string{"business", "shopping", "transportation"},
		Icons: []ManifestIcon{
			{Src: "/static/icons/icon-192.png", Sizes: "192x192", Type: "image/png"},
			{Src: "/static/icons/icon-512.png", Sizes: "512x512", Type: "image/png"},
			{Src: "/static/icons/icon-maskable-512.png", Sizes: "512x512", Type: "image/png", Purpose: "maskable"},
		},
	}
}
