// Package branding holds the business identity shared by every surface.
package branding

const (
	// AppName is the public business name.
	AppName = "Northline Rail"
	// LegalName is used in footers and outgoing email.
	LegalName = "Northline Rail Services LLC"
	// Tagline is the default page description.
	Tagline = "Locomotive parts, overhauls, and field service for short lines, industrial fleets, and Class I railroads."
	// DefaultSiteURL is used when no site URL is configured.
	DefaultSiteURL = "https://www.northlinerail.com"
	// PriorityPhone is the 24/7 breakdown line.
	PriorityPhone = "+1-800-555-0142"
	// SalesEmail receives inquiries when no recipients are configured.
	SalesEmail = "sales@northlinerail.com"
	// ThemeColor is the primary brand color.
	ThemeColor = "#0f2a4a"
	// BackgroundColor is the installable app background.
	BackgroundColor = "#ffffff"
	// DefaultSocialImage is the site-relative Open Graph image.
	DefaultSocialImage = "/static/images/og-default.svg"
)

// DefaultKeywords are used for pages that do not declare their own.
func DefaultKeywords() []string {
	return []string{
		"locomotive parts",
		"locomotive services",
		"railway parts",
		"rail fleet maintenance",
	}
}
