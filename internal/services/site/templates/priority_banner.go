package templates

import (
	"strings"

	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// PriorityBannerProps configures PriorityBanner.
type PriorityBannerProps struct {
	Label     string
	Phone     string
	CallLabel string
	Class     string
}

// PriorityBanner renders the emergency service strip shown above the nav.
func PriorityBanner(props PriorityBannerProps) g.Node {
	return h.Div(
		c.Classes{"bg-amber-500 text-slate-900": true, props.Class: props.Class != ""},
		g.Attr("role", "region"),
		g.Attr("aria-label", props.Label),
		Container("flex flex-wrap items-center justify-center gap-x-4 gap-y-1 py-2 text-sm font-semibold",
			h.Span(g.Text(props.Label)),
			g.If(props.Phone != "",
				h.A(h.Href("tel:"+telephone(props.Phone)), h.Class("underline underline-offset-2"), g.Text(props.CallLabel)),
			),
		),
	)
}

// telephone strips formatting from a display phone number.
func telephone(display string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, display)
}
