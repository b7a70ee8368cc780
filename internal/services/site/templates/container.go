package templates

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// Container constrains content to the site's max width.
func Container(class string, content ...g.Node) g.Node {
	return h.Div(
		c.Classes{
			"mx-auto w-full max-w-7xl px-4 sm:px-6 lg:px-8": true,
			class: class != "",
		},
		g.Group(content),
	)
}
