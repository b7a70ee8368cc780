package templates

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// CardVariant selects card styling.
type CardVariant string

const (
	CardDefault     CardVariant = "default"
	CardTestimonial CardVariant = "testimonial"
)

// CardProps configures Card.
type CardProps struct {
	Variant CardVariant
	Title   string
	Class   string
}

// Card renders a bordered content panel. The testimonial variant adds a
// left accent border.
func Card(props CardProps, content ...g.Node) g.Node {
	testimonial := props.Variant == CardTestimonial
	return h.Div(
		c.Classes{
			"rounded-lg bg-white p-6 shadow-sm":       true,
			"border border-slate-200":                 !testimonial,
			"border-l-4 border-amber-500 bg-slate-50": testimonial,
			props.Class:                               props.Class != "",
		},
		g.If(testimonial, g.Attr("data-variant", string(CardTestimonial))),
		g.If(props.Title != "", h.H3(h.Class("mb-2 text-lg font-semibold text-slate-900"), g.Text(props.Title))),
		g.If(testimonial, h.BlockQuote(h.Class("italic text-slate-700"), g.Group(content))),
		g.If(!testimonial, g.Group(content)),
	)
}
