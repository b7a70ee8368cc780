package templates

import (
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	h "maragu.dev/gomponents/html"
)

// InputProps configures Input. Type "textarea" renders a multi-line field.
type InputProps struct {
	Label       string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Error       string
	Class       string
}

// Input renders a labelled form control with an optional error message.
func Input(props InputProps) g.Node {
	id := "field-" + props.Name
	invalid := props.Error != ""
	control := c.Classes{
		"block w-full rounded-md border px-3 py-2 text-slate-900 shadow-sm focus:outline-none focus:ring-2": true,
		"border-slate-300 focus:ring-amber-500": !invalid,
		"border-red-500 focus:ring-red-500":     invalid,
	}
	attrs := g.Group{
		h.ID(id),
		h.Name(props.Name),
		control,
		g.If(props.Placeholder != "", h.Placeholder(props.Placeholder)),
		g.If(props.Required, h.Required()),
		g.If(invalid, g.Attr("aria-invalid", "true")),
		g.If(invalid, g.Attr("aria-describedby", id+"-error")),
	}

	var field g.Node
	if props.Type == "textarea" {
		field = h.Textarea(attrs, g.Attr("rows", "6"), g.Text(props.Value))
	} else {
		kind := props.Type
		if kind == "" {
			kind = "text"
		}
		field = h.Input(attrs, h.Type(kind), h.Value(props.Value))
	}

	return h.Div(
		c.Classes{"space-y-1": true, props.Class: props.Class != ""},
		h.Label(h.For(id), h.Class("block text-sm font-medium text-slate-700"),
			g.Text(props.Label),
			g.If(props.Required, h.Span(h.Class("text-red-600"), g.Attr("aria-hidden", "true"), g.Text(" *"))),
		),
		field,
		g.If(invalid, h.P(h.ID(id+"-error"), h.Class("text-sm text-red-600"), g.Text(props.Error))),
	)
}
