package templates

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	productsPlaceholders = 6
	servicesPlaceholders = 4
)

// ProductsLoading renders the product grid skeleton.
func ProductsLoading(label string) g.Node {
	return h.Div(
		h.Class("grid gap-6 sm:grid-cols-2 lg:grid-cols-3"),
		g.Attr("role", "status"),
		g.Attr("aria-busy", "true"),
		h.Span(h.Class("sr-only"), g.Text(label)),
		placeholders(productsPlaceholders, productPlaceholder),
	)
}

// ServicesLoading renders the services list skeleton.
func ServicesLoading(label string) g.Node {
	return h.Div(
		h.Class("grid gap-6 md:grid-cols-2"),
		g.Attr("role", "status"),
		g.Attr("aria-busy", "true"),
		h.Span(h.Class("sr-only"), g.Text(label)),
		placeholders(servicesPlaceholders, servicePlaceholder),
	)
}

func placeholders(n int, block func() g.Node) g.Node {
	nodes := make(g.Group, 0, n)
	for range n {
		nodes = append(nodes, block())
	}
	return nodes
}

func productPlaceholder() g.Node {
	return h.Div(
		h.Class("animate-pulse rounded-lg border border-slate-200 p-4"),
		g.Attr("data-placeholder", "product"),
		h.Div(h.Class("mb-4 h-40 rounded bg-slate-200")),
		h.Div(h.Class("mb-2 h-4 w-3/4 rounded bg-slate-200")),
		h.Div(h.Class("h-4 w-1/2 rounded bg-slate-200")),
	)
}

func servicePlaceholder() g.Node {
	return h.Div(
		h.Class("animate-pulse rounded-lg border border-slate-200 p-6"),
		g.Attr("data-placeholder", "service"),
		h.Div(h.Class("mb-4 h-6 w-1/3 rounded bg-slate-200")),
		h.Div(h.Class("mb-2 h-4 rounded bg-slate-200")),
		h.Div(h.Class("mb-2 h-4 rounded bg-slate-200")),
		h.Div(h.Class("h-4 w-2/3 rounded bg-slate-200")),
	)
}
