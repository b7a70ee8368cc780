package templates

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Image describes a responsive image.
type Image struct {
	Src    string
	SrcSet string
	Sizes  string
	Alt    string
	Width  int
	Height int
}

// HeroProps configures Hero.
type HeroProps struct {
	Title    string
	Subtitle string
	CTALabel string
	CTAHref  string
	Image    *Image
}

// Hero renders the page-leading banner.
func Hero(props HeroProps) g.Node {
	return h.Section(
		h.Class("relative overflow-hidden bg-slate-900 text-white"),
		g.If(props.Image != nil, heroImage(props.Image)),
		Container("relative py-20 sm:py-28",
			h.H1(h.Class("max-w-3xl text-4xl font-bold tracking-tight sm:text-5xl"), g.Text(props.Title)),
			g.If(props.Subtitle != "", h.P(h.Class("mt-6 max-w-2xl text-lg text-slate-200"), g.Text(props.Subtitle))),
			g.If(props.CTALabel != "" && props.CTAHref != "",
				h.A(
					h.Href(props.CTAHref),
					h.Class("mt-10 inline-flex items-center rounded-md bg-amber-500 px-6 py-3 font-semibold text-slate-900 hover:bg-amber-400"),
					g.Text(props.CTALabel),
				),
			),
		),
	)
}

func heroImage(img *Image) g.Node {
	return h.Img(
		h.Src(img.Src),
		h.Alt(img.Alt),
		h.Class("absolute inset-0 h-full w-full object-cover opacity-30"),
		g.If(img.SrcSet != "", g.Attr("srcset", img.SrcSet)),
		g.If(img.Sizes != "", g.Attr("sizes", img.Sizes)),
		g.If(img.Width > 0, h.Width(strconv.Itoa(img.Width))),
		g.If(img.Height > 0, h.Height(strconv.Itoa(img.Height))),
		g.Attr("fetchpriority", "high"),
		g.Attr("decoding", "async"),
	)
}
