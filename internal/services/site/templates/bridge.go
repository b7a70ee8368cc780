// Package templates renders the site's markup.
//
// Components are built with gomponents and exposed to handlers as
// templ.Component values so layouts can compose page bodies through templ's
// children context.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
)

// Component adapts a gomponents node to templ.
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if node == nil {
			return nil
		}
		return node.Render(w)
	})
}

// Embed renders a templ component inside a gomponents tree using ctx.
func Embed(ctx context.Context, component templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		if component == nil {
			return nil
		}
		return component.Render(ctx, w)
	})
}

// children renders the templ children attached to ctx.
func children(ctx context.Context) g.Node {
	return Embed(ctx, templ.GetChildren(ctx))
}
