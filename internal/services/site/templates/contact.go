package templates

import (
	platformi18n "github.com/northlinerail/website/internal/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/routepath"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ContactValues holds submitted or prefilled contact form values.
type ContactValues struct {
	Kind       string
	Name       string
	Email      string
	Phone      string
	Company    string
	PartNumber string
	Message    string
}

// ContactFormProps configures ContactForm.
type ContactFormProps struct {
	Loc    platformi18n.Localizer
	Values ContactValues
	// Errors maps field names to localized messages.
	Errors map[string]string
	// Kinds lists selectable inquiry kinds in display order.
	Kinds []string
}

// ContactForm renders the inquiry form. It posts to the contact API and
// replaces itself with the response fragment when HTMX is present.
func ContactForm(props ContactFormProps) g.Node {
	t := func(key string) string {
		if props.Loc == nil {
			return key
		}
		return props.Loc.Sprintf(key)
	}
	v := props.Values
	return h.Form(
		h.ID("contact-form"),
		h.Method("post"),
		h.Action(routepath.APIContact),
		g.Attr("hx-post", routepath.APIContact),
		g.Attr("hx-target", "this"),
		g.Attr("hx-swap", "outerHTML"),
		h.Class("mt-10 grid max-w-3xl gap-6 md:grid-cols-2"),
		g.Attr("novalidate"),
		g.If(len(props.Errors) > 0,
			h.Div(h.Class("rounded-md bg-red-50 p-4 text-sm text-red-700 md:col-span-2"), g.Attr("role", "alert"), g.Text(t("form.error_summary"))),
		),
		h.Div(h.Class("space-y-1 md:col-span-2"),
			h.Label(h.For("field-kind"), h.Class("block text-sm font-medium text-slate-700"), g.Text(t("form.kind"))),
			h.Select(h.ID("field-kind"), h.Name("kind"), h.Class("block w-full rounded-md border border-slate-300 px-3 py-2"),
				g.Map(props.Kinds, func(kind string) g.Node {
					return h.Option(h.Value(kind), g.If(kind == v.Kind, h.Selected()), g.Text(t("form.kind_"+kind)))
				}),
			),
			g.If(props.Errors["kind"] != "", h.P(h.Class("text-sm text-red-600"), g.Text(props.Errors["kind"]))),
		),
		Input(InputProps{Label: t("form.name"), Name: "name", Value: v.Name, Required: true, Error: props.Errors["name"]}),
		Input(InputProps{Label: t("form.email"), Name: "email", Type: "email", Value: v.Email, Required: true, Error: props.Errors["email"]}),
		Input(InputProps{Label: t("form.phone"), Name: "phone", Type: "tel", Value: v.Phone, Error: props.Errors["phone"]}),
		Input(InputProps{Label: t("form.company"), Name: "company", Value: v.Company, Error: props.Errors["company"]}),
		Input(InputProps{Label: t("form.part_number"), Name: "part_number", Value: v.PartNumber, Error: props.Errors["part_number"], Class: "md:col-span-2"}),
		Input(InputProps{Label: t("form.message"), Name: "message", Type: "textarea", Value: v.Message, Required: true, Error: props.Errors["message"], Class: "md:col-span-2"}),
		h.Div(h.Class("md:col-span-2"),
			h.Button(h.Type("submit"), h.Class("rounded-md bg-amber-500 px-6 py-3 font-semibold text-slate-900 hover:bg-amber-400"), g.Text(t("form.submit"))),
		),
	)
}

// ContactSuccess replaces the form after an HTMX submission.
func ContactSuccess(message string) g.Node {
	return h.Div(
		h.ID("contact-form"),
		h.Class("mt-10 max-w-3xl rounded-md bg-green-50 p-6 text-green-800"),
		g.Attr("role", "status"),
		g.Text(message),
	)
}

// ContactPage renders the contact page body around form.
func ContactPage(heading, intro string, form g.Node) g.Node {
	return Container("py-16",
		PageHeading(heading, intro),
		form,
	)
}
