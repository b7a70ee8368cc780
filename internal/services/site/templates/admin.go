package templates

import (
	"time"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// InquiryRow is one line of the admin inquiry table.
type InquiryRow struct {
	ID         string
	Kind       string
	Name       string
	Email      string
	Company    string
	PartNumber string
	Message    string
	CreatedAt  time.Time
	MailStatus string
}

// AdminInquiries renders recent inquiries for staff.
func AdminInquiries(rows []InquiryRow) g.Node {
	return Container("py-12",
		h.H1(h.Class("text-2xl font-bold text-slate-900"), g.Text("Recent inquiries")),
		g.If(len(rows) == 0, h.P(h.Class("mt-6 text-slate-500"), g.Text("No inquiries yet."))),
		g.If(len(rows) > 0, h.Table(
			h.Class("mt-6 w-full table-auto text-left text-sm"),
			h.THead(h.Tr(
				h.Th(g.Text("Received")),
				h.Th(g.Text("Kind")),
				h.Th(g.Text("Name")),
				h.Th(g.Text("Email")),
				h.Th(g.Text("Company")),
				h.Th(g.Text("Part")),
				h.Th(g.Text("Message")),
				h.Th(g.Text("Mail")),
			)),
			h.TBody(g.Map(rows, func(row InquiryRow) g.Node {
				return h.Tr(
					h.ID("inquiry-"+row.ID),
					h.Class("border-t border-slate-200 align-top"),
					h.Td(g.Text(row.CreatedAt.UTC().Format(time.RFC3339))),
					h.Td(g.Text(row.Kind)),
					h.Td(g.Text(row.Name)),
					h.Td(h.A(h.Href("mailto:"+row.Email), g.Text(row.Email))),
					h.Td(g.Text(row.Company)),
					h.Td(g.Text(row.PartNumber)),
					h.Td(h.Class("max-w-md whitespace-pre-line"), g.Text(row.Message)),
					h.Td(g.Text(row.MailStatus)),
				)
			})),
		)),
	)
}
