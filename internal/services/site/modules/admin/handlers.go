package admin

import (
	"net/http"

	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/module"
	apperrors "github.com/northlinerail/website/internal/services/site/platform/errors"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/platform/weberror"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"github.com/northlinerail/website/internal/services/site/storage"
	"github.com/northlinerail/website/internal/services/site/templates"
)

// inquiryLimit caps the admin listing.
const inquiryLimit = 100

type handlers struct {
	base   module.Base
	reader storage.InquiryReader
	errors weberror.Writer
}

func newHandlers(base module.Base, reader storage.InquiryReader) handlers {
	return handlers{
		base:   base,
		reader: reader,
		errors: weberror.Writer{Renderer: base.Renderer, SEO: base.SEO, Logger: base.Logger},
	}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.AdminInquiries, http.StatusFound)
}

func (h handlers) handleInquiries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.reader.ListInquiries(r.Context(), inquiryLimit)
	if err != nil {
		h.errors.WriteError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "list inquiries", err))
		return
	}
	rows := make([]templates.InquiryRow, 0, len(summaries))
	for _, summary := range summaries {
		inq := summary.Inquiry
		status := string(summary.MailStatus)
		if summary.MailError != "" {
			status += ": " + summary.MailError
		}
		rows = append(rows, templates.InquiryRow{
			ID:         inq.ID,
			Kind:       string(inq.Kind),
			Name:       inq.Name,
			Email:      inq.Email,
			Company:    inq.Company,
			PartNumber: inq.PartNumber,
			Message:    inq.Message,
			CreatedAt:  inq.CreatedAt,
			MailStatus: status,
		})
	}
	meta := h.base.SEO.Generate(seo.Config{
		Title:       "Inquiries | " + h.base.SEO.Name,
		Description: "Recent contact form submissions.",
		URL:         routepath.AdminInquiries,
		NoIndex:     true,
	})
	w.Header().Set("Cache-Control", "no-store")
	err = h.base.Renderer.WritePage(w, r, pagerender.Page{
		Meta: meta,
		Body: templates.Component(templates.AdminInquiries(rows)),
	})
	if err != nil {
		h.errors.WriteError(w, r, apperrors.Wrap(apperrors.KindUnknown, "render inquiries", err))
	}
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.errors.NotFound(w, r)
}
