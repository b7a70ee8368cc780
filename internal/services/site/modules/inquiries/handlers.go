package inquiries

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	platformi18n "github.com/northlinerail/website/internal/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/module"
	apperrors "github.com/northlinerail/website/internal/services/site/platform/errors"
	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	sitei18n "github.com/northlinerail/website/internal/services/site/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/platform/requestmeta"
	"github.com/northlinerail/website/internal/services/site/platform/weberror"
	"github.com/northlinerail/website/internal/services/site/pagedef"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"github.com/northlinerail/website/internal/services/site/templates"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

type handlers struct {
	base      module.Base
	submitter Submitter
	policy    requestmeta.SchemePolicy
	errors    weberror.Writer
}

func newHandlers(base module.Base, submitter Submitter, policy requestmeta.SchemePolicy) handlers {
	return handlers{
		base:      base,
		submitter: submitter,
		policy:    policy,
		errors:    weberror.Writer{Renderer: base.Renderer, SEO: base.SEO, Logger: base.Logger},
	}
}

func (h handlers) handleContactPage(w http.ResponseWriter, r *http.Request) {
	values := templates.ContactValues{Kind: string(inquiry.KindGeneral)}
	if kind, ok := inquiry.ParseKind(r.URL.Query().Get("kind")); ok {
		values.Kind = string(kind)
	}
	h.writeContactPage(w, r, http.StatusOK, values, nil)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	jsonBody := isJSONBody(r)
	if !jsonBody && !requestmeta.HasSameOriginProof(r, h.policy) {
		h.writeFailure(w, r, apperrors.E(apperrors.KindForbidden, "cross-origin form post rejected"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	sub, err := decodeSubmission(r, jsonBody)
	if err != nil {
		h.writeFailure(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "malformed submission", err))
		return
	}

	created, err := h.submitter.Submit(r.Context(), sub, remoteHost(r))
	var invalid *inquiry.ValidationError
	switch {
	case errors.As(err, &invalid):
		h.writeInvalid(w, r, sub, invalid.Fields)
		return
	case err != nil:
		h.writeFailure(w, r, apperrors.Wrap(apperrors.KindUnavailable, "submit inquiry", err))
		return
	}

	h.logger().Info("inquiry received",
		zap.String("inquiry_id", created.ID),
		zap.String("kind", string(created.Kind)),
		zap.String("request_id", httpx.RequestIDFrom(r)),
	)
	loc := sitei18n.Localizer(r)
	switch {
	case httpx.WantsJSON(r):
		_ = httpx.WriteJSON(w, http.StatusCreated, map[string]string{"id": created.ID})
	case httpx.IsHTMXRequest(r):
		if err := pagerender.WriteFragment(w, r, http.StatusOK, templates.Component(templates.ContactSuccess(loc.Sprintf("form.success")))); err != nil {
			h.logger().Error("render contact success", zap.Error(err))
		}
	default:
		httpx.WriteRedirect(w, r, routepath.ContactThanks, http.StatusSeeOther)
	}
}

func (h handlers) writeInvalid(w http.ResponseWriter, r *http.Request, sub inquiry.Submission, fields map[string]string) {
	if httpx.WantsJSON(r) {
		_ = httpx.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
		return
	}
	values := contactValues(sub.Normalize())
	messages := localizeFields(sitei18n.Localizer(r), fields)
	if httpx.IsHTMXRequest(r) {
		form := templates.ContactForm(h.formProps(r, values, messages))
		if err := pagerender.WriteFragment(w, r, http.StatusUnprocessableEntity, templates.Component(form)); err != nil {
			h.logger().Error("render contact form", zap.Error(err))
		}
		return
	}
	h.writeContactPage(w, r, http.StatusUnprocessableEntity, values, messages)
}

func (h handlers) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if !httpx.WantsJSON(r) {
		h.errors.WriteError(w, r, err)
		return
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger().Error("contact submission failed",
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	_ = httpx.WriteJSONError(w, status, weberror.PublicMessage(sitei18n.Localizer(r), err))
}

func (h handlers) writeContactPage(w http.ResponseWriter, r *http.Request, status int, values templates.ContactValues, messages map[string]string) {
	page := pagedef.MustLookup(routepath.Contact)
	body := templates.ContactPage(page.Heading, page.Intro, templates.ContactForm(h.formProps(r, values, messages)))
	err := h.base.Renderer.WritePage(w, r, pagerender.Page{
		Meta:       h.base.SEO.Generate(page.SEO),
		StatusCode: status,
		Body:       templates.Component(body),
	})
	if err != nil {
		h.errors.WriteError(w, r, apperrors.Wrap(apperrors.KindUnknown, "render contact page", err))
	}
}

func (h handlers) formProps(r *http.Request, values templates.ContactValues, messages map[string]string) templates.ContactFormProps {
	kinds := make([]string, 0, len(inquiry.Kinds()))
	for _, kind := range inquiry.Kinds() {
		kinds = append(kinds, string(kind))
	}
	return templates.ContactFormProps{
		Loc:    sitei18n.Localizer(r),
		Values: values,
		Errors: messages,
		Kinds:  kinds,
	}
}

func (h handlers) logger() *zap.Logger {
	if h.base.Logger == nil {
		return zap.NewNop()
	}
	return h.base.Logger
}

func decodeSubmission(r *http.Request, jsonBody bool) (inquiry.Submission, error) {
	var sub inquiry.Submission
	if jsonBody {
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&sub); err != nil {
			return inquiry.Submission{}, err
		}
		return sub, nil
	}
	if err := r.ParseForm(); err != nil {
		return inquiry.Submission{}, err
	}
	return inquiry.Submission{
		Kind:       r.PostForm.Get("kind"),
		Name:       r.PostForm.Get("name"),
		Email:      r.PostForm.Get("email"),
		Phone:      r.PostForm.Get("phone"),
		Company:    r.PostForm.Get("company"),
		PartNumber: r.PostForm.Get("part_number"),
		Message:    r.PostForm.Get("message"),
	}, nil
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

func contactValues(sub inquiry.Submission) templates.ContactValues {
	return templates.ContactValues{
		Kind:       sub.Kind,
		Name:       sub.Name,
		Email:      sub.Email,
		Phone:      sub.Phone,
		Company:    sub.Company,
		PartNumber: sub.PartNumber,
		Message:    sub.Message,
	}
}

func localizeFields(loc platformi18n.Localizer, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for field, code := range fields {
		out[field] = loc.Sprintf("form.error." + code)
	}
	return out
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
