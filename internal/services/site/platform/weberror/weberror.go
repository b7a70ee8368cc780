// Package weberror renders branded error responses for site modules.
package weberror

import (
	"net/http"
	"strings"

	platformi18n "github.com/northlinerail/website/internal/platform/i18n"
	"github.com/northlinerail/website/internal/platform/seo"
	apperrors "github.com/northlinerail/website/internal/services/site/platform/errors"
	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	sitei18n "github.com/northlinerail/website/internal/services/site/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/templates"
	"go.uber.org/zap"
)

// Writer renders error responses with the site chrome.
type Writer struct {
	Renderer pagerender.Renderer
	SEO      seo.Site
	Logger   *zap.Logger
}

// ShouldRenderPage reports whether status uses the branded error page.
func ShouldRenderPage(status int) bool {
	return status == http.StatusNotFound || status >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc platformi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

// NotFound writes the branded 404 page.
func (ew Writer) NotFound(w http.ResponseWriter, r *http.Request) {
	ew.WriteStatus(w, r, http.StatusNotFound)
}

// WriteError maps err to a status and writes the matching response.
func (ew Writer) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		ew.logger().Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	if !ShouldRenderPage(status) {
		http.Error(w, PublicMessage(sitei18n.Localizer(r), err), status)
		return
	}
	ew.WriteStatus(w, r, status)
}

// WriteStatus writes the branded error page for status.
func (ew Writer) WriteStatus(w http.ResponseWriter, r *http.Request, status int) {
	if !ShouldRenderPage(status) {
		http.Error(w, http.StatusText(status), status)
		return
	}
	loc := sitei18n.Localizer(r)
	titleKey, messageKey := "error.server_title", "error.server_message"
	if status == http.StatusNotFound {
		titleKey, messageKey = "error.not_found_title", "error.not_found_message"
	}
	title := loc.Sprintf(titleKey)
	meta := ew.SEO.Generate(seo.Config{
		Title:       title + " | " + ew.SEO.Name,
		Description: loc.Sprintf(messageKey),
		URL:         r.URL.Path,
		NoIndex:     true,
	})
	page := pagerender.Page{
		Meta:       meta,
		StatusCode: status,
		Body:       templates.Component(templates.ErrorBody(status, title, loc.Sprintf(messageKey), loc.Sprintf("error.back_home"))),
	}
	if err := ew.Renderer.WritePage(w, r, page); err != nil {
		ew.logger().Error("render error page", zap.Int("status", status), zap.Error(err))
		http.Error(w, http.StatusText(status), status)
	}
}

func (ew Writer) logger() *zap.Logger {
	if ew.Logger == nil {
		return zap.NewNop()
	}
	return ew.Logger
}
