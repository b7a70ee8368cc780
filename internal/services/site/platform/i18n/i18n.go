// Package i18n resolves the request language for site handlers.
package i18n

import (
	"context"
	"net/http"
	"time"

	platformi18n "github.com/northlinerail/website/internal/platform/i18n"
	"github.com/northlinerail/website/internal/services/site/platform/httpx"
	"golang.org/x/text/language"
)

const (
	// QueryParam switches language for the current and subsequent requests.
	QueryParam = "lang"
	// CookieName persists an explicit language choice.
	CookieName = "nlr_lang"

	cookieMaxAge = 365 * 24 * time.Hour
)

type contextKey struct{}

// ResolveTag picks the request language from the query, cookie, then
// Accept-Language header. The second result reports whether the choice came
// from the query string.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return platformi18n.DefaultTag(), false
	}
	if tag, ok := platformi18n.ParseTag(r.URL.Query().Get(QueryParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if tag, ok := platformi18n.ParseTag(cookie.Value); ok {
			return tag, false
		}
	}
	preferred, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return platformi18n.DefaultTag(), false
	}
	return platformi18n.MatchTags(preferred), false
}

// SetLanguageCookie persists tag for later requests.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware stores the resolved language on the request context and sets
// the language cookie when the query string selects one.
func Middleware(secure func(*http.Request) bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag, explicit := ResolveTag(r)
			if explicit {
				SetLanguageCookie(w, tag, secure != nil && secure(r))
			}
			w.Header().Add("Vary", "Accept-Language")
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(WithTag(r.Context(), tag)))
		})
	}
}

// WithTag returns ctx carrying tag.
func WithTag(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, contextKey{}, tag)
}

// TagFromContext returns the request language or the default.
func TagFromContext(ctx context.Context) language.Tag {
	if ctx == nil {
		return platformi18n.DefaultTag()
	}
	if tag, ok := ctx.Value(contextKey{}).(language.Tag); ok {
		return tag
	}
	return platformi18n.DefaultTag()
}

// Localizer returns a message printer for the request language.
func Localizer(r *http.Request) platformi18n.Localizer {
	return platformi18n.Printer(TagFromContext(httpx.RequestContext(r)))
}
