package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	esMX := language.MustParse("es-MX")
	tests := []struct {
		name         string
		target       string
		cookie       string
		accept       string
		want         language.Tag
		wantExplicit bool
	}{
		{name: "default", target: "/", want: language.AmericanEnglish},
		{name: "accept language", target: "/", accept: "es-MX,es;q=0.9", want: esMX},
		{name: "generic spanish", target: "/", accept: "es", want: esMX},
		{name: "cookie beats header", target: "/", cookie: "es-MX", accept: "en-US", want: esMX},
		{name: "query beats cookie", target: "/?lang=en-US", cookie: "es-MX", want: language.AmericanEnglish, wantExplicit: true},
		{name: "unsupported query ignored", target: "/?lang=zz", accept: "es-MX", want: esMX},
		{name: "unsupported header", target: "/", accept: "ja-JP", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, explicit := ResolveTag(req)
			if got != tc.want {
				t.Fatalf("ResolveTag() = %v, want %v", got, tc.want)
			}
			if explicit != tc.wantExplicit {
				t.Fatalf("explicit = %v, want %v", explicit, tc.wantExplicit)
			}
		})
	}
}

func TestMiddlewareStoresTagAndSetsCookieForQuery(t *testing.T) {
	t.Parallel()

	var seen language.Tag
	h := Middleware(func(*http.Request) bool { return true })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TagFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?lang=es-MX", nil))
	if seen != language.MustParse("es-MX") {
		t.Fatalf("context tag = %v", seen)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != "es-MX" || !cookies[0].Secure {
		t.Fatalf("cookies = %+v", cookies)
	}
	if got := rr.Header().Get("Content-Language"); got != "es-MX" {
		t.Fatalf("Content-Language = %q", got)
	}
}

func TestMiddlewareLeavesCookieAloneWithoutQuery(t *testing.T) {
	t.Parallel()

	h := Middleware(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(rr.Result().Cookies()) != 0 {
		t.Fatal("expected no cookie without explicit language choice")
	}
}

func TestLocalizerUsesRequestLanguage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithTag(req.Context(), language.MustParse("es-MX")))
	if got := Localizer(req).Sprintf("nav.products"); got == "nav.products" || got == "" {
		t.Fatalf("expected translated nav label, got %q", got)
	}
}
