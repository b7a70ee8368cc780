package inquiries

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/platform/requestmeta"
	"github.com/northlinerail/website/internal/services/site/routepath"
)

type fakeSubmitter struct {
	calls      []inquiry.Submission
	remoteAddr string
	err        error
}

func (f *fakeSubmitter) Submit(_ context.Context, sub inquiry.Submission, remoteAddr string) (inquiry.Inquiry, error) {
	f.calls = append(f.calls, sub)
	f.remoteAddr = remoteAddr
	if f.err != nil {
		return inquiry.Inquiry{}, f.err
	}
	if _, err := inquiry.Validate(sub); err != nil {
		return inquiry.Inquiry{}, err
	}
	return inquiry.Inquiry{ID: "inq-1", Kind: inquiry.KindQuote}, nil
}

func newHandler(t *testing.T, submitter Submitter) http.Handler {
	t.Helper()
	base := module.Base{
		Renderer: pagerender.Renderer{SiteName: "Northline Rail", LegalName: "Northline Rail Services LLC", Now: func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }},
		SEO:      seo.Site{BaseURL: "https://www.northlinerail.com", Name: "Northline Rail"},
	}
	mount, err := New(base, submitter, requestmeta.SchemePolicy{}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func validForm() url.Values {
	return url.Values{
		"kind":        {"quote"},
		"name":        {"Dana Reyes"},
		"email":       {"dana@shortline.example"},
		"company":     {"Prairie Short Line"},
		"part_number": {"D78-1142"},
		"message":     {"Need two exchange traction motors."},
	}
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, routepath.APIContact, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	return req
}

func TestContactPagePrefillsKind(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newHandler(t, &fakeSubmitter{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.ContactWithKind("service"), nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `<option value="service" selected>`) {
		t.Fatalf("service kind not preselected: %s", body)
	}
	if !strings.Contains(body, "<title>Contact Us | Northline Rail</title>") {
		t.Fatal("contact page missing registered title")
	}
}

func TestFormPostRedirectsToThanks(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	rr := httptest.NewRecorder()
	newHandler(t, submitter).ServeHTTP(rr, formRequest(validForm()))
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.ContactThanks {
		t.Fatalf("Location = %q, want %q", got, routepath.ContactThanks)
	}
	want := inquiry.Submission{
		Kind:       "quote",
		Name:       "Dana Reyes",
		Email:      "dana@shortline.example",
		Company:    "Prairie Short Line",
		PartNumber: "D78-1142",
		Message:    "Need two exchange traction motors.",
	}
	if diff := cmp.Diff([]inquiry.Submission{want}, submitter.calls); diff != "" {
		t.Fatalf("submissions mismatch (-want +got):\n%s", diff)
	}
	if submitter.remoteAddr != "192.0.2.1" {
		t.Fatalf("remote addr = %q, want 192.0.2.1", submitter.remoteAddr)
	}
}

func TestFormPostWithoutOriginIsForbidden(t *testing.T) {
	t.Parallel()

	submitter := &fakeSubmitter{}
	req := formRequest(validForm())
	req.Header.Set("Origin", "https://attacker.example")
	rr := httptest.NewRecorder()
	newHandler(t, submitter).ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
	if len(submitter.calls) != 0 {
		t.Fatal("cross-origin post reached the submitter")
	}
}

func TestInvalidFormPostRerendersPage(t *testing.T) {
	t.Parallel()

	values := validForm()
	values.Set("email", "not-an-address")
	rr := httptest.NewRecorder()
	newHandler(t, &fakeSubmitter{}).ServeHTTP(rr, formRequest(values))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<html", "Enter a valid email address.", `value="Dana Reyes"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestHTMXPostReturnsFragments(t *testing.T) {
	t.Parallel()

	handler := newHandler(t, &fakeSubmitter{})

	req := formRequest(validForm())
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("success status = %d, want %d", rr.Code, http.StatusOK)
	}
	if body := rr.Body.String(); strings.Contains(body, "<html") || !strings.Contains(body, `role="status"`) {
		t.Fatalf("success fragment = %s", body)
	}

	values := validForm()
	values.Del("message")
	req = formRequest(values)
	req.Header.Set("HX-Request", "true")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if body := rr.Body.String(); strings.Contains(body, "<html") || !strings.Contains(body, `id="contact-form"`) || !strings.Contains(body, "This field is required.") {
		t.Fatalf("invalid fragment = %s", body)
	}
}

func TestJSONSubmission(t *testing.T) {
	t.Parallel()

	handler := newHandler(t, &fakeSubmitter{})
	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, routepath.APIContact, strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	rr := post(`{"kind":"quote","name":"Dana","email":"dana@shortline.example","message":"Quote please"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	var created map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil || created["id"] != "inq-1" {
		t.Fatalf("created body = %s (%v)", rr.Body.String(), err)
	}

	rr = post(`{"kind":"freight","name":"","email":"dana@shortline.example","message":"x"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	var invalid struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &invalid); err != nil {
		t.Fatalf("unmarshal errors: %v", err)
	}
	want := map[string]string{"kind": inquiry.CodeKind, "name": inquiry.CodeRequired}
	if diff := cmp.Diff(want, invalid.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	rr = post(`{"name":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestStoreFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, routepath.APIContact, strings.NewReader(`{"name":"Dana","email":"dana@shortline.example","message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newHandler(t, &fakeSubmitter{err: errors.New("database is locked")}).ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
	if strings.Contains(rr.Body.String(), "database is locked") {
		t.Fatal("response leaks the internal error")
	}
}

func TestContactAPIRejectsGet(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	newHandler(t, &fakeSubmitter{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.APIContact, nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestMountRequiresSubmitter(t *testing.T) {
	t.Parallel()

	if _, err := New(module.Base{}, nil, requestmeta.SchemePolicy{}).Mount(); err == nil {
		t.Fatal("Mount() error = nil, want missing submitter error")
	}
}
