package site

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/northlinerail/website/internal/platform/assets/imagecdn"
	"github.com/northlinerail/website/internal/platform/seo"
	siteapp "github.com/northlinerail/website/internal/services/site/app"
	"github.com/northlinerail/website/internal/services/site/catalog"
	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"github.com/northlinerail/website/internal/services/site/storage"
)

type stubSubmitter struct{}

func (stubSubmitter) Submit(context.Context, inquiry.Submission, string) (inquiry.Inquiry, error) {
	return inquiry.Inquiry{ID: "inq-1"}, nil
}

type stubReader struct{}

func (stubReader) ListInquiries(context.Context, int) ([]storage.InquirySummary, error) {
	return nil, nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cat, err := catalog.LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded() error = %v", err)
	}
	return Config{
		HTTPAddr:  "127.0.0.1:0",
		SEO:       seo.Site{BaseURL: "https://www.northlinerail.com", Name: "Northline Rail", DefaultTitle: "Northline Rail"},
		Images:    imagecdn.New("", imagecdn.DefaultConfig()),
		Catalog:   cat,
		Submitter: stubSubmitter{},
		Inquiries: stubReader{},
		Admin:     siteapp.Credentials{Username: "ops", Password: "s3cret"},
		Now:       func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func serve(t *testing.T, handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestNewHandlerServesComposedRoutes(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	tests := []struct {
		path string
		want int
	}{
		{path: routepath.Root, want: http.StatusOK},
		{path: routepath.About, want: http.StatusOK},
		{path: routepath.Contact, want: http.StatusOK},
		{path: routepath.Robots, want: http.StatusOK},
		{path: routepath.Sitemap, want: http.StatusOK},
		{path: routepath.Manifest, want: http.StatusOK},
		{path: routepath.Health, want: http.StatusOK},
		{path: "/static/css/site.css", want: http.StatusOK},
		{path: "/static/icons/icon-192.png", want: http.StatusOK},
		{path: "/static/images/", want: http.StatusNotFound},
		{path: routepath.AdminInquiries, want: http.StatusUnauthorized},
		{path: "/no-such-page", want: http.StatusNotFound},
	}
	for _, tc := range tests {
		rr := serve(t, handler, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rr.Code != tc.want {
			t.Fatalf("GET %s status = %d, want %d", tc.path, rr.Code, tc.want)
		}
	}
}

func TestNewHandlerAppliesSharedMiddleware(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := serve(t, handler, httptest.NewRequest(http.MethodGet, routepath.About+"?lang=es-MX", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing security headers")
	}
	if got := rr.Header().Get("Content-Language"); got != "es-MX" {
		t.Fatalf("Content-Language = %q, want es-MX", got)
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), "nlr_lang=es-MX") {
		t.Fatalf("Set-Cookie = %q", rr.Header().Get("Set-Cookie"))
	}
}

func TestAdminRequiresCredentialsAndServesWithThem(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(testConfig(t))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, routepath.AdminInquiries, nil)
	req.SetBasicAuth("ops", "s3cret")
	if rr := serve(t, handler, req); rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestAdminRoutesAbsentWithoutCredentials(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Admin = siteapp.Credentials{}
	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	if rr := serve(t, handler, httptest.NewRequest(http.MethodGet, routepath.AdminInquiries, nil)); rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestHealthReportsReadiness(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Ready = func(context.Context) error { return errors.New("database closed") }
	handler, err := NewHandler(cfg)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rr := serve(t, handler, httptest.NewRequest(http.MethodGet, routepath.Health, nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestNewServerRequiresAddress(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.HTTPAddr = " "
	if _, err := NewServer(context.Background(), cfg); err == nil {
		t.Fatal("NewServer() error = nil, want address error")
	}
}

func TestServeStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + routepath.Health)
	if err != nil {
		t.Fatalf("GET /up: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}
