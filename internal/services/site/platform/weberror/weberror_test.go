package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/northlinerail/website/internal/platform/seo"
	apperrors "github.com/northlinerail/website/internal/services/site/platform/errors"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testWriter(logger *zap.Logger) Writer {
	return Writer{
		Renderer: pagerender.Renderer{SiteName: "Northline Rail"},
		SEO:      seo.Site{BaseURL: "https://example.test", Name: "Northline Rail"},
		Logger:   logger,
	}
}

func TestShouldRenderPage(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		http.StatusNotFound:            true,
		http.StatusInternalServerError: true,
		http.StatusServiceUnavailable:  true,
		http.StatusBadRequest:          false,
		http.StatusUnauthorized:        false,
	} {
		if got := ShouldRenderPage(status); got != want {
			t.Fatalf("ShouldRenderPage(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestNotFoundRendersBrandedNoIndexPage(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testWriter(nil).NotFound(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, marker := range []string{"Page not found", "noindex, nofollow", "Back to home"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestWriteErrorUsesPlainTextForClientErrors(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	testWriter(nil).WriteError(rr, httptest.NewRequest(http.MethodGet, "/_image", nil), apperrors.E(apperrors.KindInvalidInput, "image width is not an allowed size"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("Content-Type = %q", rr.Header().Get("Content-Type"))
	}
}

func TestWriteErrorLogsServerFailures(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	rr := httptest.NewRecorder()
	testWriter(zap.New(core)).WriteError(rr, httptest.NewRequest(http.MethodGet, "/products/catalog", nil), errors.New("catalog unavailable"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Something went wrong") {
		t.Fatal("expected branded server error page")
	}
	if logs.FilterMessage("request failed").Len() != 1 {
		t.Fatalf("expected one failure log, got %d", logs.Len())
	}
}

func TestPublicMessageHidesServerDetails(t *testing.T) {
	t.Parallel()

	if got := PublicMessage(nil, errors.New("dial tcp: refused")); got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("PublicMessage() = %q", got)
	}
}
