package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/northlinerail/website/internal/platform/seo"
	"github.com/northlinerail/website/internal/services/site/inquiry"
	"github.com/northlinerail/website/internal/services/site/module"
	"github.com/northlinerail/website/internal/services/site/outbox"
	"github.com/northlinerail/website/internal/services/site/platform/pagerender"
	"github.com/northlinerail/website/internal/services/site/routepath"
	"github.com/northlinerail/website/internal/services/site/storage"
)

type fakeReader struct {
	summaries []storage.InquirySummary
	err       error
	limit     int
}

func (f *fakeReader) ListInquiries(_ context.Context, limit int) ([]storage.InquirySummary, error) {
	f.limit = limit
	return f.summaries, f.err
}

func serve(t *testing.T, reader storage.InquiryReader, path string) *httptest.ResponseRecorder {
	t.Helper()
	base := module.Base{
		Renderer: pagerender.Renderer{SiteName: "Northline Rail", LegalName: "Northline Rail Services LLC"},
		SEO:      seo.Site{BaseURL: "https://www.northlinerail.com", Name: "Northline Rail"},
	}
	mount, err := New(base, reader).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestInquiriesListsRecentSubmissions(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{summaries: []storage.InquirySummary{{
		Inquiry: inquiry.Inquiry{
			ID:        "inq-7",
			Kind:      inquiry.KindService,
			Name:      "Sam Ortiz",
			Email:     "sam@plant.example",
			Message:   "Switcher will not load.",
			CreatedAt: time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC),
		},
		MailStatus: outbox.StatusFailed,
		MailError:  "gmail: 403",
	}}}
	rr := serve(t, reader, routepath.AdminInquiries)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if reader.limit != inquiryLimit {
		t.Fatalf("limit = %d, want %d", reader.limit, inquiryLimit)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="inquiry-inq-7"`, "Sam Ortiz", "2026-04-02T08:30:00Z", "failed: gmail: 403", `content="noindex, nofollow"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", got)
	}
}

func TestInquiriesReaderFailure(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeReader{err: errors.New("disk I/O error")}, routepath.AdminInquiries)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestIndexRedirectsToInquiries(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeReader{}, routepath.AdminPrefix)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != routepath.AdminInquiries {
		t.Fatalf("status = %d, location = %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestMountRequiresReader(t *testing.T) {
	t.Parallel()

	if _, err := New(module.Base{}, nil).Mount(); err == nil {
		t.Fatal("Mount() error = nil, want missing reader error")
	}
}
