package branding

import (
	"net/url"
	"testing"
)

func TestAppName(t *testing.T) {
	if AppName == "" {
		t.Fatal("expected AppName to be non-empty")
	}
	if AppName != "Northline Rail" {
		t.Fatalf("AppName = %q, want %q", AppName, "Northline Rail")
	}
}

func TestDefaultSiteURLIsAbsoluteWithoutTrailingSlash(t *testing.T) {
	parsed, err := url.Parse(DefaultSiteURL)
	if err != nil {
		t.Fatalf("parse DefaultSiteURL: %v", err)
	}
	if parsed.Scheme != "https" || parsed.Host == "" {
		t.Fatalf("DefaultSiteURL = %q, want absolute https url", DefaultSiteURL)
	}
	if DefaultSiteURL[len(DefaultSiteURL)-1] == '/' {
		t.Fatalf("DefaultSiteURL = %q has trailing slash", DefaultSiteURL)
	}
}

func TestDefaultKeywordsReturnsFreshSlice(t *testing.T) {
	first := DefaultKeywords()
	first[0] = "mutated"
	if DefaultKeywords()[0] == "mutated" {
		t.Fatal("DefaultKeywords shares backing storage between calls")
	}
}
