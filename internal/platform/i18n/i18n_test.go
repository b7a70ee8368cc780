package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTagMatchesSupportedLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{raw: "en-US", want: "en-US", wantOK: true},
		{raw: "es-MX", want: "es-MX", wantOK: true},
		{raw: "es", want: "es-MX", wantOK: true},
		{raw: "", want: "en-US", wantOK: false},
		{raw: "not a tag", want: "en-US", wantOK: false},
		{raw: "ja-JP", want: "en-US", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.raw)
		if got.String() != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) = %q, %t; want %q, %t", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestMatchTagsPrefersFirstSupported(t *testing.T) {
	t.Parallel()

	tags := []language.Tag{language.MustParse("fr-FR"), language.MustParse("es-419")}
	if got := MatchTags(tags); got.String() != "es-MX" {
		t.Fatalf("MatchTags() = %q, want %q", got, "es-MX")
	}
	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %q, want default", got)
	}
}

func TestPrinterResolvesCatalogMessages(t *testing.T) {
	t.Parallel()

	if err := EnsureRegistered(); err != nil {
		t.Fatalf("EnsureRegistered() error = %v", err)
	}
	if got := Printer(language.MustParse("es-MX")).Sprintf("nav.products"); got != "Productos" {
		t.Fatalf("es-MX nav.products = %q, want %q", got, "Productos")
	}
	if got := Printer(DefaultTag()).Sprintf("banner.call", "+1-800-555-0142"); got != "Call +1-800-555-0142" {
		t.Fatalf("en-US banner.call = %q", got)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.Japanese
	if DefaultTag() != language.AmericanEnglish {
		t.Fatal("SupportedTags leaked internal slice")
	}
}
