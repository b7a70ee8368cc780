// Package i18n defines the site's supported languages and message printers.
package i18n

import (
	"strings"
	"sync"

	"github.com/northlinerail/website/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	supported = []language.Tag{language.AmericanEnglish, language.MustParse("es-MX")}
	matcher   = language.NewMatcher(supported)

	registerOnce sync.Once
	registerErr  error
)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback language.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it matches a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	matched, _, confidence := matcher.Match(tag)
	if confidence == language.No {
		return DefaultTag(), false
	}
	return supportedTag(matched), true
}

// MatchTags picks the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	if len(tags) == 0 {
		return DefaultTag()
	}
	matched, _, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supportedTag(matched)
}

// supportedTag strips matcher extensions (-u-rg-...) back to a supported tag.
func supportedTag(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	region, _ := tag.Region()
	for _, candidate := range supported {
		candidateBase, _ := candidate.Base()
		candidateRegion, _ := candidate.Region()
		if candidateBase == base && candidateRegion == region {
			return candidate
		}
	}
	for _, candidate := range supported {
		candidateBase, _ := candidate.Base()
		if candidateBase == base {
			return candidate
		}
	}
	return DefaultTag()
}

// Localizer formats catalog messages for one language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Printer returns a localizer for tag backed by the embedded catalogs.
func Printer(tag language.Tag) *message.Printer {
	_ = ensureRegistered()
	return message.NewPrinter(supportedTag(tag))
}

// EnsureRegistered loads and registers the embedded catalogs once.
func EnsureRegistered() error {
	return ensureRegistered()
}

func ensureRegistered() error {
	registerOnce.Do(func() {
		bundle, err := catalog.LoadEmbedded()
		if err != nil {
			registerErr = err
			return
		}
		registerErr = bundle.Register()
	})
	return registerErr
}
