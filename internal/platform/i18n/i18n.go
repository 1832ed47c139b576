// Package i18n defines the locales the blog ships catalogs for and how
// arbitrary language tags map onto them.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

// SupportedTags returns the supported language tags, default first.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, len(supported))
	copy(out, supported)
	return out
}

// DefaultTag returns the fallback language tag.
func DefaultTag() language.Tag {
	return supported[0]
}

// ParseTag parses value and reports whether it maps to a supported tag with
// at least high confidence.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultTag(), false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return DefaultTag(), false
	}
	_, index, confidence := matcher.Match(tag)
	if confidence < language.High {
		return DefaultTag(), false
	}
	return supported[index], true
}

// MatchTags returns the best supported tag for a preference list.
func MatchTags(tags []language.Tag) language.Tag {
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultTag()
	}
	return supported[index]
}

// CatalogKeyLabel returns the catalog key naming tag in the language picker.
func CatalogKeyLabel(tag language.Tag) string {
	switch tag {
	case language.BrazilianPortuguese:
		return "core.lang.pt_br"
	case language.AmericanEnglish:
		return "core.lang.en_us"
	default:
		return tag.String()
	}
}
