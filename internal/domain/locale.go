package domain

import "strings"

// DefaultLanguage is used when the model does not report a detected language.
const DefaultLanguage = "English"

// Fixed UI label keys the generation prompt asks the model to translate.
const (
	LabelGlossary     = "glossary"
	LabelTerms        = "terms"
	LabelRelatedTerms = "relatedTerms"
	LabelLearnMore    = "learnMore"
	LabelSources      = "sources"
	LabelCreatedAt    = "createdAt"
)

// LabelKeys lists every translatable label key in prompt order.
var LabelKeys = []string{
	LabelGlossary,
	LabelTerms,
	LabelRelatedTerms,
	LabelLearnMore,
	LabelSources,
	LabelCreatedAt,
}

var defaultTranslations = map[string]string{
	LabelGlossary:     "Glossary",
	LabelTerms:        "terms",
	LabelRelatedTerms: "Related Terms",
	LabelLearnMore:    "Learn more",
	LabelSources:      "Sources",
	LabelCreatedAt:    "Created",
}

// DefaultTranslations returns a fresh copy of the English label table.
func DefaultTranslations() map[string]string {
	out := make(map[string]string, len(defaultTranslations))
	for k, v := range defaultTranslations {
		out[k] = v
	}
	return out
}

// Locale is the resolved language plus a complete label table.
type Locale struct {
	Language string
	Labels   map[string]string
}

// IsDefault reports whether the locale is the default (English) one.
func (l Locale) IsDefault() bool {
	return IsDefaultLanguage(l.Language)
}

// Label returns the translated label for key, or the English default.
func (l Locale) Label(key string) string {
	if v, ok := l.Labels[key]; ok && v != "" {
		return v
	}
	return defaultTranslations[key]
}

// IsDefaultLanguage reports whether lang is empty or names English.
func IsDefaultLanguage(lang string) bool {
	lang = strings.TrimSpace(lang)
	return lang == "" || strings.EqualFold(lang, DefaultLanguage)
}

// ResolveLocale fills in the default language and any missing label keys.
// Extra keys returned by the model are dropped.
func ResolveLocale(language *string, translations map[string]string) Locale {
	lang := DefaultLanguage
	if language != nil && strings.TrimSpace(*language) != "" {
		lang = strings.TrimSpace(*language)
	}

	labels := DefaultTranslations()
	for _, key := range LabelKeys {
		if v := strings.TrimSpace(translations[key]); v != "" {
			labels[key] = v
		}
	}

	return Locale{Language: lang, Labels: labels}
}
