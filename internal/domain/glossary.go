package domain

import (
	"strings"
	"time"
)

// Importance bounds used by the generation prompt and by display ordering.
const (
	MinImportance = 1
	MaxImportance = 10
)

// Term is one glossary entry. RelatedTerms reference other terms by name;
// the relation is advisory and not checked for existence.
type Term struct {
	Term            string           `json:"term"`
	Definition      string           `json:"definition"`
	Importance      int              `json:"importance"`
	RelatedTerms    []string         `json:"relatedTerms"`
	ExpandedContent *ExpandedContent `json:"expandedContent,omitempty"`
}

// ClampedImportance returns Importance limited to [MinImportance, MaxImportance].
func (t Term) ClampedImportance() int {
	switch {
	case t.Importance < MinImportance:
		return MinImportance
	case t.Importance > MaxImportance:
		return MaxImportance
	default:
		return t.Importance
	}
}

// IsExpanded reports whether supplementary content has been attached.
func (t Term) IsExpanded() bool {
	return t.ExpandedContent != nil
}

// Source is a citation attached to an expansion. URL is omitted rather
// than guessed, so Name must stand on its own.
type Source struct {
	Name        string  `json:"name"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ExpandedContent holds the "learn more" paragraphs for a single term.
type ExpandedContent struct {
	Paragraphs []string  `json:"paragraphs"`
	Sources    []Source  `json:"sources"`
	LoadedAt   time.Time `json:"loadedAt"`
}

// Glossary is the generated document. It is owned by one session; the
// terms slice may grow (extension) and individual terms may receive
// ExpandedContent.
type Glossary struct {
	ID               string            `json:"id"`
	Title            *string           `json:"title,omitempty"`
	Description      string            `json:"description"`
	SeedWord         string            `json:"seedWord"`
	DetectedLanguage *string           `json:"detectedLanguage,omitempty"`
	Translations     map[string]string `json:"translations,omitempty"`
	Terms            []Term            `json:"terms"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// IsValid reports whether the glossary has the minimum shape required to
// be restored from a snapshot.
func (g *Glossary) IsValid() bool {
	return g != nil && g.ID != "" && g.Description != "" && g.SeedWord != "" && g.Terms != nil
}

// DisplayTitle returns the title, falling back to the localized
// "Glossary" label.
func (g *Glossary) DisplayTitle() string {
	if g.Title != nil && strings.TrimSpace(*g.Title) != "" {
		return *g.Title
	}
	return g.Locale().Label(LabelGlossary)
}

// FindTerm returns the index of the term with the given name. An exact
// match wins over a case-insensitive one. Returns -1 if absent.
func (g *Glossary) FindTerm(name string) int {
	for i := range g.Terms {
		if g.Terms[i].Term == name {
			return i
		}
	}
	normalized := NormalizeTerm(name)
	for i := range g.Terms {
		if NormalizeTerm(g.Terms[i].Term) == normalized {
			return i
		}
	}
	return -1
}

// TermNames returns the names of all terms in glossary order.
func (g *Glossary) TermNames() []string {
	names := make([]string, len(g.Terms))
	for i, t := range g.Terms {
		names[i] = t.Term
	}
	return names
}

// Locale resolves the glossary's language and label table, applying
// defaults for anything the model omitted.
func (g *Glossary) Locale() Locale {
	return ResolveLocale(g.DetectedLanguage, g.Translations)
}
