package glossary

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// Reply payloads use pointers and nil slices so that a missing field can be
// told apart from an empty one.

type termPayload struct {
	Term         *string  `json:"term"`
	Definition   *string  `json:"definition"`
	Importance   *float64 `json:"importance"`
	RelatedTerms []string `json:"relatedTerms"`
}

type generatePayload struct {
	Description      *string         `json:"description"`
	DetectedLanguage *string         `json:"detectedLanguage"`
	Translations     json.RawMessage `json:"translations"`
	Terms            []termPayload   `json:"terms"`
}

type expandPayload struct {
	Paragraphs []string        `json:"paragraphs"`
	Sources    []sourcePayload `json:"sources"`
}

type sourcePayload struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

type extendPayload struct {
	Terms []termPayload `json:"terms"`
}

func validateGenerate(p *generatePayload) error {
	if p.Description == nil || strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("description must be a non-empty string")
	}
	return validateTerms(p.Terms)
}

func validateExpand(p *expandPayload) error {
	if p.Paragraphs == nil {
		return fmt.Errorf("paragraphs must be an array")
	}
	if p.Sources == nil {
		return fmt.Errorf("sources must be an array")
	}
	for i, src := range p.Sources {
		if src.Name == nil || strings.TrimSpace(*src.Name) == "" {
			return fmt.Errorf("sources[%d].name is missing", i)
		}
	}
	return nil
}

func validateExtend(p *extendPayload) error {
	return validateTerms(p.Terms)
}

func validateTerms(terms []termPayload) error {
	if terms == nil {
		return fmt.Errorf("terms must be an array")
	}
	for i, t := range terms {
		switch {
		case t.Term == nil || strings.TrimSpace(*t.Term) == "":
			return fmt.Errorf("terms[%d].term is missing", i)
		case t.Definition == nil:
			return fmt.Errorf("terms[%d].definition is missing", i)
		case t.Importance == nil:
			return fmt.Errorf("terms[%d].importance is missing", i)
		case t.RelatedTerms == nil:
			return fmt.Errorf("terms[%d].relatedTerms is missing", i)
		}
	}
	return nil
}

func (t termPayload) toDomain() domain.Term {
	return domain.Term{
		Term:         strings.TrimSpace(*t.Term),
		Definition:   strings.TrimSpace(*t.Definition),
		Importance:   int(math.Round(*t.Importance)),
		RelatedTerms: t.RelatedTerms,
	}
}

func (s sourcePayload) toDomain() domain.Source {
	return domain.Source{
		Name:        strings.TrimSpace(*s.Name),
		URL:         trimmedOrNil(s.URL),
		Description: trimmedOrNil(s.Description),
	}
}

// translationsOf keeps the string values of a translation table and ignores
// anything else the model put there.
func translationsOf(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}
	out := make(map[string]string, len(generic))
	for k, v := range generic {
		if str, ok := v.(string); ok {
			out[k] = str
		}
	}
	return out
}
