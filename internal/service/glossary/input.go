package glossary

import (
	"strings"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// GenerateInput holds the parameters for generating a glossary.
type GenerateInput struct {
	Title    *string
	SeedWord string
}

// Validate checks all fields and collects all errors.
func (i *GenerateInput) Validate() error {
	if strings.TrimSpace(i.SeedWord) == "" {
		return domain.NewValidationError("seedWord", "required")
	}
	return nil
}

// ExpandInput holds the parameters for expanding a single term.
type ExpandInput struct {
	Term             string
	Definition       string
	SeedWord         string
	GlossaryTitle    *string
	DetectedLanguage *string
}

// Validate checks all fields and collects all errors.
func (i *ExpandInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Term) == "" {
		errs = append(errs, domain.FieldError{Field: "term", Message: "required"})
	}
	if strings.TrimSpace(i.Definition) == "" {
		errs = append(errs, domain.FieldError{Field: "definition", Message: "required"})
	}
	if strings.TrimSpace(i.SeedWord) == "" {
		errs = append(errs, domain.FieldError{Field: "seedWord", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ExtendInput holds the glossary to extend with more terms.
type ExtendInput struct {
	Glossary *domain.Glossary
}

// Validate checks all fields and collects all errors.
func (i *ExtendInput) Validate() error {
	if i.Glossary == nil {
		return domain.NewValidationError("glossary", "required")
	}

	var errs []domain.FieldError
	if strings.TrimSpace(i.Glossary.SeedWord) == "" {
		errs = append(errs, domain.FieldError{Field: "seedWord", Message: "required"})
	}
	if i.Glossary.Terms == nil {
		errs = append(errs, domain.FieldError{Field: "terms", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// trimmedOrNil returns nil for absent or blank optional strings.
func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
