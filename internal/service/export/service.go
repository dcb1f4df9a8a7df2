// Package export renders a glossary as a downloadable document.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// Format is an export document format.
type Format string

// Supported formats.
const (
	FormatMarkdown Format = "md"
	FormatDocx     Format = "docx"
)

// ParseFormat maps a query value to a Format. Empty means Markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "docx", "word":
		return FormatDocx, nil
	default:
		return "", domain.NewValidationError("format", "unsupported (use md or docx)")
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatDocx {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "text/markdown; charset=utf-8"
}

// Service renders glossaries. It never modifies its input.
type Service struct {
	now func() time.Time
}

// NewService creates a new export service.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Write renders g in format f to w.
func (s *Service) Write(w io.Writer, g *domain.Glossary, f Format) error {
	if !g.IsValid() {
		return domain.NewValidationError("glossary", "missing id, description, seedWord or terms")
	}

	switch f {
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(g))
		return err
	case FormatDocx:
		return writeDocx(w, g)
	default:
		return fmt.Errorf("export format %q: %w", f, domain.ErrValidation)
	}
}

// Filename returns "<title-or-glossary>-<YYYY-MM-DD>.<ext>".
func (s *Service) Filename(g *domain.Glossary, f Format) string {
	base := "glossary"
	if g != nil && g.Title != nil {
		if slug := slugify(*g.Title); slug != "" {
			base = slug
		}
	}
	return fmt.Sprintf("%s-%s.%s", base, s.now().Format("2006-01-02"), f)
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
